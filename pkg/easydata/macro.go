package easydata

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// defineTag registers a macro when it is parsed. Resolving the definition
// itself writes nothing. Alternate (COMMENT) content documents the macro and
// is never resolved.
//
//	[@DEFINE name(param1, param2)]body[@/DEFINE]   invoked as [@name expr1 expr2]
type defineTag struct {
	complexTag
}

func (f *TagFactory) newDefine(m []string, start Token, remaining TokenSource) (Resolver, error) {
	t := &defineTag{}
	if err := t.parse(f, start, remaining, "COMMENT", "/DEFINE"); err != nil {
		return nil, err
	}

	var params []string
	for _, p := range strings.Split(m[2], ",") {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	macro := &macroTag{factory: f, name: m[1], params: params, body: t.content}
	pattern := macro.pattern()
	re, err := regexp.Compile(`^(?s:` + pattern + `)$`)
	if err != nil {
		return nil, withLocation(err, start)
	}
	macro.call = re
	if err := f.Register(pattern, macro.construct); err != nil {
		return nil, withLocation(err, start)
	}
	f.logger.WithFields(Fields{"macro": macro.name, "params": len(params)}).Debug("Defined macro at %d:%d", start.Row, start.Col)
	return t, nil
}

func (t *defineTag) Resolve(Token, *Data, io.Writer) error {
	return nil
}

// macroTag is the resolver of macro invocations. Arguments are evaluated in the
// caller's scope before any parameter is bound, and every binding is removed
// again afterwards, so recursive invocations see fresh bindings.
type macroTag struct {
	markup
	factory *TagFactory
	name    string
	params  []string
	body    []pair
	call    *regexp.Regexp
}

func (t *macroTag) pattern() string {
	var b strings.Builder
	b.WriteString(regexp.QuoteMeta(t.name))
	for range t.params {
		b.WriteString(` +([^ ]+)`)
	}
	return b.String()
}

func (t *macroTag) construct([]string, Token, TokenSource) (Resolver, error) {
	return t, nil
}

func (t *macroTag) Resolve(start Token, data *Data, out io.Writer) error {
	content, _ := t.factory.inner(start.Content)
	m := t.call.FindStringSubmatch(content)
	if m == nil {
		return withLocation(fmt.Errorf("%q is not a call of macro %s", start.Content, t.name), start)
	}

	values := make([]interface{}, len(t.params))
	for i := range t.params {
		v, err := data.Get(m[i+1])
		if err != nil {
			return withLocation(err, start)
		}
		values[i] = v
	}

	if err := t.factory.enter(); err != nil {
		return withLocation(err, start)
	}
	defer t.factory.leave()

	for i, p := range t.params {
		data.Define(p, values[i])
	}
	err := resolveContent(t.body, data, out)
	for _, p := range t.params {
		data.Undefine(p)
	}
	return withLocation(err, start)
}
