package easydata

import (
	"io"
	"strings"
)

// insertTag writes the string value of a path: [@=Address.City]
type insertTag struct {
	markup
	path string
}

func (f *TagFactory) newInsert(m []string, _ Token, _ TokenSource) (Resolver, error) {
	return &insertTag{path: strings.TrimSpace(m[1])}, nil
}

func (t *insertTag) Resolve(start Token, data *Data, out io.Writer) error {
	s, err := data.GetString(t.path)
	if err != nil {
		return withLocation(err, start)
	}
	_, err = io.WriteString(out, s)
	return err
}

// setTag binds a name to the value an expression has when the tag is
// resolved: [@SET city = friends.Emil.city]
type setTag struct {
	markup
	name string
	expr string
}

func (f *TagFactory) newSet(m []string, _ Token, _ TokenSource) (Resolver, error) {
	return &setTag{name: m[1], expr: strings.TrimSpace(m[2])}, nil
}

func (t *setTag) Resolve(start Token, data *Data, _ io.Writer) error {
	value, err := data.Get(t.expr)
	if err != nil {
		return withLocation(err, start)
	}
	data.Define(t.name, value)
	return nil
}

// skipTag drops the token following it, typically a line break kept only for
// readability of the template.
type skipTag struct {
	markup
}

func (f *TagFactory) newSkip(_ []string, _ Token, remaining TokenSource) (Resolver, error) {
	remaining.Next()
	return skipTag{}, nil
}

func (skipTag) Resolve(Token, *Data, io.Writer) error {
	return nil
}

// useTag invokes the macro whose name a path resolves to:
// [@USE friend.kind friend]
type useTag struct {
	markup
	factory *TagFactory
	name    string
	args    string
}

func (f *TagFactory) newUse(m []string, _ Token, _ TokenSource) (Resolver, error) {
	return &useTag{factory: f, name: m[1], args: m[2]}, nil
}

func (t *useTag) Resolve(start Token, data *Data, out io.Writer) error {
	name, err := data.GetString(t.name)
	if err != nil {
		return withLocation(err, start)
	}
	call := Token{Content: t.factory.NameToTag(name + t.args), Row: start.Row, Col: start.Col}
	r, err := t.factory.Resolver(call, noTokens)
	if err != nil {
		return withLocation(err, start)
	}
	if err := r.Resolve(call, data, out); err != nil {
		return withLocation(err, start)
	}
	return nil
}
