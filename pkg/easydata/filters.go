package easydata

import (
	"bytes"
	"io"
	"strings"
)

// indentTag prefixes every output line of its body with the text its
// alternate (VALUE) content resolves to:
//
//	[@INDENT]body[@VALUE]    [@/INDENT]
type indentTag struct {
	complexTag
}

func (f *TagFactory) newIndent(_ []string, start Token, remaining TokenSource) (Resolver, error) {
	t := &indentTag{}
	if err := t.parse(f, start, remaining, "VALUE", "/INDENT"); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *indentTag) Resolve(start Token, data *Data, out io.Writer) error {
	if len(t.otherContent) == 0 {
		return withLocation(resolveContent(t.content, data, out), start)
	}
	var indent strings.Builder
	if err := resolveContent(t.otherContent, data, &indent); err != nil {
		return withLocation(err, start)
	}
	return withLocation(resolveContent(t.content, data, newIndentWriter(out, indent.String())), start)
}

// indentWriter inserts indent before the first character of every line. The
// prefix is written lazily, so a line only gets it once something is written
// to it.
type indentWriter struct {
	out         io.Writer
	indent      string
	atLineStart bool
}

func newIndentWriter(out io.Writer, indent string) *indentWriter {
	return &indentWriter{out: out, indent: indent, atLineStart: true}
}

func (w *indentWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		if w.atLineStart {
			if _, err := io.WriteString(w.out, w.indent); err != nil {
				return written, err
			}
			w.atLineStart = false
		}
		line := p
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			line = p[:i+1]
			w.atLineStart = true
		}
		n, err := w.out.Write(line)
		written += n
		if err != nil {
			return written, err
		}
		p = p[len(line):]
	}
	return written, nil
}

// markupOnlyTag resolves only the tags of its body and drops the text between
// them, so templates can be laid out freely:
//
//	[@MARKUP_ONLY]
//	   [@IF a]...[@/IF]
//	[@/MARKUP_ONLY]
type markupOnlyTag struct {
	complexTag
}

func (f *TagFactory) newMarkupOnly(_ []string, start Token, remaining TokenSource) (Resolver, error) {
	t := &markupOnlyTag{}
	if err := t.parse(f, start, remaining, "COMMENT", "/MARKUP_ONLY"); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *markupOnlyTag) Resolve(start Token, data *Data, out io.Writer) error {
	for _, child := range t.content {
		if !child.resolver.SpecialMarkup() {
			continue
		}
		if err := child.resolver.Resolve(child.token, data, out); err != nil {
			return withLocation(err, start)
		}
	}
	return nil
}

// replacementTag makes all later string output replace name with the text its
// body resolves to.
type replacementTag struct {
	complexTag
	name string
}

func (f *TagFactory) newReplacement(m []string, start Token, remaining TokenSource) (Resolver, error) {
	t := &replacementTag{name: strings.TrimSpace(m[1])}
	if err := t.parse(f, start, remaining, "COMMENT", "/REPLACEMENT"); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *replacementTag) Resolve(start Token, data *Data, _ io.Writer) error {
	var b strings.Builder
	if err := resolveContent(t.content, data, &b); err != nil {
		return withLocation(err, start)
	}
	data.DefineReplacement(t.name, b.String())
	data.logger.WithField("replacement", t.name).Debug("Defined replacement at %d:%d", start.Row, start.Col)
	return nil
}
