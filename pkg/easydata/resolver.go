package easydata

import "io"

// Resolver writes the expansion of one template token. Resolvers of complex
// tags own the subtree of tokens up to their terminator and may be resolved many
// times, e.g. once per loop iteration.
type Resolver interface {
	// Resolve expands the tag which started with start into out.
	Resolve(start Token, data *Data, out io.Writer) error
	// SpecialMarkup reports whether the resolver belongs to a tag rather than to
	// plain text.
	SpecialMarkup() bool
}

// identity copies plain text to the output.
type identity struct{}

func (identity) Resolve(start Token, _ *Data, out io.Writer) error {
	_, err := io.WriteString(out, start.Content)
	return err
}

func (identity) SpecialMarkup() bool { return false }

// markup is embedded by every tag resolver.
type markup struct{}

func (markup) SpecialMarkup() bool { return true }

// pair is a parsed child token together with its resolver.
type pair struct {
	token    Token
	resolver Resolver
}

// resolveContent resolves children in order. Earlier children may change the
// scope seen by later ones.
func resolveContent(children []pair, data *Data, out io.Writer) error {
	for _, child := range children {
		if err := child.resolver.Resolve(child.token, data, out); err != nil {
			return err
		}
	}
	return nil
}
