package easydata

// complexTag is the common part of tags owning a body. The body is split into
// primary content and the alternate content following the alternate-start tag.
type complexTag struct {
	markup
	content      []pair
	otherContent []pair
}

// parse consumes tokens up to END or one of ends. Every consumed token is
// dispatched through f, so nested tags take their own bodies first.
func (c *complexTag) parse(f *TagFactory, start Token, remaining TokenSource, alternate string, ends ...string) error {
	alt := f.NameToTag(alternate)
	terminators := make([]string, 0, len(ends)+1)
	terminators = append(terminators, f.NameToTag("END"))
	for _, e := range ends {
		terminators = append(terminators, f.NameToTag(e))
	}

	bucket := &c.content
	for {
		token, ok := remaining.Next()
		if !ok {
			return &UnterminatedTagError{Start: start, Terminators: terminators}
		}
		if token.Content == alt {
			bucket = &c.otherContent
			continue
		}
		for _, t := range terminators {
			if token.Content == t {
				return nil
			}
		}
		r, err := f.Resolver(token, remaining)
		if err != nil {
			return withLocation(err, start)
		}
		*bucket = append(*bucket, pair{token: token, resolver: r})
	}
}
