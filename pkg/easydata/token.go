package easydata

import "fmt"

// Token is one indivisible piece of template text, either plain content or one
// complete tag, together with its position in the template.
type Token struct {
	Content string
	// Row is the 1-based line number.
	Row int
	// Col is the 0-based character offset within the line.
	Col int
}

func (t Token) String() string {
	return fmt.Sprintf("%3d:%3d %s", t.Row, t.Col, t.Content)
}

// TokenSource yields tokens one at a time. The second return value is false once
// the source is exhausted.
type TokenSource interface {
	Next() (Token, bool)
}

// sliceSource replays a fixed list of tokens.
type sliceSource struct {
	tokens []Token
	pos    int
}

func (s *sliceSource) Next() (Token, bool) {
	if s.pos >= len(s.tokens) {
		return Token{}, false
	}
	t := s.tokens[s.pos]
	s.pos++
	return t, true
}

// noTokens is used when a tag is redispatched outside of any token stream.
var noTokens TokenSource = &sliceSource{}
