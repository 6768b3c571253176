package easydata

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxLineLength = 64 << 20

// Tokenizer splits line oriented input into tokens. Every complete tag becomes
// exactly one token, everything else is passed on in arbitrary plain chunks.
// Concatenating all tokens yields the input, with the line break appended to a
// last line lacking one.
type Tokenizer struct {
	scanner   *bufio.Scanner
	lineBreak string
	pattern   *regexp.Regexp

	line    string
	matches [][]int
	pos     int
	row     int
	err     error
}

// NewTokenizer creates a tokenizer reading from r. lineBreak must be "\n" or
// "\r\n" because it is re-inserted after every line.
func NewTokenizer(r io.Reader, lineBreak string, opening, marker, closing rune) (*Tokenizer, error) {
	if !isLineBreak(lineBreak) {
		return nil, NewTokenizationError("line break must be \"\\n\" or \"\\r\\n\", got %q", lineBreak)
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(splitLines([]byte(lineBreak)))

	return &Tokenizer{
		scanner:   scanner,
		lineBreak: lineBreak,
		pattern:   tokenPattern(opening, marker, closing),
	}, nil
}

// Tokenize reads a complete template string, mostly useful for tests and debugging.
func Tokenize(input string, opening, marker, closing rune) ([]Token, error) {
	t, err := NewTokenizer(strings.NewReader(input), "\n", opening, marker, closing)
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for {
		token, ok := t.Next()
		if !ok {
			break
		}
		tokens = append(tokens, token)
	}
	return tokens, t.Err()
}

// Next returns the next token, reading further input when the current line is used up.
func (t *Tokenizer) Next() (Token, bool) {
	for t.pos >= len(t.matches) {
		if t.err != nil || !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil && t.err == nil {
				t.err = err
			}
			return Token{}, false
		}
		t.row++
		t.line = t.scanner.Text() + t.lineBreak
		t.matches = t.pattern.FindAllStringIndex(t.line, -1)
		t.pos = 0

		logger := GetLogger()
		if logger.IsDebugMode() {
			logger.WithFields(Fields{"row": t.row, "tokens": len(t.matches)}).Debug("Tokenized line")
		}
	}

	m := t.matches[t.pos]
	t.pos++
	return Token{
		Content: t.line[m[0]:m[1]],
		Row:     t.row,
		Col:     utf8.RuneCountInString(t.line[:m[0]]),
	}, true
}

// Err returns the first read error encountered, if any.
func (t *Tokenizer) Err() error {
	return t.err
}

// tokenPattern matches a run of plain text, a complete tag, or a single opening
// character that does not start a tag. A tag may contain one level of nested
// opening...closing as long as the nested opening is not followed by the marker.
func tokenPattern(opening, marker, closing rune) *regexp.Regexp {
	o, m, c := quoteRune(opening), quoteRune(marker), quoteRune(closing)
	tag := o + m + "(?:[^" + o + c + "]|" + o + "[^" + m + "].*?" + c + ")*" + c
	return regexp.MustCompile("(?s)[^" + o + "]+|" + tag + "|" + o)
}

// quoteRune escapes punctuation so the rune can be used both inside and outside
// character classes.
func quoteRune(r rune) string {
	if r < utf8.RuneSelf && !isWordChar(byte(r)) {
		return `\` + string(r)
	}
	return string(r)
}

func isWordChar(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isLineBreak(s string) bool {
	return s == "\n" || s == "\r\n"
}

func splitLines(sep []byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.Index(data, sep); i >= 0 {
			return i + len(sep), data[:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}
