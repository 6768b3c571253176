package easydata

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "plain text",
			input: "Hello World",
			want:  []Token{{Content: "Hello World\n", Row: 1, Col: 0}},
		},
		{
			name:  "single tag",
			input: "Hallo [@=Name]!",
			want: []Token{
				{Content: "Hallo ", Row: 1, Col: 0},
				{Content: "[@=Name]", Row: 1, Col: 6},
				{Content: "!\n", Row: 1, Col: 14},
			},
		},
		{
			name:  "nested brackets and stray opening characters",
			input: "a [b] [@x [y] z] [@",
			want: []Token{
				{Content: "a ", Row: 1, Col: 0},
				{Content: "[", Row: 1, Col: 2},
				{Content: "b] ", Row: 1, Col: 3},
				{Content: "[@x [y] z]", Row: 1, Col: 6},
				{Content: " ", Row: 1, Col: 16},
				{Content: "[", Row: 1, Col: 17},
				{Content: "@\n", Row: 1, Col: 18},
			},
		},
		{
			name:  "rows and columns",
			input: "first\n  [@=a][@=b]\n",
			want: []Token{
				{Content: "first\n", Row: 1, Col: 0},
				{Content: "  ", Row: 2, Col: 0},
				{Content: "[@=a]", Row: 2, Col: 2},
				{Content: "[@=b]", Row: 2, Col: 7},
				{Content: "\n", Row: 2, Col: 12},
			},
		},
		{
			name:  "columns count characters",
			input: "äöü [@=x]",
			want: []Token{
				{Content: "äöü ", Row: 1, Col: 0},
				{Content: "[@=x]", Row: 1, Col: 4},
				{Content: "\n", Row: 1, Col: 9},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input, '[', '@', ']')
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizeOtherMarkers(t *testing.T) {
	got, err := Tokenize("(@IF a)(x)(@END)", '(', '@', ')')
	require.NoError(t, err)

	contents := make([]string, len(got))
	for i, token := range got {
		contents[i] = token.Content
	}
	assert.Equal(t, []string{"(@IF a)", "(", "x)", "(@END)", "\n"}, contents)
}

func TestTokenizerLineBreaks(t *testing.T) {
	tokens, err := NewTokenizer(strings.NewReader("a\r\n[@=b]"), "\r\n", '[', '@', ']')
	require.NoError(t, err)

	var got []Token
	for {
		token, ok := tokens.Next()
		if !ok {
			break
		}
		got = append(got, token)
	}
	require.NoError(t, tokens.Err())
	assert.Equal(t, []Token{
		{Content: "a\r\n", Row: 1, Col: 0},
		{Content: "[@=b]", Row: 2, Col: 0},
		{Content: "\r\n", Row: 2, Col: 5},
	}, got)

	_, err = NewTokenizer(strings.NewReader("a"), "\r", '[', '@', ']')
	require.Error(t, err)
	assert.True(t, IsTokenizationError(err))
}

// Concatenating the tokens reproduces the input, with a final line break.
func TestTokenizerLossless(t *testing.T) {
	alphabet := []rune("ab [@]\nä")
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		runes := make([]rune, rng.Intn(40))
		for j := range runes {
			runes[j] = alphabet[rng.Intn(len(alphabet))]
		}
		input := string(runes)

		tokens, err := Tokenize(input, '[', '@', ']')
		require.NoError(t, err)

		var b strings.Builder
		for _, token := range tokens {
			require.NotEmpty(t, token.Content)
			b.WriteString(token.Content)
		}
		want := input
		if input != "" && !strings.HasSuffix(input, "\n") {
			want += "\n"
		}
		require.Equal(t, want, b.String(), "input %q", input)
	}
}

func TestTokenString(t *testing.T) {
	token := Token{Content: "[@WHILE true]", Row: 1, Col: 12}
	assert.Equal(t, "  1: 12 [@WHILE true]", token.String())
}
