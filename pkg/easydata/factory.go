package easydata

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Constructor builds the resolver for a tag whose inner content matched a
// registered pattern. m holds the submatches, start is the tag token and
// remaining yields the tokens after it, for tags which own a body.
type Constructor func(m []string, start Token, remaining TokenSource) (Resolver, error)

type factoryEntry struct {
	source    string
	pattern   *regexp.Regexp
	construct Constructor
	keyword   string
}

// TagFactory maps the inner content of tags to resolvers. Entries are tried in
// registration order. Macro definitions add entries while a template is
// being parsed, so a factory belongs to one expansion.
type TagFactory struct {
	opening, marker, closing rune
	entries                  []factoryEntry
	depth                    int
	maxDepth                 int
	logger                   *Logger
}

// NewTagFactory creates a factory knowing the built-in tags for the given
// markers.
func NewTagFactory(opening, marker, closing rune) *TagFactory {
	f := &TagFactory{
		opening:  opening,
		marker:   marker,
		closing:  closing,
		maxDepth: DefaultConfig().MaxRenderDepth,
		logger:   GetLogger(),
	}
	f.registerBuiltins()
	return f
}

// SetMaxDepth limits how deeply macro invocations may nest.
func (f *TagFactory) SetMaxDepth(depth int) {
	if depth > 0 {
		f.maxDepth = depth
	}
}

func (f *TagFactory) SetLogger(logger *Logger) {
	if logger != nil {
		f.logger = logger
	}
}

// Register adds a tag syntax. pattern must match the whole inner content of a
// tag, which is the text between marker and closing character with surrounding
// blanks removed. Registering a pattern again replaces the earlier constructor
// but keeps its precedence.
func (f *TagFactory) Register(pattern string, construct Constructor) error {
	re, err := regexp.Compile(`^(?s:` + pattern + `)$`)
	if err != nil {
		return fmt.Errorf("invalid tag pattern %q: %w", pattern, err)
	}
	keyword := pattern
	if i := strings.IndexAny(keyword, ` \(*+?[.^$|{`); i >= 0 {
		keyword = keyword[:i]
	}
	keyword = strings.ReplaceAll(keyword, `\`, "")

	for i := range f.entries {
		if f.entries[i].source == pattern {
			f.entries[i].pattern = re
			f.entries[i].construct = construct
			return nil
		}
	}
	f.entries = append(f.entries, factoryEntry{source: pattern, pattern: re, construct: construct, keyword: keyword})
	return nil
}

// NameToTag returns the complete tag for an inner content, e.g. "[@END]".
func (f *TagFactory) NameToTag(name string) string {
	return string(f.opening) + string(f.marker) + name + string(f.closing)
}

// inner returns the content between the markers if content is shaped like a tag.
func (f *TagFactory) inner(content string) (string, bool) {
	prefix := string(f.opening) + string(f.marker)
	suffix := string(f.closing)
	if len(content) < len(prefix)+len(suffix) ||
		!strings.HasPrefix(content, prefix) || !strings.HasSuffix(content, suffix) {
		return "", false
	}
	return strings.TrimSpace(content[len(prefix) : len(content)-len(suffix)]), true
}

// Resolver returns the resolver for token. Text which is not shaped like a tag
// is copied unchanged. A tag matching no registered syntax is an error.
func (f *TagFactory) Resolver(token Token, remaining TokenSource) (Resolver, error) {
	content, ok := f.inner(token.Content)
	if !ok {
		return identity{}, nil
	}
	for _, e := range f.entries {
		m := e.pattern.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		if f.logger.IsDebugMode() {
			f.logger.WithField("tag", e.keyword).Debug("Resolving %s", token)
		}
		return e.construct(m, token, remaining)
	}
	return nil, &UnrecognizedTagError{Token: token, Suggestion: f.suggest(content)}
}

// suggest returns the known keyword closest to the first word of content.
func (f *TagFactory) suggest(content string) string {
	word := content
	if i := strings.IndexAny(word, " ("); i >= 0 {
		word = word[:i]
	}
	if word == "" {
		return ""
	}

	keywords := make([]string, 0, len(f.entries))
	seen := make(map[string]bool)
	for _, e := range f.entries {
		if len(e.keyword) > 1 && !seen[e.keyword] {
			seen[e.keyword] = true
			keywords = append(keywords, e.keyword)
		}
	}

	ranks := fuzzy.RankFindFold(word, keywords)
	for i, k := range keywords {
		// A keyword hidden in a longer misspelling, e.g. FORR.
		if len(k) > 2 && fuzzy.MatchFold(k, word) {
			ranks = append(ranks, fuzzy.Rank{Source: k, Target: k, Distance: len(word) - len(k), OriginalIndex: i})
		}
	}
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// enter counts a macro invocation against the nesting limit.
func (f *TagFactory) enter() error {
	if f.depth >= f.maxDepth {
		return fmt.Errorf("%w (%d)", ErrMaxDepth, f.maxDepth)
	}
	f.depth++
	return nil
}

func (f *TagFactory) leave() {
	f.depth--
}

func (f *TagFactory) registerBuiltins() {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(f.Register(`=(.*)`, f.newInsert))
	must(f.Register(`FOR +(\w+) *: *([^ ]+?)(?:\.(keys|values))?(?: +SELECT +([^ ]+))?( +UNIQUE)?(?: +(ASCENDING|DESCENDING)(?: +([^ ]+))?)? *`, f.newFor))
	must(f.Register(`IF +(.+?) *(==|!=|<|>) *(.+)`, f.newIf))
	must(f.Register(`IF +(.+)`, f.newIf))
	must(f.Register(`DEFINE +([^( ]+)(?: *\(([^)]*)\))? *`, f.newDefine))
	must(f.Register(`USE +([^ ]+)((?: +[^ ]+)*) *`, f.newUse))
	must(f.Register(`SET +(\w+) *= *(.+)`, f.newSet))
	must(f.Register(`INDENT`, f.newIndent))
	must(f.Register(`MARKUP_ONLY`, f.newMarkupOnly))
	must(f.Register(`REPLACEMENT +(.+)`, f.newReplacement))
	must(f.Register(`SKIP`, f.newSkip))
}
