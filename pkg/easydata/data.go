package easydata

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/benjaminschreck/go-easydata/pkg/easydata/stackmap"
)

// ValueReadMisses is a reserved path which expands to the resolution misses
// recorded so far, e.g. "[cannot resolve 'x' because ...]".
const ValueReadMisses = "VALUE_READ_MISSES"

// ListMode selects what a collection expression enumerates.
type ListMode int

const (
	// ListDefault enumerates the values of sequences and the keys of mappings.
	ListDefault ListMode = iota
	// ListKeys enumerates keys, or indexes of sequences.
	ListKeys
	// ListValues enumerates values.
	ListValues
)

// Formatter rewrites a resolved value before it's turned into output text. path is
// the expression the value was resolved from.
type Formatter func(value interface{}, path string) interface{}

// Sanitizer escapes text for the target document format.
type Sanitizer func(string) string

var (
	literalPattern = regexp.MustCompile(`^(?:"[^"]*"|'[^']*'|#[^#]*#)$`)
	integerPattern = regexp.MustCompile(`^\d+$`)
	sizePattern    = regexp.MustCompile(`^SIZE(?:\(([^)]+)\)|\{([^}]+)\})$`)
	bracketPattern = regexp.MustCompile(`\[([^\]]+)\]`)
	derefPattern   = regexp.MustCompile(`\$\{([^{}]+)\}`)
)

type replacement struct {
	key   string
	value string
}

// Data evaluates path expressions against a data graph and a scope of
// variables bound by the template. A Data is owned by one expansion and is not
// safe for concurrent use.
type Data struct {
	root         interface{}
	scope        *stackmap.Map[interface{}]
	formatters   []Formatter
	sanitize     Sanitizer
	replacements []replacement
	strict       bool
	maxDeref     int
	misses       []string
	logger       *Logger
}

// NewData creates an evaluator over root.
func NewData(root interface{}) *Data {
	return &Data{
		root:     root,
		scope:    stackmap.New[interface{}](),
		maxDeref: DefaultConfig().MaxDerefIterations,
		logger:   GetLogger(),
	}
}

func (d *Data) Root() interface{} {
	return d.root
}

// SetStrict makes resolution misses fail instead of resolving to nil.
func (d *Data) SetStrict(strict bool) {
	d.strict = strict
}

func (d *Data) Strict() bool {
	return d.strict
}

func (d *Data) SetMaxDerefIterations(n int) {
	if n > 0 {
		d.maxDeref = n
	}
}

func (d *Data) SetLogger(logger *Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// AddFormatter appends a formatter. Formatters run in the order they were added.
func (d *Data) AddFormatter(f Formatter) {
	if f != nil {
		d.formatters = append(d.formatters, f)
	}
}

func (d *Data) SetSanitizer(s Sanitizer) {
	d.sanitize = s
}

// Misses returns the resolution misses recorded so far.
func (d *Data) Misses() []string {
	return append([]string(nil), d.misses...)
}

// Define binds name to value, shadowing any previous binding until Undefine.
func (d *Data) Define(name string, value interface{}) {
	d.scope.Push(name, value)
}

// Undefine removes the innermost binding of name.
func (d *Data) Undefine(name string) {
	d.scope.Pop(name)
}

// IsDefined reports whether name is currently bound in the scope.
func (d *Data) IsDefined(name string) bool {
	return d.scope.Contains(name)
}

// DefineReplacement makes every occurrence of key in string output read value.
// Redefining a key replaces its value but keeps its original position.
func (d *Data) DefineReplacement(key, value string) {
	for i := range d.replacements {
		if d.replacements[i].key == key {
			d.replacements[i].value = value
			return
		}
	}
	d.replacements = append(d.replacements, replacement{key: key, value: value})
}

// ClearReplacements removes all replacements.
func (d *Data) ClearReplacements() {
	d.replacements = nil
}

// Get resolves an expression: a literal, a SIZE(...) expression or a dotted
// path. Brackets and ${...} inside the path are substituted first.
func (d *Data) Get(expr string) (interface{}, error) {
	expr = strings.TrimSpace(expr)
	if v, ok := literal(expr); ok {
		return v, nil
	}
	if expr == ValueReadMisses {
		result := make([]interface{}, len(d.misses))
		for i, m := range d.misses {
			result[i] = m
		}
		return result, nil
	}
	if m := sizePattern.FindStringSubmatch(expr); m != nil {
		arg := m[1]
		if arg == "" {
			arg = m[2]
		}
		coll, err := d.GetCollection(arg, ListDefault)
		if err != nil {
			return nil, err
		}
		return len(coll), nil
	}

	path, err := d.resolveInner(expr)
	if err != nil {
		return nil, err
	}
	segments := strings.Split(path, ".")
	var value interface{}
	if bound, ok := d.scope.Get(segments[0]); ok {
		value, err = d.walk(segments, 1, bound)
	} else {
		value, err = d.walk(segments, 0, d.root)
	}
	if err != nil {
		return nil, err
	}
	d.logger.DebugExpression(expr, value)
	return value, nil
}

// GetString resolves an expression to output text. Containers cannot be
// rendered. Formatters, the sanitizer and the replacements apply in that order.
func (d *Data) GetString(expr string) (string, error) {
	if strings.TrimSpace(expr) == ValueReadMisses {
		if len(d.misses) == 0 {
			return "", nil
		}
		return "[" + strings.Join(d.misses, ", ") + "]", nil
	}

	value, err := d.Get(expr)
	if err != nil {
		return "", err
	}
	if isContainer(value) {
		return "", NewTypeMismatchError(strings.TrimSpace(expr), "String", value)
	}
	for _, f := range d.formatters {
		value = f(value, expr)
	}

	s := stringify(value)
	if d.sanitize != nil {
		s = d.sanitize(s)
	}
	for _, r := range d.replacements {
		s = strings.ReplaceAll(s, r.key, r.value)
	}
	return s, nil
}

// GetCollection resolves an expression to the list of elements it enumerates.
// A nil value is a miss and enumerates nothing, any other scalar is an error.
func (d *Data) GetCollection(expr string, mode ListMode) ([]interface{}, error) {
	before := len(d.misses)
	target, err := d.Get(expr)
	if err != nil {
		return nil, err
	}

	switch kindOf(target) {
	case kindMapping:
		if mode == ListValues {
			return mappingValues(target), nil
		}
		keys := mappingKeys(target)
		result := make([]interface{}, len(keys))
		for i, k := range keys {
			result[i] = k
		}
		return result, nil

	case kindSequence:
		if mode == ListKeys {
			result := make([]interface{}, sequenceLen(target))
			for i := range result {
				result[i] = strconv.Itoa(i)
			}
			return result, nil
		}
		return sequenceValues(target), nil

	case kindProperties:
		// Opaque objects enumerate their property names by default, like
		// mappings enumerate keys; see the open-point decisions in DESIGN.md.
		source := target.(PropertySource)
		names := source.PropertyNames()
		result := make([]interface{}, len(names))
		for i, name := range names {
			if mode == ListValues {
				result[i], _ = source.Property(name)
			} else {
				result[i] = name
			}
		}
		return result, nil
	}

	if !isNil(target) {
		return nil, NewTypeMismatchError(strings.TrimSpace(expr), "complex object", target)
	}
	// Only report nil once when the path itself already missed.
	if len(d.misses) == before {
		if err := d.record(&ResolutionMiss{
			Remaining: "to collection",
			Resolved:  strings.TrimSpace(expr),
			Reason:    "null",
		}); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// Map resolves expr relative to every element of coll.
func (d *Data) Map(coll []interface{}, expr string) ([]interface{}, error) {
	path, err := d.resolveInner(strings.TrimSpace(expr))
	if err != nil {
		return nil, err
	}
	segments := strings.Split(path, ".")
	result := make([]interface{}, len(coll))
	for i, element := range coll {
		if result[i], err = d.walk(segments, 0, element); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Sort returns a stably sorted copy of coll. Elements are compared directly
// when expr is empty, else by the value expr resolves to relative to each.
func (d *Data) Sort(coll []interface{}, expr string, ascending bool) ([]interface{}, error) {
	keys := coll
	if strings.TrimSpace(expr) != "" {
		var err error
		if keys, err = d.Map(coll, expr); err != nil {
			return nil, err
		}
	}

	type entry struct {
		key   interface{}
		value interface{}
	}
	entries := make([]entry, len(coll))
	for i := range coll {
		entries[i] = entry{key: keys[i], value: coll[i]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		c := Compare(entries[i].key, entries[j].key)
		if ascending {
			return c < 0
		}
		return c > 0
	})

	result := make([]interface{}, len(entries))
	for i, e := range entries {
		result[i] = e.value
	}
	return result, nil
}

// walk resolves segments[i:] starting from element.
func (d *Data) walk(segments []string, i int, element interface{}) (interface{}, error) {
	for ; i < len(segments); i++ {
		if isNil(element) {
			return nil, d.miss(segments, i, "null")
		}
		name := segments[i]

		switch kindOf(element) {
		case kindMapping:
			value, ok := mappingGet(element, name)
			if !ok {
				if i == len(segments)-1 {
					return nil, d.miss(segments, i, "a mapping without that key")
				}
				value = nil
			}
			element = value

		case kindSequence:
			size := sequenceLen(element)
			index, err := strconv.Atoi(name)
			if err != nil || index < 0 || index >= size {
				return nil, d.miss(segments, i, fmt.Sprintf("a collection with %d elements", size))
			}
			element = sequenceAt(element, index)

		case kindProperties:
			value, ok := element.(PropertySource).Property(name)
			if !ok {
				return nil, d.miss(segments, i, fmt.Sprintf("a %T without that property", element))
			}
			element = value

		default:
			return nil, d.miss(segments, i, fmt.Sprintf("a %T", element))
		}
	}
	return element, nil
}

func (d *Data) miss(segments []string, i int, reason string) error {
	return d.record(&ResolutionMiss{
		Remaining: strings.Join(segments[i:], "."),
		Resolved:  strings.Join(segments[:i], "."),
		Reason:    reason,
	})
}

// record fails in strict mode and notes the miss otherwise.
func (d *Data) record(miss *ResolutionMiss) error {
	if d.strict {
		return miss
	}
	d.misses = append(d.misses, miss.Error())
	d.logger.WithField("path", miss.Resolved).Debug("%s", miss.Error())
	return nil
}

// resolveInner rewrites brackets to inner dereferences and substitutes every
// ${...} with the string it resolves to, innermost first.
func (d *Data) resolveInner(expr string) (string, error) {
	result := bracketPattern.ReplaceAllStringFunc(expr, func(s string) string {
		return ".${" + s[1:len(s)-1] + "}"
	})
	for i := 0; ; i++ {
		m := derefPattern.FindStringSubmatch(result)
		if m == nil {
			return result, nil
		}
		if i >= d.maxDeref {
			return "", fmt.Errorf("%w after %d rounds in %q", ErrDerefLimit, d.maxDeref, expr)
		}
		value, err := d.GetString(m[1])
		if err != nil {
			return "", err
		}
		result = strings.ReplaceAll(result, m[0], value)
	}
}

// literal recognizes quoted strings, NULL, booleans and unsigned integers.
func literal(expr string) (interface{}, bool) {
	switch {
	case expr == "NULL":
		return nil, true
	case strings.EqualFold(expr, "true"):
		return true, true
	case strings.EqualFold(expr, "false"):
		return false, true
	case literalPattern.MatchString(expr):
		return expr[1 : len(expr)-1], true
	case integerPattern.MatchString(expr):
		if n, err := strconv.Atoi(expr); err == nil {
			return n, true
		}
	}
	return nil, false
}
