package easydata

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/ahrtr/gocontainer/set"
)

// forTag repeats its body for the elements of a collection, resolving the
// alternate (DELIM) content between consecutive elements:
//
//	[@FOR name: coll[.keys|.values] [SELECT path] [UNIQUE] [ASCENDING|DESCENDING [path]]]
type forTag struct {
	complexTag
	name       string
	collection string
	mode       ListMode
	selectExpr string
	unique     bool
	order      string
	orderExpr  string
}

func (f *TagFactory) newFor(m []string, start Token, remaining TokenSource) (Resolver, error) {
	t := &forTag{
		name:       m[1],
		collection: m[2],
		selectExpr: m[4],
		unique:     m[5] != "",
		order:      m[6],
		orderExpr:  m[7],
	}
	switch m[3] {
	case "keys":
		t.mode = ListKeys
	case "values":
		t.mode = ListValues
	}
	if err := t.parse(f, start, remaining, "DELIM", "/FOR"); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *forTag) Resolve(start Token, data *Data, out io.Writer) error {
	elements, err := t.elements(data)
	if err != nil {
		return withLocation(err, start)
	}
	for i, element := range elements {
		data.Define(t.name, element)
		err := resolveContent(t.content, data, out)
		if err == nil && i < len(elements)-1 {
			err = resolveContent(t.otherContent, data, out)
		}
		data.Undefine(t.name)
		if err != nil {
			return withLocation(err, start)
		}
	}
	return nil
}

// elements selects, sorts and de-duplicates, in that order.
func (t *forTag) elements(data *Data) ([]interface{}, error) {
	elements, err := data.GetCollection(t.collection, t.mode)
	if err != nil {
		return nil, err
	}
	if t.selectExpr != "" {
		if elements, err = data.Map(elements, t.selectExpr); err != nil {
			return nil, err
		}
	}
	if t.order != "" {
		if elements, err = data.Sort(elements, t.orderExpr, t.order == "ASCENDING"); err != nil {
			return nil, err
		}
	}
	if t.unique {
		elements = distinct(elements)
	}
	return elements, nil
}

// distinct removes repeated elements keeping the first occurrence. Hashable
// scalars are tracked in a set, containers are compared deeply.
func distinct(elements []interface{}) []interface{} {
	seen := set.New()
	var containers []interface{}
	result := make([]interface{}, 0, len(elements))
	for _, e := range elements {
		if kindOf(e) == kindScalar && (e == nil || reflect.TypeOf(e).Comparable()) {
			if seen.Contains(e) {
				continue
			}
			seen.Add(e)
			result = append(result, e)
			continue
		}
		duplicate := false
		for _, c := range containers {
			if reflect.DeepEqual(c, e) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			containers = append(containers, e)
			result = append(result, e)
		}
	}
	return result
}

// ifTag resolves its primary content if the condition holds and the alternate
// (ELSE) content otherwise. Without an operator the condition is the truthiness
// of the left side, which is bound to "_" inside the branch.
type ifTag struct {
	complexTag
	left     string
	operator string
	right    string
}

// ConditionValue is the name the value of an operator-less IF is bound to.
const ConditionValue = "_"

func (f *TagFactory) newIf(m []string, start Token, remaining TokenSource) (Resolver, error) {
	t := &ifTag{left: strings.TrimSpace(m[1])}
	if len(m) > 3 {
		t.operator = m[2]
		t.right = strings.TrimSpace(m[3])
	}
	if err := t.parse(f, start, remaining, "ELSE", "/IF"); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *ifTag) Resolve(start Token, data *Data, out io.Writer) error {
	left, err := data.Get(t.left)
	if err != nil {
		return withLocation(err, start)
	}

	if t.operator == "" {
		if !Truthy(left) {
			return withLocation(resolveContent(t.otherContent, data, out), start)
		}
		data.Define(ConditionValue, left)
		err := resolveContent(t.content, data, out)
		data.Undefine(ConditionValue)
		return withLocation(err, start)
	}

	right, err := data.Get(t.right)
	if err != nil {
		return withLocation(err, start)
	}
	var holds bool
	switch t.operator {
	case "==":
		holds = Equal(left, right)
	case "!=":
		holds = !Equal(left, right)
	case "<":
		holds = Compare(left, right) < 0
	case ">":
		holds = Compare(left, right) > 0
	default:
		return withLocation(fmt.Errorf("unsupported operator %q", t.operator), start)
	}

	if holds {
		return withLocation(resolveContent(t.content, data, out), start)
	}
	return withLocation(resolveContent(t.otherContent, data, out), start)
}
