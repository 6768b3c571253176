package easydata

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// valueKind classifies data graph nodes.
type valueKind int

const (
	kindScalar valueKind = iota
	kindMapping
	kindSequence
	kindProperties
)

func (k valueKind) String() string {
	switch k {
	case kindMapping:
		return "mapping"
	case kindSequence:
		return "sequence"
	case kindProperties:
		return "property source"
	default:
		return "scalar"
	}
}

var numericString = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

func kindOf(v interface{}) valueKind {
	if isNil(v) {
		return kindScalar
	}
	switch v.(type) {
	case *Object, map[string]interface{}:
		return kindMapping
	case []interface{}:
		return kindSequence
	case PropertySource:
		return kindProperties
	case string, []byte:
		return kindScalar
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return kindMapping
		}
	case reflect.Slice, reflect.Array:
		return kindSequence
	}
	return kindScalar
}

// isNil reports untyped nil and nil pointers alike.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func isContainer(v interface{}) bool {
	k := kindOf(v)
	return k == kindMapping || k == kindSequence
}

// mappingKeys returns the keys of a mapping node. Objects keep their insertion
// order, Go maps are enumerated sorted.
func mappingKeys(v interface{}) []string {
	switch m := v.(type) {
	case *Object:
		return m.Keys()
	case map[string]interface{}:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}
	rv := reflect.ValueOf(v)
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return keys
}

func mappingGet(v interface{}, key string) (interface{}, bool) {
	switch m := v.(type) {
	case *Object:
		return m.Get(key)
	case map[string]interface{}:
		value, ok := m[key]
		return value, ok
	}
	rv := reflect.ValueOf(v)
	value := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !value.IsValid() {
		return nil, false
	}
	return value.Interface(), true
}

func mappingValues(v interface{}) []interface{} {
	if o, ok := v.(*Object); ok {
		return o.Values()
	}
	keys := mappingKeys(v)
	result := make([]interface{}, len(keys))
	for i, k := range keys {
		result[i], _ = mappingGet(v, k)
	}
	return result
}

func sequenceValues(v interface{}) []interface{} {
	if s, ok := v.([]interface{}); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	result := make([]interface{}, rv.Len())
	for i := range result {
		result[i] = rv.Index(i).Interface()
	}
	return result
}

func sequenceLen(v interface{}) int {
	if s, ok := v.([]interface{}); ok {
		return len(s)
	}
	return reflect.ValueOf(v).Len()
}

func sequenceAt(v interface{}, i int) interface{} {
	if s, ok := v.([]interface{}); ok {
		return s[i]
	}
	return reflect.ValueOf(v).Index(i).Interface()
}

// stringify renders a scalar the way it appears in output.
func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// toNumber converts numbers and numeric strings to float64.
func toNumber(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case string:
		if !numericString.MatchString(x) {
			return 0, false
		}
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// Compare orders two values ascending: numerically if both are numbers or
// numeric strings, by natural order for strings, booleans and times, and by
// their string form otherwise. nil sorts first.
func Compare(a, b interface{}) int {
	if x, ok := toNumber(a); ok {
		if y, ok := toNumber(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}

	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

// Equal reports whether two values are the same for the IF tag. Scalars are
// equal if Compare finds no difference, containers if they are deeply equal.
func Equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if kindOf(a) == kindScalar && kindOf(b) == kindScalar {
		return Compare(a, b) == 0
	}
	return reflect.DeepEqual(a, b)
}

// Truthy reports whether a value counts as true when used alone as a condition.
func Truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if n, ok := toNumber(v); ok {
		return n != 0
	}
	return true
}
