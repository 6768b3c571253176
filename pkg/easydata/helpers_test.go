package easydata

import (
	"strings"
	"testing"
)

// exampleData mirrors testdata/data.json.
func exampleData() *Object {
	return ObjectOf(
		"Name", "Horst",
		"Address", ObjectOf("City", "Wolkenkuckuksheim"),
		"Hobbys", []interface{}{"Tanzen", "Schlafen", "Feuerschlucken"},
		"index", "2",
		"friends", ObjectOf(
			"Emil", ObjectOf("city", "Gera", "distance", 90),
			"Oskar", ObjectOf("city", "Rom", "distance", 1500),
			"Heinz", ObjectOf("city", "Berlin", "distance", 250),
			"Franz", ObjectOf("city", "Berlin", "distance", 250),
		),
	)
}

// expand runs template through a fresh expander and data view over root.
func expand(t *testing.T, root interface{}, template string, opts ...Option) (string, *Data, error) {
	t.Helper()
	e := NewWithOptions(append([]Option{WithLogger(NewLogger(nil, LogOff))}, opts...)...)
	data := e.NewData(root)
	var out strings.Builder
	err := e.Expand(data, strings.NewReader(template), &out)
	return out.String(), data, err
}

// person exposes properties without being a mapping.
type person struct {
	name string
	age  int
}

func (p *person) Property(name string) (interface{}, bool) {
	switch name {
	case "name":
		return p.name, true
	case "age":
		return p.age, true
	}
	return nil, false
}

func (p *person) PropertyNames() []string {
	return []string{"name", "age"}
}
