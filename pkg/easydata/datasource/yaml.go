package datasource

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/benjaminschreck/go-easydata/pkg/easydata"
)

// FromYAML decodes the first document of a YAML stream. An empty stream
// yields nil.
func FromYAML(r io.Reader) (interface{}, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return convertNode(&doc)
}

func convertNode(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return convertNode(n.Content[0])

	case yaml.MappingNode:
		obj := easydata.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind == yaml.ScalarNode && key.Value == "<<" && key.ShortTag() == "!!merge" {
				if err := merge(obj, value); err != nil {
					return nil, err
				}
				continue
			}
			v, err := convertNode(value)
			if err != nil {
				return nil, err
			}
			obj.Set(key.Value, v)
		}
		return obj, nil

	case yaml.SequenceNode:
		list := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := convertNode(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil

	case yaml.AliasNode:
		return convertNode(n.Alias)

	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if i, ok := v.(int); ok {
			return int64(i), nil
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

// merge copies the entries of a "<<" merge key into obj.
func merge(obj *easydata.Object, value *yaml.Node) error {
	v, err := convertNode(value)
	if err != nil {
		return err
	}
	sources := []interface{}{v}
	if list, ok := v.([]interface{}); ok {
		sources = list
	}
	for _, s := range sources {
		src, ok := s.(*easydata.Object)
		if !ok {
			return fmt.Errorf("line %d: merge value is not a mapping", value.Line)
		}
		for _, k := range src.Keys() {
			if _, exists := obj.Get(k); !exists {
				mv, _ := src.Get(k)
				obj.Set(k, mv)
			}
		}
	}
	return nil
}
