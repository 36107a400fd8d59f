package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-callout/pkg/model"
)

const mergeKey = "<<"

func parseYAML(data []byte, source string) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("loader: parse %s: %w", source, err)
	}
	value, err := fromYAMLNode(&doc)
	if err != nil {
		return nil, fmt.Errorf("loader: parse %s: %w", source, err)
	}
	return value, nil
}

func fromYAMLNode(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)
	case yaml.SequenceNode:
		list := model.NewList()
		for _, child := range node.Content {
			value, err := fromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			list.Append(value)
		}
		return list, nil
	case yaml.MappingNode:
		obj := model.NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			value, err := fromYAMLNode(valueNode)
			if err != nil {
				return nil, err
			}
			if keyNode.Value == mergeKey && keyNode.ShortTag() == "!!merge" {
				merge(obj, value)
				continue
			}
			obj.Set(keyNode.Value, value)
		}
		return obj, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", node.Line, node.Kind)
}

func fromYAMLScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return i, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return f, nil
	default:
		return node.Value, nil
	}
}

// merge copies keys of a `<<` source that obj does not define yet.
func merge(obj *model.Object, source any) {
	switch typed := source.(type) {
	case *model.Object:
		for _, k := range typed.Keys() {
			if _, exists := obj.Get(k); exists {
				continue
			}
			v, _ := typed.Get(k)
			obj.Set(k, v)
		}
	case *model.List:
		for _, item := range typed.Items {
			merge(obj, item)
		}
	}
}
