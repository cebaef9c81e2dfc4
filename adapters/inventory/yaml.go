package inventory

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// parseYAML decodes into yaml.Node rather than a map so mapping order is kept
func parseYAML(r io.Reader) (*node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nullNode(), nil
		}
		return nil, err
	}
	return convertYAML(&doc)
}

func convertYAML(n *yaml.Node) (*node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nullNode(), nil
		}
		return convertYAML(n.Content[0])

	case yaml.AliasNode:
		return convertYAML(n.Alias)

	case yaml.SequenceNode:
		list := listNode()
		for _, child := range n.Content {
			item, err := convertYAML(child)
			if err != nil {
				return nil, err
			}
			list.list = append(list.list, item)
		}
		return list, nil

	case yaml.MappingNode:
		obj := objectNode()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			value, err := convertYAML(valueNode)
			if err != nil {
				return nil, err
			}
			obj.fields = append(obj.fields, field{key: keyNode.Value, value: value})
		}
		return obj, nil

	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nullNode(), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return boolNode(b), nil
		case "!!int", "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return numberNode(f), nil
		default:
			// !!str, !!timestamp and custom tags keep their literal text
			return stringNode(n.Value), nil
		}
	}

	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}
