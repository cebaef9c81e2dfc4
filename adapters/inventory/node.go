// Package inventory loads project inventories from JSON, YAML and HCL
// documents into types.ProjectInput.
//
// Every format is first converted into an ordered node tree so that key
// order (which decides multiplier order) survives, then one decoder turns
// the tree into the domain input.
package inventory

import "fmt"

type kind int

const (
	kindNull kind = iota
	kindString
	kindNumber
	kindBool
	kindList
	kindObject
)

func (k kind) String() string {
	switch k {
	case kindNull:
		return "null"
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindBool:
		return "bool"
	case kindList:
		return "sequence"
	case kindObject:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// node is a format-neutral document value
type node struct {
	kind   kind
	str    string
	num    float64
	flag   bool
	list   []*node
	fields []field
}

type field struct {
	key   string
	value *node
}

func nullNode() *node { return &node{kind: kindNull} }
func stringNode(s string) *node { return &node{kind: kindString, str: s} }
func numberNode(f float64) *node { return &node{kind: kindNumber, num: f} }
func boolNode(b bool) *node { return &node{kind: kindBool, flag: b} }
func listNode(items ...*node) *node { return &node{kind: kindList, list: items} }
func objectNode(fields ...field) *node {
	return &node{kind: kindObject, fields: fields}
}

// get returns the first field named key
func (n *node) get(key string) (*node, bool) {
	for _, f := range n.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}
