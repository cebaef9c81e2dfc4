package inventory

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"website-audit/core/types"
)

// Block types with a fixed meaning. Every other block type is an entity
// category, e.g.
//
//	content_types "Page" { complexity = "simple" }
const (
	blockMultiplier = "multiplier"
	blockMigration  = "migration"
)

// parseHCL converts an HCL inventory. Multipliers written as blocks keep
// their order; a multipliers = {...} attribute is sorted by key, as cty
// objects are.
func parseHCL(src []byte, filename string) (*node, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected HCL body type %T", filename, file.Body)
	}

	root := objectNode()

	attrs, err := convertAttributes(body)
	if err != nil {
		return nil, err
	}
	root.fields = append(root.fields, attrs...)

	for _, block := range body.Blocks {
		switch block.Type {
		case blockMultiplier:
			if len(block.Labels) != 1 {
				return nil, blockError(block, "multiplier blocks take exactly one label")
			}
			rate, err := blockAttribute(block, "rate")
			if err != nil {
				return nil, err
			}
			multipliers := ensureField(root, types.KeyMultipliers, kindObject)
			multipliers.fields = append(multipliers.fields, field{key: block.Labels[0], value: rate})

		case blockMigration:
			if _, exists := root.get(types.KeyMigration); exists {
				return nil, blockError(block, "migration may only be declared once")
			}
			fields, err := convertAttributes(block.Body)
			if err != nil {
				return nil, err
			}
			root.fields = append(root.fields, field{key: types.KeyMigration, value: objectNode(fields...)})

		default:
			if len(block.Labels) > 1 {
				return nil, blockError(block, "entity blocks take at most one label (the entity name)")
			}
			fields, err := convertAttributes(block.Body)
			if err != nil {
				return nil, err
			}
			entity := objectNode(fields...)
			if len(block.Labels) == 1 {
				entity.fields = append([]field{{key: "name", value: stringNode(block.Labels[0])}}, entity.fields...)
			}
			section := ensureField(root, block.Type, kindList)
			section.list = append(section.list, entity)
		}
	}

	return root, nil
}

// convertAttributes evaluates attributes without variables, in source order
func convertAttributes(body *hclsyntax.Body) ([]field, error) {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	fields := make([]field, 0, len(attrs))
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		n, err := convertCty(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", attr.SrcRange, attr.Name, err)
		}
		fields = append(fields, field{key: attr.Name, value: n})
	}
	return fields, nil
}

func blockAttribute(block *hclsyntax.Block, name string) (*node, error) {
	attr, ok := block.Body.Attributes[name]
	if !ok {
		return nil, blockError(block, fmt.Sprintf("missing required attribute %q", name))
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	return convertCty(val)
}

func ensureField(root *node, key string, k kind) *node {
	if existing, ok := root.get(key); ok && existing.kind == k {
		return existing
	}
	n := &node{kind: k}
	root.fields = append(root.fields, field{key: key, value: n})
	return n
}

func blockError(block *hclsyntax.Block, msg string) error {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("Invalid %s block", block.Type),
		Detail:   msg,
		Subject:  block.DefRange().Ptr(),
	}}
}

func convertCty(val cty.Value) (*node, error) {
	if !val.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return nullNode(), nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return stringNode(val.AsString()), nil

	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return numberNode(f), nil

	case ty == cty.Bool:
		return boolNode(val.True()), nil

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		list := listNode()
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			item, err := convertCty(elem)
			if err != nil {
				return nil, err
			}
			list.list = append(list.list, item)
		}
		return list, nil

	case ty.IsMapType() || ty.IsObjectType():
		obj := objectNode()
		for it := val.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			value, err := convertCty(elem)
			if err != nil {
				return nil, err
			}
			obj.fields = append(obj.fields, field{key: key.AsString(), value: value})
		}
		return obj, nil
	}

	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
