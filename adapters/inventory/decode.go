package inventory

import (
	"math"

	"go.uber.org/zap"

	"website-audit/core/types"
	apperrors "website-audit/internal/errors"
)

// decodeDocument maps a node tree onto a ProjectInput. Absent or null keys
// keep their defaults; values of the wrong shape are validation errors.
// Category names are not checked here, the engine rejects unknown ones.
func decodeDocument(root *node, log *zap.Logger) (*types.ProjectInput, error) {
	if root.kind == kindNull {
		return &types.ProjectInput{}, nil
	}
	if root.kind != kindObject {
		return nil, apperrors.Validation("document", "expected mapping, got %s", root.kind)
	}

	input := &types.ProjectInput{}
	sections := make(map[string]int)

	for _, f := range root.fields {
		var err error
		switch f.key {
		case types.KeyProjectName:
			input.ProjectName, err = optionalString(f.key, f.value)
		case types.KeyAuditDate:
			input.AuditDate, err = optionalString(f.key, f.value)
		case types.KeyRiskLevel:
			input.RiskLevel, err = optionalString(f.key, f.value)
		case types.KeyMultipliers:
			input.Multipliers, err = decodeMultipliers(f.value)
		case types.KeyMigration:
			input.Migration, err = decodeMigration(f.value)
		case types.KeyAssumptions:
			input.Assumptions, err = stringList(f.key, f.value)
		case types.KeyRisks:
			input.Risks, err = stringList(f.key, f.value)
		default:
			if _, known := types.CategoryForKey(f.key); known && f.value.kind != kindList && f.value.kind != kindNull {
				return nil, apperrors.Validation(f.key, "expected sequence of entities, got %s", f.value.kind)
			}
			if f.value.kind != kindList {
				log.Debug("ignoring non-inventory key", zap.String("key", f.key), zap.Stringer("kind", f.value.kind))
				continue
			}
			var entities []types.Entity
			entities, err = decodeEntities(f.key, f.value)
			if err == nil {
				if i, ok := sections[f.key]; ok {
					input.Sections[i].Entities = append(input.Sections[i].Entities, entities...)
				} else {
					sections[f.key] = len(input.Sections)
					input.Sections = append(input.Sections, types.Section{Key: f.key, Entities: entities})
				}
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return input, nil
}

func optionalString(path string, n *node) (string, error) {
	switch n.kind {
	case kindNull:
		return "", nil
	case kindString:
		return n.str, nil
	}
	return "", apperrors.Validation(path, "expected string, got %s", n.kind)
}

func stringList(path string, n *node) ([]string, error) {
	if n.kind == kindNull {
		return nil, nil
	}
	if n.kind != kindList {
		return nil, apperrors.Validation(path, "expected sequence of strings, got %s", n.kind)
	}
	out := make([]string, 0, len(n.list))
	for _, item := range n.list {
		if item.kind != kindString {
			return nil, apperrors.Validation(path, "expected string item, got %s", item.kind)
		}
		out = append(out, item.str)
	}
	return out, nil
}

func decodeMultipliers(n *node) ([]types.Multiplier, error) {
	if n.kind == kindNull {
		return nil, nil
	}
	if n.kind != kindObject {
		return nil, apperrors.Validation(types.KeyMultipliers, "expected mapping, got %s", n.kind)
	}
	out := make([]types.Multiplier, 0, len(n.fields))
	for _, f := range n.fields {
		if f.value.kind != kindNumber {
			return nil, apperrors.Validation(types.KeyMultipliers+"."+f.key, "expected number, got %s", f.value.kind)
		}
		out = append(out, types.Multiplier{Name: f.key, Rate: f.value.num})
	}
	return out, nil
}

func decodeMigration(n *node) (*types.Migration, error) {
	if n.kind == kindNull {
		return nil, nil
	}
	if n.kind != kindObject {
		return nil, apperrors.Validation(types.KeyMigration, "expected mapping, got %s", n.kind)
	}

	m := &types.Migration{}
	if v, ok := n.get("nodes"); ok && v.kind != kindNull {
		nodes, err := nodeCount(v)
		if err != nil {
			return nil, err
		}
		m.Nodes = nodes
	}
	if v, ok := n.get("complexity"); ok {
		cx, err := optionalString(types.KeyMigration+".complexity", v)
		if err != nil {
			return nil, err
		}
		m.Complexity = cx
	}
	return m, nil
}

// maxNodes is the largest count a float64 holds exactly
const maxNodes = 1 << 53

// nodeCount accepts whole numbers only; 500.0 is fine, 500.5 is not.
// Negative counts pass through so the engine reports them.
func nodeCount(v *node) (int, error) {
	const path = types.KeyMigration + ".nodes"
	if v.kind != kindNumber {
		return 0, apperrors.Validation(path, "expected integer, got %s", v.kind)
	}
	if v.num != math.Trunc(v.num) || math.IsInf(v.num, 0) {
		return 0, apperrors.Validation(path, "expected integer, got %v", v.num)
	}
	if math.Abs(v.num) > maxNodes || v.num > float64(math.MaxInt) || v.num < float64(math.MinInt) {
		return 0, apperrors.Validation(path, "out of range: %v", v.num)
	}
	return int(v.num), nil
}

func decodeEntities(key string, n *node) ([]types.Entity, error) {
	out := make([]types.Entity, 0, len(n.list))
	for _, item := range n.list {
		if item.kind != kindObject {
			return nil, apperrors.Validation(key, "expected entity mapping, got %s", item.kind)
		}
		var e types.Entity
		var err error
		if v, ok := item.get("name"); ok {
			if e.Name, err = optionalString(key+".name", v); err != nil {
				return nil, err
			}
		}
		if v, ok := item.get("complexity"); ok {
			if e.Complexity, err = optionalString(key+".complexity", v); err != nil {
				return nil, err
			}
		}
		out = append(out, e)
	}
	return out, nil
}
