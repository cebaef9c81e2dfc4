package engine

import (
	"math"

	"website-audit/core/types"
	apperrors "website-audit/internal/errors"
)

// Validate checks the input before any hours are computed. Category keys are
// checked in document order so the first unknown key is reported.
func Validate(input *types.ProjectInput) error {
	if input == nil {
		return apperrors.New(apperrors.TypeValidation, "input is nil")
	}

	for _, section := range input.Sections {
		if _, ok := types.CategoryForKey(section.Key); !ok {
			return apperrors.UnknownCategory(section.Key)
		}
	}

	if m := input.Migration; m != nil && m.Nodes < 0 {
		return apperrors.Validation("migration.nodes", "must not be negative, got %d", m.Nodes)
	}

	for _, mult := range input.Multipliers {
		if math.IsNaN(mult.Rate) || math.IsInf(mult.Rate, 0) {
			return apperrors.Validation("multipliers."+mult.Name, "rate must be finite")
		}
	}

	return nil
}
