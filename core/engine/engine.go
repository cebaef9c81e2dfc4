// Package engine converts an entity inventory plus configuration into an
// itemized hour estimate.
//
// The engine is pure: no I/O, no logging, no shared mutable state. The order
// of the stages in Estimate matters because later percentages are taken of
// earlier sums.
package engine

import (
	"website-audit/core/types"
)

// Estimate computes the full estimate for one input snapshot. An unknown
// category or malformed value fails the whole calculation and no result is
// returned.
func Estimate(input *types.ProjectInput) (*types.EstimationResult, error) {
	if err := Validate(input); err != nil {
		return nil, err
	}

	baseHours, breakdown := BaseHours(input.Sections)
	multiplierHours, applied := ApplyMultipliers(baseHours, input.Multipliers)
	migrationHours := MigrationHours(input.Migration)

	subtotalBeforePM := baseHours + multiplierHours + migrationHours + InfrastructureSetupHours + TrainingHandoverHours
	pmHours := PMHours(subtotalBeforePM)
	additionalHours := InfrastructureSetupHours + TrainingHandoverHours + pmHours

	subtotal := subtotalBeforePM + pmHours
	bufferHours := subtotal * BufferPercentage(input.ResolvedRiskLevel())
	totalHours := subtotal + bufferHours

	return &types.EstimationResult{
		BaseHours:       baseHours,
		MultiplierHours: multiplierHours,
		MigrationHours:  migrationHours,
		AdditionalHours: additionalHours,
		Subtotal:        subtotal,
		BufferHours:     bufferHours,
		TotalHours:      totalHours,
		Breakdown:       breakdown,
		Multipliers:     applied,
		Assumptions:     ResolveAssumptions(input.Assumptions),
		Risks:           ResolveRisks(input.Risks),
	}, nil
}

// BaseHours sums the table cost of every entity. Sections must already be
// validated; sections with unknown keys are skipped.
func BaseHours(sections []types.Section) (float64, []types.EntityEstimate) {
	total := 0.0
	breakdown := make([]types.EntityEstimate, 0)

	for _, category := range types.Categories() {
		key := types.KeyForCategory(category)
		for _, section := range sections {
			if section.Key != key {
				continue
			}
			for _, entity := range section.Entities {
				complexity := entity.ResolvedComplexity()
				hours, _ := EntityHours(category, complexity)
				breakdown = append(breakdown, types.EntityEstimate{
					Name:       entity.ResolvedName(),
					Type:       category,
					Complexity: complexity,
					Hours:      hours,
				})
				total += hours
			}
		}
	}

	return total, breakdown
}

// ApplyMultipliers applies each rate independently to baseHours
func ApplyMultipliers(baseHours float64, multipliers []types.Multiplier) (float64, []types.MultiplierHours) {
	total := 0.0
	applied := make([]types.MultiplierHours, 0, len(multipliers))

	for _, m := range multipliers {
		hours := baseHours * m.Rate
		applied = append(applied, types.MultiplierHours{Name: m.Name, Hours: hours})
		total += hours
	}

	return total, applied
}

// MigrationHours returns 0 without a migration or with zero nodes
func MigrationHours(m *types.Migration) float64 {
	if m == nil || m.Nodes == 0 {
		return 0
	}

	hoursPerBlock := MigrationBaseRate * MigrationMultiplier(m.ResolvedComplexity())
	nodeHours := (float64(m.Nodes) / MigrationNodeBlock) * hoursPerBlock

	return MigrationSetupHours + nodeHours
}

// PMHours is the project-management overhead on a subtotal that excludes PM itself
func PMHours(subtotalBeforePM float64) float64 {
	return subtotalBeforePM * PMRate
}
