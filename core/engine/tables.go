package engine

import "website-audit/core/types"

// Fixed effort, in hours
const (
	InfrastructureSetupHours = 60.0
	TrainingHandoverHours    = 30.0
)

// PMRate is the project-management share of the pre-PM subtotal
const PMRate = 0.18

// Migration effort
const (
	// MigrationSetupHours is paid once whenever any content is migrated
	MigrationSetupHours = 30.0

	// MigrationBaseRate is hours per 100 nodes before the tier multiplier
	MigrationBaseRate = 10.0

	// MigrationNodeBlock is the node count MigrationBaseRate applies to
	MigrationNodeBlock = 100.0
)

// Contingency buffer percentages
const (
	BufferLow    = 0.15
	BufferMedium = 0.20
	BufferHigh   = 0.25
)

// estimationTable is the cost model in hours per entity. Read-only after init.
var estimationTable = map[types.Category]map[types.Complexity]float64{
	types.CategoryContentType:    {types.ComplexitySimple: 3, types.ComplexityMedium: 6, types.ComplexityComplex: 12},
	types.CategoryParagraph:      {types.ComplexitySimple: 1.5, types.ComplexityMedium: 3.5, types.ComplexityComplex: 6},
	types.CategoryTaxonomy:       {types.ComplexitySimple: 1.5, types.ComplexityMedium: 3, types.ComplexityComplex: 6},
	types.CategoryMediaType:      {types.ComplexitySimple: 1.5, types.ComplexityMedium: 3, types.ComplexityComplex: 3.5},
	types.CategoryView:           {types.ComplexitySimple: 3, types.ComplexityMedium: 6, types.ComplexityComplex: 12},
	types.CategoryWebform:        {types.ComplexitySimple: 3, types.ComplexityMedium: 6, types.ComplexityComplex: 12},
	types.CategoryBlock:          {types.ComplexitySimple: 1.5, types.ComplexityMedium: 3, types.ComplexityComplex: 6},
	types.CategoryCustomModule:   {types.ComplexitySimple: 12, types.ComplexityMedium: 28, types.ComplexityComplex: 70},
	types.CategoryThemeComponent: {types.ComplexitySimple: 3, types.ComplexityMedium: 6, types.ComplexityComplex: 12},
}

var migrationMultipliers = map[types.Complexity]float64{
	types.ComplexitySimple:  1.0,
	types.ComplexityMedium:  2.0,
	types.ComplexityComplex: 3.5,
}

var bufferPercentages = map[types.RiskLevel]float64{
	types.RiskLow:    BufferLow,
	types.RiskMedium: BufferMedium,
	types.RiskHigh:   BufferHigh,
}

// EntityHours returns the base cost of one entity. ok is false for an unknown
// category; an unknown tier on a known category yields 0 with ok true.
func EntityHours(c types.Category, cx types.Complexity) (hours float64, ok bool) {
	tiers, ok := estimationTable[c]
	if !ok {
		return 0, false
	}
	return tiers[cx], true
}

// MigrationMultiplier returns the tier multiplier, medium for unknown tiers
func MigrationMultiplier(cx types.Complexity) float64 {
	if m, ok := migrationMultipliers[cx]; ok {
		return m
	}
	return migrationMultipliers[types.ComplexityMedium]
}

// BufferPercentage returns the contingency fraction for a resolved risk level
func BufferPercentage(level types.RiskLevel) float64 {
	if p, ok := bufferPercentages[level]; ok {
		return p
	}
	return bufferPercentages[types.DefaultRiskLevel]
}

// CostModel is a copy of every constant table, for display and export
type CostModel struct {
	Entities             map[types.Category]map[types.Complexity]float64 `json:"entities"`
	MigrationMultipliers map[types.Complexity]float64                    `json:"migration_multipliers"`
	MigrationSetupHours  float64                                         `json:"migration_setup_hours"`
	MigrationBaseRate    float64                                         `json:"migration_hours_per_100_nodes"`
	BufferPercentages    map[types.RiskLevel]float64                     `json:"buffer_percentages"`
	InfrastructureHours  float64                                         `json:"infrastructure_setup_hours"`
	TrainingHours        float64                                         `json:"training_handover_hours"`
	PMRate               float64                                         `json:"pm_rate"`
}

// Model returns a copy of the cost model; mutating it has no effect on estimates
func Model() CostModel {
	entities := make(map[types.Category]map[types.Complexity]float64, len(estimationTable))
	for c, tiers := range estimationTable {
		cp := make(map[types.Complexity]float64, len(tiers))
		for cx, h := range tiers {
			cp[cx] = h
		}
		entities[c] = cp
	}
	migration := make(map[types.Complexity]float64, len(migrationMultipliers))
	for cx, m := range migrationMultipliers {
		migration[cx] = m
	}
	buffers := make(map[types.RiskLevel]float64, len(bufferPercentages))
	for l, p := range bufferPercentages {
		buffers[l] = p
	}
	return CostModel{
		Entities:             entities,
		MigrationMultipliers: migration,
		MigrationSetupHours:  MigrationSetupHours,
		MigrationBaseRate:    MigrationBaseRate,
		BufferPercentages:    buffers,
		InfrastructureHours:  InfrastructureSetupHours,
		TrainingHours:        TrainingHandoverHours,
		PMRate:               PMRate,
	}
}
