package types

// EntityEstimate is one resolved row of the per-entity breakdown
type EntityEstimate struct {
	Name       string     `json:"name"`
	Type       Category   `json:"type"`
	Complexity Complexity `json:"complexity"`
	Hours      float64    `json:"hours"`
}

// MultiplierHours is the addend produced by one multiplier
type MultiplierHours struct {
	Name  string
	Hours float64
}

// EstimationResult is the engine's sole output. It is built once per
// invocation and never modified afterwards.
type EstimationResult struct {
	BaseHours       float64
	MultiplierHours float64
	MigrationHours  float64
	AdditionalHours float64
	Subtotal        float64
	BufferHours     float64
	TotalHours      float64

	// Breakdown is ordered by category, then by input order
	Breakdown []EntityEstimate

	// Multipliers keep the order of the input multipliers
	Multipliers []MultiplierHours

	Assumptions []string
	Risks       []string
}

// CategoryGroup is a run of breakdown rows sharing a category
type CategoryGroup struct {
	Category Category
	Entities []EntityEstimate
	Hours    float64
}

// GroupByCategory groups the breakdown by category in first-seen order
func (r *EstimationResult) GroupByCategory() []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[Category]int)
	for _, e := range r.Breakdown {
		i, ok := index[e.Type]
		if !ok {
			i = len(groups)
			index[e.Type] = i
			groups = append(groups, CategoryGroup{Category: e.Type})
		}
		groups[i].Entities = append(groups[i].Entities, e)
		groups[i].Hours += e.Hours
	}
	return groups
}
