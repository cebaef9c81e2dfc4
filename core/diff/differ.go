// Package diff provides entity-level estimate diffing.
// Compares two estimation results, typically two saved exports of the
// same site taken at different points of an audit.
package diff

import (
	"math"
	"sort"

	"website-audit/core/output"
	"website-audit/core/types"
)

// DiffResult is the complete diff between two estimation results
type DiffResult struct {
	// Overall summary
	TotalBefore  float64 `json:"total_before"`
	TotalAfter   float64 `json:"total_after"`
	TotalDelta   float64 `json:"total_delta"`
	DeltaPercent float64 `json:"delta_percent"`

	// Lines is every summary figure, before and after, in report order
	Lines []LineDiff `json:"lines"`

	// Categories holds per-category hour totals present in either result
	Categories []CategoryDiff `json:"categories"`

	// Entity-level changes
	Added     []*EntityDiff `json:"added"`
	Removed   []*EntityDiff `json:"removed"`
	Changed   []*EntityDiff `json:"changed"`
	Unchanged []*EntityDiff `json:"unchanged"`
}

// LineDiff is one summary figure
type LineDiff struct {
	Label  string  `json:"label"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Delta  float64 `json:"delta"`
}

// CategoryDiff compares the hours of one category
type CategoryDiff struct {
	Category types.Category `json:"category"`
	Before   float64        `json:"before"`
	After    float64        `json:"after"`
	Delta    float64        `json:"delta"`
}

// EntityDiff describes changes to a single entity
type EntityDiff struct {
	Category types.Category `json:"category"`
	Name     string         `json:"name"`

	// Occurrence numbers entities sharing category and name, from 0
	Occurrence int `json:"occurrence"`

	ChangeType ChangeType            `json:"change"`
	Before     *types.EntityEstimate `json:"before,omitempty"`
	After      *types.EntityEstimate `json:"after,omitempty"`
	Delta      float64               `json:"delta"`
}

// ChangeType indicates the type of change
type ChangeType int

const (
	ChangeAdded     ChangeType = iota // New entity
	ChangeRemoved                     // Entity removed
	ChangeModified                    // Complexity or hours changed
	ChangeUnchanged                   // No change
)

// String returns the change type name
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// MarshalText encodes the change type by name
func (c ChangeType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// HasChanges reports whether anything differs
func (r *DiffResult) HasChanges() bool {
	if len(r.Added)+len(r.Removed)+len(r.Changed) > 0 {
		return true
	}
	for _, l := range r.Lines {
		if l.Delta != 0 {
			return true
		}
	}
	return false
}

// Differ computes diffs between estimation results
type Differ struct {
	// Hour differences at or below Tolerance count as unchanged
	Tolerance float64
}

// NewDiffer creates a new differ
func NewDiffer(tolerance float64) *Differ {
	if tolerance <= 0 {
		tolerance = 1e-9
	}
	return &Differ{Tolerance: tolerance}
}

type entityKey struct {
	category   types.Category
	name       string
	occurrence int
}

// Diff computes the diff between before and after
func (d *Differ) Diff(before, after *types.EstimationResult) *DiffResult {
	result := &DiffResult{
		TotalBefore: before.TotalHours,
		TotalAfter:  after.TotalHours,
		TotalDelta:  d.round(after.TotalHours - before.TotalHours),
		Added:       []*EntityDiff{},
		Removed:     []*EntityDiff{},
		Changed:     []*EntityDiff{},
		Unchanged:   []*EntityDiff{},
	}
	if before.TotalHours != 0 {
		result.DeltaPercent = result.TotalDelta / before.TotalHours * 100
	}

	result.Lines = d.lines(before, after)
	result.Categories = d.categories(before, after)

	beforeMap, beforeKeys := index(before.Breakdown)
	afterMap, afterKeys := index(after.Breakdown)

	// Find added, changed, unchanged in after's order
	for _, key := range afterKeys {
		afterEntity := afterMap[key]
		beforeEntity, existed := beforeMap[key]

		diff := &EntityDiff{
			Category:   key.category,
			Name:       key.name,
			Occurrence: key.occurrence,
			After:      afterEntity,
		}
		if !existed {
			diff.ChangeType = ChangeAdded
			diff.Delta = afterEntity.Hours
			result.Added = append(result.Added, diff)
			continue
		}

		diff.Before = beforeEntity
		diff.Delta = d.round(afterEntity.Hours - beforeEntity.Hours)
		if diff.Delta != 0 || beforeEntity.Complexity != afterEntity.Complexity {
			diff.ChangeType = ChangeModified
			result.Changed = append(result.Changed, diff)
		} else {
			diff.ChangeType = ChangeUnchanged
			result.Unchanged = append(result.Unchanged, diff)
		}
	}

	// Find removed in before's order
	for _, key := range beforeKeys {
		if _, exists := afterMap[key]; exists {
			continue
		}
		e := beforeMap[key]
		result.Removed = append(result.Removed, &EntityDiff{
			Category:   key.category,
			Name:       key.name,
			Occurrence: key.occurrence,
			ChangeType: ChangeRemoved,
			Before:     e,
			Delta:      -e.Hours,
		})
	}

	return result
}

// round snaps differences within the tolerance to zero
func (d *Differ) round(delta float64) float64 {
	if math.Abs(delta) <= d.Tolerance {
		return 0
	}
	return delta
}

func (d *Differ) lines(before, after *types.EstimationResult) []LineDiff {
	pairs := []struct {
		label         string
		before, after float64
	}{
		{"Base Development", before.BaseHours, after.BaseHours},
		{"Multipliers", before.MultiplierHours, after.MultiplierHours},
		{"Content Migration", before.MigrationHours, after.MigrationHours},
		{"Additional Effort", before.AdditionalHours, after.AdditionalHours},
		{"Subtotal", before.Subtotal, after.Subtotal},
		{"Risk Buffer", before.BufferHours, after.BufferHours},
		{"Total", before.TotalHours, after.TotalHours},
	}
	lines := make([]LineDiff, len(pairs))
	for i, p := range pairs {
		lines[i] = LineDiff{Label: p.label, Before: p.before, After: p.after, Delta: d.round(p.after - p.before)}
	}
	return lines
}

func (d *Differ) categories(before, after *types.EstimationResult) []CategoryDiff {
	hours := func(r *types.EstimationResult) map[types.Category]float64 {
		m := make(map[types.Category]float64)
		for _, g := range r.GroupByCategory() {
			m[g.Category] = g.Hours
		}
		return m
	}
	b, a := hours(before), hours(after)

	var out []CategoryDiff
	for _, c := range types.Categories() {
		bh, inBefore := b[c]
		ah, inAfter := a[c]
		if !inBefore && !inAfter {
			continue
		}
		out = append(out, CategoryDiff{Category: c, Before: bh, After: ah, Delta: d.round(ah - bh)})
	}

	// exports may carry categories this build does not know
	var extra []types.Category
	seen := make(map[types.Category]bool)
	for _, c := range types.Categories() {
		seen[c] = true
	}
	for c := range b {
		if !seen[c] {
			extra, seen[c] = append(extra, c), true
		}
	}
	for c := range a {
		if !seen[c] {
			extra, seen[c] = append(extra, c), true
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, c := range extra {
		out = append(out, CategoryDiff{Category: c, Before: b[c], After: a[c], Delta: d.round(a[c] - b[c])})
	}
	return out
}

func index(breakdown []types.EntityEstimate) (map[entityKey]*types.EntityEstimate, []entityKey) {
	m := make(map[entityKey]*types.EntityEstimate, len(breakdown))
	keys := make([]entityKey, 0, len(breakdown))
	seen := make(map[entityKey]int)
	for i := range breakdown {
		e := &breakdown[i]
		base := entityKey{category: e.Type, name: e.Name}
		key := entityKey{category: e.Type, name: e.Name, occurrence: seen[base]}
		seen[base]++
		m[key] = e
		keys = append(keys, key)
	}
	return m, keys
}

// Exports diffs two saved exports
func Exports(before, after *output.Export) *DiffResult {
	return NewDiffer(0).Diff(output.ResultFromExport(before), output.ResultFromExport(after))
}
