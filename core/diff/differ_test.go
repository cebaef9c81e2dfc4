package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"website-audit/core/output"
	"website-audit/core/types"
)

func entity(c types.Category, name string, cx types.Complexity, hours float64) types.EntityEstimate {
	return types.EntityEstimate{Name: name, Type: c, Complexity: cx, Hours: hours}
}

func TestDiff(t *testing.T) {
	before := &types.EstimationResult{
		BaseHours:  21,
		TotalHours: 300,
		Breakdown: []types.EntityEstimate{
			entity(types.CategoryContentType, "Page", types.ComplexitySimple, 3),
			entity(types.CategoryContentType, "Article", types.ComplexityMedium, 6),
			entity(types.CategoryView, "News", types.ComplexityComplex, 12),
		},
	}
	after := &types.EstimationResult{
		BaseHours:  46,
		TotalHours: 360,
		Breakdown: []types.EntityEstimate{
			entity(types.CategoryContentType, "Page", types.ComplexitySimple, 3),
			entity(types.CategoryContentType, "Article", types.ComplexityComplex, 12),
			entity(types.CategoryCustomModule, "Sync", types.ComplexitySimple, 12),
			entity(types.CategoryCustomModule, "Sync", types.ComplexityMedium, 28),
		},
	}

	result := NewDiffer(0).Diff(before, after)

	assert.Equal(t, 60.0, result.TotalDelta)
	assert.Equal(t, 20.0, result.DeltaPercent)
	assert.True(t, result.HasChanges())

	require.Len(t, result.Added, 2)
	assert.Equal(t, 0, result.Added[0].Occurrence)
	assert.Equal(t, 1, result.Added[1].Occurrence)
	assert.Equal(t, 28.0, result.Added[1].Delta)

	require.Len(t, result.Removed, 1)
	assert.Equal(t, "News", result.Removed[0].Name)
	assert.Equal(t, -12.0, result.Removed[0].Delta)

	require.Len(t, result.Changed, 1)
	assert.Equal(t, "Article", result.Changed[0].Name)
	assert.Equal(t, 6.0, result.Changed[0].Delta)
	assert.Equal(t, "modified", result.Changed[0].ChangeType.String())

	require.Len(t, result.Unchanged, 1)
	assert.Equal(t, "Page", result.Unchanged[0].Name)

	want := []CategoryDiff{
		{Category: types.CategoryContentType, Before: 9, After: 15, Delta: 6},
		{Category: types.CategoryView, Before: 12, After: 0, Delta: -12},
		{Category: types.CategoryCustomModule, Before: 0, After: 40, Delta: 40},
	}
	if d := cmp.Diff(want, result.Categories); d != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", d)
	}

	assert.Equal(t, "Base Development", result.Lines[0].Label)
	assert.Equal(t, 25.0, result.Lines[0].Delta)
	assert.Equal(t, "Total", result.Lines[len(result.Lines)-1].Label)
}

func TestDiff_Identical(t *testing.T) {
	r := &types.EstimationResult{
		BaseHours:  3,
		TotalHours: 0.1 + 0.2,
		Breakdown:  []types.EntityEstimate{entity(types.CategoryBlock, "Footer", types.ComplexityMedium, 3)},
	}
	same := *r
	same.TotalHours = 0.3

	result := NewDiffer(0).Diff(r, &same)
	assert.False(t, result.HasChanges())
	assert.Zero(t, result.TotalDelta)
	assert.Len(t, result.Unchanged, 1)
}

func TestExports(t *testing.T) {
	before := output.NewExport(&types.EstimationResult{TotalHours: 100})
	after := output.NewExport(&types.EstimationResult{
		TotalHours: 110,
		Breakdown:  []types.EntityEstimate{entity("widget", "Clock", types.ComplexitySimple, 4)},
	})

	result := Exports(before, after)
	assert.Equal(t, 10.0, result.TotalDelta)
	require.Len(t, result.Categories, 1)
	assert.Equal(t, types.Category("widget"), result.Categories[0].Category)
}
