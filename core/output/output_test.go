package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"website-audit/core/engine"
	"website-audit/core/types"
)

func sampleInput() *types.ProjectInput {
	return &types.ProjectInput{
		ProjectName: "Acme Relaunch",
		AuditDate:   "2026-01-15",
		RiskLevel:   "high",
		Multipliers: []types.Multiplier{
			{Name: "testing", Rate: 0.25},
			{Name: "multilingual", Rate: 0.30},
		},
		Migration: &types.Migration{Nodes: 12500, Complexity: "complex"},
		Sections: []types.Section{
			{Key: "paragraphs", Entities: []types.Entity{{Name: "Hero", Complexity: "complex"}}},
			{Key: "content_types", Entities: []types.Entity{
				{Name: "Page", Complexity: "simple"},
				{Name: "Article", Complexity: "medium"},
			}},
		},
	}
}

func estimate(t *testing.T, input *types.ProjectInput) *types.EstimationResult {
	t.Helper()
	result, err := engine.Estimate(input)
	require.NoError(t, err)
	return result
}

func TestFormatReport_Sections(t *testing.T) {
	input := sampleInput()
	report := FormatReport(estimate(t, input), input)

	assert.True(t, strings.HasPrefix(report, "# Project Estimation Report: Acme Relaunch\n\n## Summary\n"))
	assert.Contains(t, report, "| Base Hours (Entities) | 15.0 |")
	assert.Contains(t, report, "| Buffer (High) |")
	assert.Contains(t, report, "| **TOTAL ESTIMATE** |")
	assert.Contains(t, report, "### Full-time (40h/week)")
	assert.Contains(t, report, "### Realistic (30h/week)")
	assert.Contains(t, report, "### Part-time (20h/week)")
	assert.Contains(t, report, "| Pessimistic (+30%) |")
	assert.Contains(t, report, "\n### Content Type\n\n| Name | Complexity | Hours |")
	assert.Contains(t, report, "| Article | Medium | 6.0 |")
	assert.Contains(t, report, "| **Subtotal** | | **9.0** |")
	assert.Contains(t, report, "| Testing | 25% | 3.8 |")
	assert.Contains(t, report, "| Multilingual | 30% | 4.5 |")
	assert.Contains(t, report, "- **Content Volume:** 12,500 nodes")
	assert.Contains(t, report, "- **Complexity:** Complex")
	assert.Contains(t, report, "- **Base Setup:** 30 hours")
	assert.Contains(t, report, "| Project Management (18%) |")
	assert.Contains(t, report, "- **Buffer Percentage:** 25%")
	assert.Contains(t, report, "1. Requirements are clearly defined\n")
	assert.True(t, strings.HasSuffix(report, "*Generated: 2026-01-15*"))

	contentType := strings.Index(report, "### Content Type")
	paragraph := strings.Index(report, "### Paragraph")
	assert.Less(t, contentType, paragraph, "breakdown follows category order")
}

func TestFormatReport_NoMigration(t *testing.T) {
	input := &types.ProjectInput{}
	report := FormatReport(estimate(t, input), input)

	assert.Contains(t, report, "### Migration Effort\n\nNo migration required.\n")
	assert.NotContains(t, report, "Content Volume")
	assert.Contains(t, report, "# Project Estimation Report: Website Audit")
	assert.Contains(t, report, "| Buffer (Medium) |")
	assert.True(t, strings.HasSuffix(report, "*Generated: 2025-11-13*"))
}

func TestFormatReport_AdditionalEffort(t *testing.T) {
	input := &types.ProjectInput{}
	report := FormatReport(estimate(t, input), input)

	assert.Contains(t, report, "| Infrastructure Setup | 60.0 |")
	assert.Contains(t, report, "| Training & Handover | 30.0 |")
	assert.Contains(t, report, "| Project Management (18%) | 16.2 |")
	assert.Contains(t, report, "| **Total Additional** | **106.2** |")
}

func TestFormatReport_ZeroTotalsDoNotFault(t *testing.T) {
	result := &types.EstimationResult{
		Multipliers: []types.MultiplierHours{{Name: "testing", Hours: 0}},
	}
	report := FormatReport(result, &types.ProjectInput{})

	assert.Contains(t, report, "| Base Hours (Entities) | 0.0 | 0.0% |")
	assert.Contains(t, report, "| Testing | 0% | 0.0 |")
	assert.NotContains(t, report, "NaN")
	assert.NotContains(t, report, "+Inf")
}

func TestFormatReport_NilInput(t *testing.T) {
	result := &types.EstimationResult{MigrationHours: 130, TotalHours: 300}

	var report string
	require.NotPanics(t, func() { report = FormatReport(result, nil) })
	assert.Contains(t, report, "# Project Estimation Report: "+types.DefaultProjectName)
	assert.Contains(t, report, "- **Content Volume:** 0 nodes")
	assert.Contains(t, report, "- **Complexity:** Medium")
}

func TestFormatReport_UnknownRiskLabelKeepsDefaultPercentage(t *testing.T) {
	input := &types.ProjectInput{RiskLevel: "EXTREME"}
	report := FormatReport(estimate(t, input), input)

	assert.Contains(t, report, "- **Risk Level:** Extreme")
	assert.Contains(t, report, "- **Buffer Percentage:** 20%")
}

func TestFormatReport_Deterministic(t *testing.T) {
	input := sampleInput()
	result := estimate(t, input)
	assert.Equal(t, FormatReport(result, input), FormatReport(result, input))
}

func TestExportRoundTrip(t *testing.T) {
	input := sampleInput()
	result := estimate(t, input)

	var buf bytes.Buffer
	require.NoError(t, JSONFormatter{Indent: true}.Render(&buf, &Report{Result: result, Input: input}))

	decoded, err := DecodeExport(&buf)
	require.NoError(t, err)

	rebuilt := ResultFromExport(decoded)
	original := FormatReport(result, input)
	again := FormatReport(rebuilt, input)

	assert.Equal(t, SummaryRows(original), SummaryRows(again))
	assert.Len(t, SummaryRows(original), 7)
	assert.Equal(t, original, again)
}

func TestExportShape(t *testing.T) {
	input := sampleInput()
	result := estimate(t, input)

	var buf bytes.Buffer
	require.NoError(t, JSONFormatter{}.Render(&buf, &Report{Result: result, Input: input}))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"summary", "breakdown", "multipliers", "assumptions", "risks"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "metadata")

	var summary map[string]float64
	require.NoError(t, json.Unmarshal(raw["summary"], &summary))
	assert.Equal(t, result.TotalHours, summary["total_hours"])
	assert.Equal(t, result.BufferHours, summary["buffer_hours"])

	assert.True(t, strings.HasPrefix(string(raw["multipliers"]), `{"testing":`))

	var breakdown []map[string]any
	require.NoError(t, json.Unmarshal(raw["breakdown"], &breakdown))
	require.Len(t, breakdown, 3)
	assert.Equal(t, map[string]any{"name": "Page", "type": "content_type", "complexity": "simple", "hours": 3.0}, breakdown[0])
}

func TestExportMetadata(t *testing.T) {
	input := sampleInput()
	result := estimate(t, input)
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	cost := ProjectCost(result.TotalHours, decimal.NewFromInt(100), "€")

	var buf bytes.Buffer
	report := &Report{Result: result, Input: input, Metadata: NewMetadata(input, cost, now)}
	require.NoError(t, JSONFormatter{}.Render(&buf, report))

	decoded, err := DecodeExport(&buf)
	require.NoError(t, err)
	require.NotNil(t, decoded.Metadata)
	assert.Equal(t, "Acme Relaunch", decoded.Metadata.ProjectName)
	assert.Equal(t, types.RiskHigh, decoded.Metadata.RiskLevel)
	assert.True(t, now.Equal(decoded.Metadata.GeneratedAt))
	assert.Equal(t, report.Metadata.EstimateID, decoded.Metadata.EstimateID)
}

func TestResultFromExport_LegacySubtotal(t *testing.T) {
	e := &Export{Summary: Summary{TotalHours: 625, BufferHours: 125}}
	assert.Equal(t, 500.0, ResultFromExport(e).Subtotal)
}

func TestOrderedHours(t *testing.T) {
	in := OrderedHours{{Name: "zeta", Hours: 1.5}, {Name: "alpha", Hours: 2}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta":1.5,"alpha":2}`, string(data))
	assert.Equal(t, `{"zeta":1.5,"alpha":2}`, string(data))

	var out OrderedHours
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Empty(t, cmp.Diff(in, out))

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &out))
	assert.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), &out))
}

func TestProjectCost(t *testing.T) {
	cost := ProjectCost(622.8, decimal.NewFromInt(100), "€")
	assert.Equal(t, "€62,280", cost.String())
	assert.Equal(t, "€100/h", cost.RateLabel())
	assert.True(t, cost.Amount.Equal(decimal.RequireFromString("62280")))
}

func TestPace(t *testing.T) {
	assert.Equal(t, 3.0, RealisticPace.Weeks(90))
	assert.Equal(t, 1.0, RealisticPace.Months(120))
	assert.Equal(t, 1.0, Paces[0].Months(160))
	assert.Equal(t, 1.0, Paces[2].Months(80))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []Format{FormatJSON, FormatMarkdown}, r.Formats())

	f, ok := r.Get(FormatMarkdown)
	require.True(t, ok)
	assert.Equal(t, FormatMarkdown, f.Format())

	assert.Error(t, r.Register(MarkdownFormatter{}))
}
