package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"website-audit/core/engine"
	"website-audit/core/types"
	apperrors "website-audit/internal/errors"
)

const sampleJSON = `{
  "project_name": "Acme",
  "content_types": [
    {"name": "Page", "complexity": "simple"},
    {"name": "Article", "complexity": "medium"}
  ],
  "paragraphs": [
    {"name": "Text", "complexity": "simple"},
    {"name": "Hero", "complexity": "complex"}
  ],
  "multipliers": {
    "testing": 0.25,
    "documentation": 0.15,
    "multilingual": 0.30
  },
  "migration": {"nodes": 500, "complexity": "medium"},
  "risk_level": "medium"
}`

const sampleYAML = `
project_name: Acme
audit_date: 2026-03-01
risk_level: medium
multipliers:
  testing: 0.25
  documentation: 0.15
  multilingual: 0.30
migration:
  nodes: 500
  complexity: medium
content_types:
  - name: Page
    complexity: simple
  - name: Article
    complexity: medium
paragraphs:
  - {name: Text, complexity: simple}
  - {name: Hero, complexity: complex}
`

const sampleHCL = `
project_name = "Acme"
risk_level   = "medium"

multiplier "testing" { rate = 0.25 }
multiplier "documentation" { rate = 0.15 }
multiplier "multilingual" { rate = 0.30 }

migration {
  nodes      = 500
  complexity = "medium"
}

content_types "Page" { complexity = "simple" }
content_types "Article" { complexity = "medium" }

paragraphs {
  name       = "Text"
  complexity = "simple"
}
paragraphs "Hero" { complexity = "complex" }
`

func wantSample() *types.ProjectInput {
	return &types.ProjectInput{
		ProjectName: "Acme",
		RiskLevel:   "medium",
		Multipliers: []types.Multiplier{
			{Name: "testing", Rate: 0.25},
			{Name: "documentation", Rate: 0.15},
			{Name: "multilingual", Rate: 0.30},
		},
		Migration: &types.Migration{Nodes: 500, Complexity: "medium"},
		Sections: []types.Section{
			{Key: "content_types", Entities: []types.Entity{{Name: "Page", Complexity: "simple"}, {Name: "Article", Complexity: "medium"}}},
			{Key: "paragraphs", Entities: []types.Entity{{Name: "Text", Complexity: "simple"}, {Name: "Hero", Complexity: "complex"}}},
		},
	}
}

// sortSections makes section order irrelevant for comparisons
var sortSections = cmp.Transformer("sections", func(in []types.Section) map[string][]types.Entity {
	out := make(map[string][]types.Entity, len(in))
	for _, s := range in {
		out[s.Key] = s.Entities
	}
	return out
})

func TestParse_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
		adjust func(*types.ProjectInput)
	}{
		{name: "json", format: FormatJSON, doc: sampleJSON},
		{name: "yaml", format: FormatYAML, doc: sampleYAML, adjust: func(p *types.ProjectInput) { p.AuditDate = "2026-03-01" }},
		{name: "hcl", format: FormatHCL, doc: sampleHCL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBytes([]byte(tt.doc), tt.format, "inventory."+tt.name)
			require.NoError(t, err)

			want := wantSample()
			if tt.adjust != nil {
				tt.adjust(want)
			}
			assert.Empty(t, cmp.Diff(want, got, sortSections))
		})
	}
}

func TestParse_FormatsAgreeOnEstimate(t *testing.T) {
	var totals []float64
	for format, doc := range map[Format]string{FormatJSON: sampleJSON, FormatYAML: sampleYAML, FormatHCL: sampleHCL} {
		input, err := ParseBytes([]byte(doc), format, string(format))
		require.NoError(t, err)
		result, err := engine.Estimate(input)
		require.NoError(t, err)
		totals = append(totals, result.TotalHours)
	}
	require.Len(t, totals, 3)
	assert.Equal(t, totals[0], totals[1])
	assert.Equal(t, totals[0], totals[2])
}

func TestParse_MultiplierOrderKeptInJSON(t *testing.T) {
	doc := `{"multipliers": {"zeta": 0.1, "alpha": 0.2, "mid": 0.3}}`
	input, err := ParseBytes([]byte(doc), FormatJSON, "doc")
	require.NoError(t, err)

	names := make([]string, 0, len(input.Multipliers))
	for _, m := range input.Multipliers {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestParse_Lenient(t *testing.T) {
	doc := `{
		"url": "https://example.org",
		"summary": {"total_pages": 10},
		"project_name": null,
		"migration": {"nodes": 500.0},
		"blocks": [{}, {"name": "Footer", "complexity": null}]
	}`
	input, err := ParseBytes([]byte(doc), FormatJSON, "doc")
	require.NoError(t, err)

	assert.Empty(t, input.ProjectName)
	assert.Equal(t, &types.Migration{Nodes: 500}, input.Migration)
	require.Len(t, input.Sections, 1)
	assert.Equal(t, []types.Entity{{}, {Name: "Footer"}}, input.Sections[0].Entities)
}

func TestParse_UnknownCategoryReachesEngine(t *testing.T) {
	input, err := ParseBytes([]byte(`{"widgets": [{"name": "Clock"}]}`), FormatJSON, "doc")
	require.NoError(t, err)

	_, err = engine.Estimate(input)
	assert.True(t, apperrors.IsType(err, apperrors.TypeUnknownCategory))
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"string nodes", `{"migration": {"nodes": "500"}}`},
		{"fractional nodes", `{"migration": {"nodes": 500.5}}`},
		{"migration not object", `{"migration": 500}`},
		{"multiplier not number", `{"multipliers": {"testing": "25%"}}`},
		{"multipliers not object", `{"multipliers": [0.25]}`},
		{"entity not object", `{"views": ["Listing"]}`},
		{"numeric entity name", `{"views": [{"name": 7}]}`},
		{"risk not string", `{"risk_level": 3}`},
		{"assumption not string", `{"assumptions": ["ok", 1]}`},
		{"top level not object", `[1, 2]`},
		{"category as mapping", `{"content_types": {"name": "Page", "complexity": "complex"}}`},
		{"category as string", `{"content_types": "Page"}`},
		{"category as number", `{"custom_modules": 3}`},
		{"nodes beyond exact range", `{"migration": {"nodes": 1e16}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.doc), FormatJSON, "doc")
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.TypeValidation), "got %v", err)
		})
	}
}

func TestParse_CategoryShape(t *testing.T) {
	_, err := ParseBytes([]byte("content_types:\n  name: Page\n"), FormatYAML, "doc.yaml")
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.TypeValidation, appErr.Type)
	assert.Equal(t, "content_types", appErr.Context["field"])

	// null keeps the category empty, a mapping under an unknown key is ignored
	input, err := ParseBytes([]byte(`{"views": null, "widgets": {"name": "Clock"}}`), FormatJSON, "doc")
	require.NoError(t, err)
	result, err := engine.Estimate(input)
	require.NoError(t, err)
	assert.Empty(t, result.Breakdown)
}

func TestParse_LargeNodeCount(t *testing.T) {
	input, err := ParseBytes([]byte(`{"migration": {"nodes": 3000000000}}`), FormatJSON, "doc")
	require.NoError(t, err)
	assert.Equal(t, 3000000000, input.Migration.Nodes)
}

func TestParse_NegativeNodesRejectedByEngine(t *testing.T) {
	input, err := ParseBytes([]byte(`{"migration": {"nodes": -5}}`), FormatJSON, "doc")
	require.NoError(t, err)
	_, err = engine.Estimate(input)
	assert.True(t, apperrors.IsType(err, apperrors.TypeValidation))
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		format Format
		doc    string
	}{
		{FormatJSON, `{"project_name": `},
		{FormatJSON, `{} {}`},
		{FormatYAML, "content_types: [\n  - a"},
		{FormatHCL, `project_name = `},
		{FormatHCL, `risk_level = var.risk`},
		{FormatHCL, `multiplier "a" "b" { rate = 1 }`},
		{FormatHCL, `multiplier "a" { }`},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.doc), tt.format, "doc")
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.TypeParsing), "got %v", err)
		})
	}
}

func TestParse_EmptyDocuments(t *testing.T) {
	for _, tt := range []struct {
		format Format
		doc    string
	}{
		{FormatJSON, `{}`},
		{FormatYAML, ``},
		{FormatHCL, ``},
	} {
		input, err := ParseBytes([]byte(tt.doc), tt.format, "doc")
		require.NoError(t, err, tt.format)
		assert.Empty(t, input.Sections)
	}
}

func TestParse_HCLMultipliersAttributeAndBlocks(t *testing.T) {
	doc := `
multipliers = { testing = 0.25 }
multiplier "seo" { rate = 0.05 }
`
	input, err := ParseBytes([]byte(doc), FormatHCL, "doc.hcl")
	require.NoError(t, err)
	assert.Equal(t, []types.Multiplier{{Name: "testing", Rate: 0.25}, {Name: "seo", Rate: 0.05}}, input.Multipliers)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("entities.json"))
	assert.Equal(t, FormatYAML, DetectFormat("entities.YML"))
	assert.Equal(t, FormatYAML, DetectFormat("a/b/entities.yaml"))
	assert.Equal(t, FormatHCL, DetectFormat("entities.hcl"))
	assert.Equal(t, FormatJSON, DetectFormat("entities"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))

	input, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", input.ProjectName)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, apperrors.IsType(err, apperrors.TypeNotFound))
}
