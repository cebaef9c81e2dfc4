package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"website-audit/internal/config"
)

const inventoryJSON = `{
  "project_name": "Acme",
  "content_types": [{"name": "Page", "complexity": "simple"}],
  "multipliers": {"testing": 0.25}
}`

// execute runs the root command with args. Flags keep their values
// between runs, so tests pass every flag they depend on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { config.Set(config.Default()) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "website-audit version "+Version+"\n", out)
}

func TestCostModel_JSON(t *testing.T) {
	out, err := execute(t, "cost-model", "--json")
	require.NoError(t, err)

	var model map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &model))
	assert.Equal(t, 0.18, model["pm_rate"])
	assert.Equal(t, 30.0, model["migration_setup_hours"])
}

func TestCostModel_Table(t *testing.T) {
	out, err := execute(t, "cost-model", "--json=false", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Custom Module")
	assert.Contains(t, out, "×3.5")
	assert.Contains(t, out, "High risk buffer")
}

func TestEstimate_Stdout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "entities.json", inventoryJSON)

	out, err := execute(t, "estimate", "--format", "markdown", "--no-write", "--watch=false", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# Project Estimation Report: Acme")
	assert.NoFileExists(t, filepath.Join(dir, "estimation_report.md"))
}

func TestEstimate_Summary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "entities.json", inventoryJSON)

	out, err := execute(t, "estimate", "--format", "cli", "--no-write", "--no-color", "--watch=false", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Estimation: Acme")
}

func TestEstimate_WatchNeedsOneFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", inventoryJSON)
	b := writeFile(t, dir, "b.json", inventoryJSON)

	_, err := execute(t, "estimate", "--format", "json", "--no-write", "--watch", a, b)
	assert.ErrorContains(t, err, "exactly one inventory")
}

func TestEstimate_UnknownCategory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "entities.json", `{"widgets": [{"name": "Clock"}]}`)
	_, err := execute(t, "estimate", "--format", "json", "--no-write", "--watch=false", path)
	assert.ErrorContains(t, err, "widgets")
}

func TestReport_ReRendersExport(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "entities.json", inventoryJSON)

	_, err := execute(t, "estimate", "--format", "json", "--no-write=false", "--watch=false", path)
	require.NoError(t, err)
	written, err := os.ReadFile(filepath.Join(dir, "estimation_report.md"))
	require.NoError(t, err)

	out, err := execute(t, "report", filepath.Join(dir, "estimation_result.json"), "--input", path, "--output", "")
	require.NoError(t, err)
	assert.Equal(t, string(written), out)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	_, err := execute(t, "config", "init", path, "--force=false")
	require.NoError(t, err)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = execute(t, "config", "init", path, "--force=false")
	assert.ErrorContains(t, err, "already exists")
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	before := writeFile(t, dir, "before.json", inventoryJSON)
	afterDir := t.TempDir()
	after := writeFile(t, afterDir, "after.json", `{
  "project_name": "Acme",
  "content_types": [{"name": "Page", "complexity": "complex"}, {"name": "News"}],
  "multipliers": {"testing": 0.25}
}`)

	for _, p := range []string{before, after} {
		_, err := execute(t, "estimate", "--format", "json", "--no-write=false", "--watch=false", p)
		require.NoError(t, err)
	}

	out, err := execute(t, "diff", "--json=false", "--no-color",
		filepath.Join(dir, "estimation_result.json"), filepath.Join(afterDir, "estimation_result.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "+ added")
	assert.Contains(t, out, "simple → complex")

	out, err = execute(t, "diff", "--json=true",
		filepath.Join(dir, "estimation_result.json"), filepath.Join(dir, "estimation_result.json"))
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 0.0, result["total_delta"])
}

func TestSite(t *testing.T) {
	auditDir, outDir := t.TempDir(), filepath.Join(t.TempDir(), "site")
	writeFile(t, auditDir, "audit_report.json", `{"project_name": "Acme", "audit_date": "2026-03-01"}`)

	out, err := execute(t, "site", "--no-color", "--out", "", auditDir, outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated site for Acme")
	assert.FileExists(t, filepath.Join(outDir, "docs", "index.md"))
	assert.FileExists(t, filepath.Join(outDir, "package.json"))
}
