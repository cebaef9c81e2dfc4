package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"website-audit/core/types"
	apperrors "website-audit/internal/errors"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

func writeAudit(t *testing.T, dir string, report any) {
	t.Helper()
	data, err := json.Marshal(report)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, AuditFile), data, 0644))
}

func readFile(t *testing.T, path ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(path...))
	require.NoError(t, err)
	return string(data)
}

func newGenerator(themeDir string) *Generator {
	return &Generator{ThemeDir: themeDir, Now: fixedNow, Log: zap.NewNop()}
}

func TestGenerate(t *testing.T) {
	auditDir, outDir := t.TempDir(), t.TempDir()
	writeAudit(t, auditDir, types.AuditReport{
		ProjectName: "Acme Corp",
		AuditDate:   "2026-03-01",
		CurrentCMS:  "WordPress",
		URL:         "https://acme.example",
		Summary: types.AuditSummary{
			ContentTypes:   8,
			Paragraphs:     21,
			TotalPages:     12500,
			EstimatedHours: 1234.5,
		},
		KeyFindings: types.KeyFindings{
			Strengths: []string{"Fast CDN"},
		},
	})

	res, err := newGenerator("").Generate(auditDir, outDir)
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", res.ProjectName)
	assert.True(t, res.ThemeFallback)
	assert.False(t, res.EstimationCopied)
	assert.Contains(t, res.Files, "docs/.vitepress/config.ts")
	assert.Contains(t, res.Files, "docs/.vitepress/theme/index.js")
	assert.Contains(t, res.Files, "docs/.vitepress/theme/custom.css")

	for _, s := range Sections {
		assert.DirExists(t, filepath.Join(outDir, "docs", s))
	}
	assert.DirExists(t, filepath.Join(outDir, "docs", "public", "screenshots"))

	config := readFile(t, outDir, "docs", ".vitepress", "config.ts")
	assert.Contains(t, config, "title: 'Acme Corp - Website Audit'")
	assert.Contains(t, config, "Copyright © 2026 - Audit Date: 2026-03-01")
	assert.Contains(t, config, "{ text: 'Estimation', link: '/estimation/' }\n    ]")
	assert.Contains(t, config, "{ text: 'Assumptions', link: '/appendices/assumptions' }\n        ]\n      }\n    ]")

	index := readFile(t, outDir, "docs", "index.md")
	assert.Contains(t, index, `name: "Acme Corp"`)
	assert.Contains(t, index, "| **Total Pages** | 12,500 |")
	assert.Contains(t, index, "| **Estimated Effort** | 1,234.5 hours |")
	assert.Contains(t, index, "| **Current CMS** | WordPress |")
	assert.Contains(t, index, "8 content types mapped")

	findings := readFile(t, outDir, "docs", "key-findings.md")
	assert.Contains(t, findings, "- Fast CDN\n")
	assert.NotContains(t, findings, "Strong content organization")
	assert.Contains(t, findings, "- Improve accessibility compliance")
	assert.Contains(t, findings, "1. Finalize content type specifications\n2. Set up development environment")
	assert.Contains(t, findings, "**Size:** Medium")

	var pkg map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, outDir, "package.json")), &pkg))
	assert.Equal(t, "acme-corp-audit", pkg["name"])
	assert.Equal(t, "vitepress dev docs", pkg["scripts"].(map[string]any)["docs:dev"])

	readme := readFile(t, outDir, "README.md")
	assert.Contains(t, readme, "# Acme Corp - Website Audit Documentation")
	assert.Contains(t, readme, "**Generated**: 2026-03-14")
}

func TestGenerate_Defaults(t *testing.T) {
	auditDir, outDir := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(auditDir, AuditFile), []byte(`{}`), 0644))

	res, err := newGenerator("").Generate(auditDir, outDir)
	require.NoError(t, err)
	assert.Equal(t, DefaultProjectName, res.ProjectName)
	assert.Equal(t, "2026-03-14", res.AuditDate)

	index := readFile(t, outDir, "docs", "index.md")
	assert.Contains(t, index, "| **Current CMS** | Unknown |")
	assert.Contains(t, index, "| **Total Pages** | 0 |")

	findings := readFile(t, outDir, "docs", "key-findings.md")
	assert.Contains(t, findings, defaultFindings.ExecutiveSummary)
	assert.Contains(t, findings, "- Strong content organization")
}

func TestGenerate_CopiesAssetsAndEstimation(t *testing.T) {
	auditDir, outDir := t.TempDir(), t.TempDir()
	writeAudit(t, auditDir, types.AuditReport{ProjectName: "Acme"})

	require.NoError(t, os.MkdirAll(filepath.Join(auditDir, "screenshots", "mobile"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(auditDir, "screenshots", "home.png"), []byte("png"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(auditDir, "screenshots", "mobile", "home.png"), []byte("png2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(auditDir, EstimationReportFile), []byte("# Project Estimation Report: Acme\n"), 0644))

	stale := filepath.Join(outDir, "docs", "public", "screenshots", "stale.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	res, err := newGenerator("").Generate(auditDir, outDir)
	require.NoError(t, err)

	assert.True(t, res.EstimationCopied)
	assert.Equal(t, "# Project Estimation Report: Acme\n", readFile(t, outDir, "docs", "estimation", "index.md"))
	assert.Equal(t, "png2", readFile(t, outDir, "docs", "public", "screenshots", "mobile", "home.png"))
	assert.NoFileExists(t, stale)
	assert.NoDirExists(t, filepath.Join(outDir, "docs", "public", "diagrams", "missing"))
}

func TestGenerate_ThemeDir(t *testing.T) {
	auditDir, outDir, themeDir := t.TempDir(), t.TempDir(), t.TempDir()
	writeAudit(t, auditDir, types.AuditReport{ProjectName: "Acme"})
	require.NoError(t, os.WriteFile(filepath.Join(themeDir, "index.js"), []byte("export default {}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(themeDir, "brand.css"), []byte(":root{}\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(themeDir, "nested"), 0755))

	res, err := newGenerator(themeDir).Generate(auditDir, outDir)
	require.NoError(t, err)

	assert.False(t, res.ThemeFallback)
	assert.Equal(t, "export default {}\n", readFile(t, outDir, "docs", ".vitepress", "theme", "index.js"))
	assert.FileExists(t, filepath.Join(outDir, "docs", ".vitepress", "theme", "brand.css"))
	assert.NoFileExists(t, filepath.Join(outDir, "docs", ".vitepress", "theme", "custom.css"))
}

func TestGenerate_MissingThemeDirFallsBack(t *testing.T) {
	auditDir, outDir := t.TempDir(), t.TempDir()
	writeAudit(t, auditDir, types.AuditReport{})

	res, err := newGenerator(filepath.Join(auditDir, "no-theme")).Generate(auditDir, outDir)
	require.NoError(t, err)
	assert.True(t, res.ThemeFallback)
	assert.Contains(t, readFile(t, outDir, "docs", ".vitepress", "theme", "index.js"), "DefaultTheme")
}

func TestGenerate_Errors(t *testing.T) {
	_, err := newGenerator("").Generate(t.TempDir(), t.TempDir())
	assert.True(t, apperrors.IsType(err, apperrors.TypeNotFound))

	auditDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(auditDir, AuditFile), []byte(`{"summary": `), 0644))
	_, err = newGenerator("").Generate(auditDir, t.TempDir())
	assert.True(t, apperrors.IsType(err, apperrors.TypeParsing))
}

func TestConfigEscapesProjectName(t *testing.T) {
	auditDir, outDir := t.TempDir(), t.TempDir()
	writeAudit(t, auditDir, types.AuditReport{ProjectName: "O'Brien's"})

	_, err := newGenerator("").Generate(auditDir, outDir)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, outDir, "docs", ".vitepress", "config.ts"), `title: 'O\'Brien\'s - Website Audit'`)
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "website-audit-audit", PackageName("Website Audit"))
	assert.Equal(t, "acme-audit", PackageName("ACME"))
}
