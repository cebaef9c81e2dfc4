// Package site scaffolds a VitePress documentation site from audit data.
//
// The input directory holds audit_report.json plus optional screenshots/
// and diagrams/ folders. When estimation_report.md sits next to the audit
// data it becomes the site's estimation page.
package site

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"website-audit/core/types"
	apperrors "website-audit/internal/errors"
	"website-audit/internal/logging"
)

const (
	// AuditFile is the audit document read from the input directory
	AuditFile = "audit_report.json"

	// EstimationReportFile is copied to docs/estimation/index.md when present
	EstimationReportFile = "estimation_report.md"

	DefaultProjectName = "Website Audit"
	DefaultCMS         = "Unknown"
)

// Sections are the top-level content directories under docs/
var Sections = []string{
	"content-architecture",
	"features",
	"performance",
	"accessibility",
	"migration",
	"estimation",
}

// assetDirs are copied from the audit directory into docs/public
var assetDirs = []string{"screenshots", "diagrams"}

//go:embed templates/*.tmpl templates/theme/*
var bundled embed.FS

var pages = template.Must(template.New("site").Funcs(template.FuncMap{
	"comma":    func(n int) string { return humanize.Comma(int64(n)) },
	"commaf":   humanize.Commaf,
	"bullets":  bullets,
	"numbered": numbered,
	"last":     func(i, n int) bool { return i == n-1 },
}).ParseFS(bundled, "templates/*.tmpl"))

// Generator writes the site. The zero value is usable: no theme template
// directory, the wall clock and the global logger.
type Generator struct {
	// ThemeDir holds theme files to copy; empty or missing falls back to
	// the bundled theme
	ThemeDir string

	// Now is the clock used for the copyright year and generated dates
	Now func() time.Time

	Log *zap.Logger
}

// Result describes a generated site
type Result struct {
	ProjectName      string
	AuditDate        string
	OutputDir        string
	Files            []string
	ThemeFallback    bool
	EstimationCopied bool
}

// New returns a Generator using themeDir for theme files
func New(themeDir string) *Generator {
	return &Generator{ThemeDir: themeDir}
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Generator) log() *zap.Logger {
	if g.Log != nil {
		return g.Log
	}
	return logging.Component("site")
}

// LoadAudit reads audit_report.json from auditDir
func LoadAudit(auditDir string) (*types.AuditReport, error) {
	path := filepath.Join(auditDir, AuditFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound("audit report", path)
		}
		return nil, apperrors.Input("failed to read audit report", err).WithContext("path", path)
	}

	var report types.AuditReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, apperrors.Parsing("failed to parse "+path, err)
	}
	return &report, nil
}

// Generate scaffolds the site for auditDir into outDir
func (g *Generator) Generate(auditDir, outDir string) (*Result, error) {
	audit, err := LoadAudit(auditDir)
	if err != nil {
		return nil, err
	}

	now := g.now()
	g.resolve(audit, now)

	log := g.log().With(zap.String("project", audit.ProjectName), zap.String("output", outDir))
	log.Info("generating site", zap.String("audit_date", audit.AuditDate))

	res := &Result{
		ProjectName: audit.ProjectName,
		AuditDate:   audit.AuditDate,
		OutputDir:   outDir,
	}
	w := &siteWriter{root: outDir, res: res}
	docs := filepath.Join(outDir, "docs")

	if err := createStructure(docs); err != nil {
		return nil, err
	}

	err = w.template("docs/.vitepress/config.ts", "config.ts.tmpl", map[string]any{
		"ProjectName": audit.ProjectName,
		"AuditDate":   audit.AuditDate,
		"Year":        now.Year(),
		"Nav":         topNav,
		"Sidebar":     sidebar,
	})
	if err != nil {
		return nil, err
	}

	if res.ThemeFallback, err = g.writeTheme(w); err != nil {
		return nil, err
	}
	if res.ThemeFallback {
		log.Warn("theme template not found, using bundled theme", zap.String("theme_dir", g.ThemeDir))
	}

	if err := w.template("docs/index.md", "index.md.tmpl", audit); err != nil {
		return nil, err
	}
	if err := w.template("docs/key-findings.md", "key-findings.md.tmpl", resolveFindings(audit.KeyFindings)); err != nil {
		return nil, err
	}

	pkg, err := packageJSON(audit.ProjectName)
	if err != nil {
		return nil, apperrors.Internal("failed to encode package.json", err)
	}
	if err := w.file("package.json", pkg); err != nil {
		return nil, err
	}

	for _, dir := range assetDirs {
		src := filepath.Join(auditDir, dir)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := filepath.Join(docs, "public", dir)
		if err := os.RemoveAll(dst); err != nil {
			return nil, apperrors.Input("failed to clear "+dst, err)
		}
		n, err := copyTree(src, dst)
		if err != nil {
			return nil, apperrors.Input("failed to copy "+dir, err)
		}
		log.Debug("copied assets", zap.String("dir", dir), zap.Int("files", n))
	}

	estimation := filepath.Join(auditDir, EstimationReportFile)
	if data, err := os.ReadFile(estimation); err == nil {
		if err := w.file("docs/estimation/index.md", data); err != nil {
			return nil, err
		}
		res.EstimationCopied = true
	}

	err = w.template("README.md", "README.md.tmpl", map[string]any{
		"ProjectName": audit.ProjectName,
		"AuditDate":   audit.AuditDate,
		"Generated":   now.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	log.Info("site generated", zap.Int("files", len(res.Files)), zap.Bool("estimation", res.EstimationCopied))
	return res, nil
}

func (g *Generator) resolve(a *types.AuditReport, now time.Time) {
	if a.ProjectName == "" {
		a.ProjectName = DefaultProjectName
	}
	if a.AuditDate == "" {
		a.AuditDate = now.Format("2006-01-02")
	}
	if a.CurrentCMS == "" {
		a.CurrentCMS = DefaultCMS
	}
}

func createStructure(docs string) error {
	dirs := []string{
		filepath.Join(docs, "public", "screenshots"),
		filepath.Join(docs, "public", "diagrams"),
		filepath.Join(docs, ".vitepress", "theme"),
	}
	for _, s := range Sections {
		dirs = append(dirs, filepath.Join(docs, s))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return apperrors.Input("failed to create "+d, err)
		}
	}
	return nil
}

// writeTheme copies the configured theme files, or writes the bundled
// theme and reports true
func (g *Generator) writeTheme(w *siteWriter) (bool, error) {
	const target = "docs/.vitepress/theme"

	if g.ThemeDir != "" {
		entries, err := os.ReadDir(g.ThemeDir)
		if err == nil {
			for _, e := range entries {
				if !e.Type().IsRegular() {
					continue
				}
				data, err := os.ReadFile(filepath.Join(g.ThemeDir, e.Name()))
				if err != nil {
					return false, apperrors.Input("failed to read theme file", err)
				}
				if err := w.file(target+"/"+e.Name(), data); err != nil {
					return false, err
				}
			}
			return false, nil
		}
	}

	files, err := fs.ReadDir(bundled, "templates/theme")
	if err != nil {
		return false, apperrors.Internal("bundled theme missing", err)
	}
	for _, f := range files {
		data, err := bundled.ReadFile("templates/theme/" + f.Name())
		if err != nil {
			return false, apperrors.Internal("bundled theme missing", err)
		}
		if err := w.file(target+"/"+f.Name(), data); err != nil {
			return false, err
		}
	}
	return true, nil
}

// siteWriter writes files relative to the output root and records them
type siteWriter struct {
	root string
	res  *Result
}

func (w *siteWriter) file(rel string, data []byte) error {
	path := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.Input("failed to create directory for "+rel, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.Input("failed to write "+rel, err)
	}
	w.res.Files = append(w.res.Files, rel)
	return nil
}

func (w *siteWriter) template(rel, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return apperrors.Internal("failed to render "+rel, err)
	}
	return w.file(rel, buf.Bytes())
}

type packageManifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Scripts         packageScripts    `json:"scripts"`
	DevDependencies map[string]string `json:"devDependencies"`
}

type packageScripts struct {
	Dev     string `json:"docs:dev"`
	Build   string `json:"docs:build"`
	Preview string `json:"docs:preview"`
}

// PackageName is the npm package name for a project, e.g. "acme-corp-audit"
func PackageName(project string) string {
	return strings.ReplaceAll(strings.ToLower(project), " ", "-") + "-audit"
}

func packageJSON(project string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(packageManifest{
		Name:        PackageName(project),
		Version:     "1.0.0",
		Description: "Website audit documentation for " + project,
		Scripts: packageScripts{
			Dev:     "vitepress dev docs",
			Build:   "vitepress build docs",
			Preview: "vitepress preview docs",
		},
		DevDependencies: map[string]string{"vitepress": "^1.0.0"},
	})
	return buf.Bytes(), err
}

// copyTree copies src into dst and returns the number of files copied
func copyTree(src, dst string) (int, error) {
	n := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}
