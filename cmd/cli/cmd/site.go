// Package cmd - site command
package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"website-audit/core/site"
	"website-audit/core/ui"
	"website-audit/internal/config"
)

var (
	siteOutput string
	siteTheme  string
)

// siteCmd scaffolds the documentation site
var siteCmd = &cobra.Command{
	Use:   "site <audit-dir> [output-dir]",
	Short: "Generate a VitePress documentation site from audit data",
	Long: `Scaffold a VitePress site from an audit directory.

The directory must contain audit_report.json. screenshots/ and diagrams/
are copied as assets, and estimation_report.md, when present, becomes the
site's estimation page.

Examples:
  website-audit site ./audit
  website-audit site ./audit ./public-site --theme ./theme`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSite,
}

func init() {
	siteCmd.Flags().StringVarP(&siteOutput, "out", "o", "", "output directory, same as the second argument (default <audit-dir>/site)")
	siteCmd.Flags().StringVar(&siteTheme, "theme", "", "theme directory (default from config, then the bundled theme)")
}

func runSite(cmd *cobra.Command, args []string) error {
	auditDir := args[0]
	outDir := siteOutput
	if len(args) == 2 {
		outDir = args[1]
	}
	if outDir == "" {
		outDir = filepath.Join(auditDir, "site")
	}
	themeDir := siteTheme
	if themeDir == "" {
		themeDir = config.Get().Site.ThemeDir
	}

	res, err := site.New(themeDir).Generate(auditDir, outDir)
	if err != nil {
		return err
	}

	w := ui.NewWriter(cmd.OutOrStdout(), noColor)
	w.Success("Generated site for %s in %s", res.ProjectName, res.OutputDir)
	if res.ThemeFallback && themeDir != "" {
		w.Warning("Theme directory %s not found, used the bundled theme", themeDir)
	}
	if !res.EstimationCopied {
		w.Info("No %s found, the estimation page was skipped", site.EstimationReportFile)
	}
	w.Debug("%d files written", len(res.Files))
	w.Println("")
	w.Println("Next steps:")
	w.Println("  cd %s", res.OutputDir)
	w.Println("  npm install")
	w.Println("  npm run docs:dev")
	return nil
}
