// Package cmd - show command
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"website-audit/core/output"
	"website-audit/core/ui"
	apperrors "website-audit/internal/errors"
)

var showWidth int

// showCmd renders a report in the terminal
var showCmd = &cobra.Command{
	Use:   "show <report.md | inventory>",
	Short: "Render an estimation report in the terminal",
	Long: `Render a markdown report with terminal styling. Given an inventory instead
of a markdown file, the inventory is estimated first; no files are written.

Examples:
  website-audit show estimation_report.md
  website-audit show entities.json --width 120`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVar(&showWidth, "width", ui.DefaultWrap, "word-wrap width")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]

	var md string
	if strings.EqualFold(filepath.Ext(path), ".md") {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return apperrors.NotFound("report", path)
			}
			return apperrors.Input("failed to read report", err)
		}
		md = string(data)
	} else {
		a := newAdapter(cmd)
		a.SetWrite(false)
		report, _, err := a.Estimate(context.Background(), path, false)
		if err != nil {
			return err
		}
		md = output.FormatReport(report.Result, report.Input)
	}

	rendered, err := ui.RenderMarkdown(md, showWidth, noColor)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return err
}
