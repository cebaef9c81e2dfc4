// Package cmd - diff command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"website-audit/core/diff"
	"website-audit/core/output"
	"website-audit/core/ui"
	apperrors "website-audit/internal/errors"
)

var diffJSON bool

// diffCmd compares two saved exports
var diffCmd = &cobra.Command{
	Use:   "diff <before.json> <after.json>",
	Short: "Compare two estimation exports",
	Long: `Show how an estimate moved between two estimation_result.json exports:
summary figures, per-category hours and added, removed or re-tiered entities.

Examples:
  website-audit diff march/estimation_result.json april/estimation_result.json
  website-audit diff before.json after.json --json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "print the diff as JSON")
}

func loadExport(path string) (*output.Export, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound("export", path)
		}
		return nil, apperrors.Input("failed to open export", err)
	}
	defer f.Close()
	return output.DecodeExport(f)
}

func runDiff(cmd *cobra.Command, args []string) error {
	before, err := loadExport(args[0])
	if err != nil {
		return err
	}
	after, err := loadExport(args[1])
	if err != nil {
		return err
	}

	result := diff.Exports(before, after)
	if diffJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	w := ui.NewWriter(cmd.OutOrStdout(), noColor)
	w.Header("Estimate diff")
	if !result.HasChanges() {
		w.Success("No changes")
		return nil
	}

	t := w.NewTable("", "Before", "After", "Delta").AlignRight(1, 2, 3)
	for _, l := range result.Lines {
		t.AddRow(l.Label, hoursCell(l.Before), hoursCell(l.After), signed(l.Delta))
	}
	t.Render()
	w.Println("")
	w.Println("Total change: %s (%+.1f%%)", signed(result.TotalDelta), result.DeltaPercent)

	if len(result.Categories) > 0 {
		w.SubHeader("Categories")
		ct := w.NewTable("Category", "Before", "After", "Delta").AlignRight(1, 2, 3)
		for _, c := range result.Categories {
			ct.AddRow(output.TitleLabel(string(c.Category)), hoursCell(c.Before), hoursCell(c.After), signed(c.Delta))
		}
		ct.Render()
	}

	if n := len(result.Added) + len(result.Removed) + len(result.Changed); n > 0 {
		w.SubHeader("Entities")
		et := w.NewTable("Change", "Category", "Name", "Complexity", "Delta").AlignRight(4)
		for _, d := range result.Added {
			et.AddRow("+ added", output.TitleLabel(string(d.Category)), d.Name, string(d.After.Complexity), signed(d.Delta))
		}
		for _, d := range result.Removed {
			et.AddRow("- removed", output.TitleLabel(string(d.Category)), d.Name, string(d.Before.Complexity), signed(d.Delta))
		}
		for _, d := range result.Changed {
			tier := fmt.Sprintf("%s → %s", d.Before.Complexity, d.After.Complexity)
			et.AddRow("~ modified", output.TitleLabel(string(d.Category)), d.Name, tier, signed(d.Delta))
		}
		et.Render()
	}
	return nil
}

func hoursCell(h float64) string {
	return humanize.CommafWithDigits(h, 1) + " h"
}

func signed(h float64) string {
	if h > 0 {
		return "+" + hoursCell(h)
	}
	return hoursCell(h)
}
