// Package cmd - report command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"website-audit/adapters/inventory"
	"website-audit/core/output"
	apperrors "website-audit/internal/errors"
)

var (
	reportInput  string
	reportOutput string
)

// reportCmd re-renders a saved export
var reportCmd = &cobra.Command{
	Use:   "report <estimation_result.json>",
	Short: "Re-render the markdown report from a saved export",
	Long: `Rebuild the markdown report from an estimation_result.json export and the
inventory it was computed from. The export's figures are used as stored;
nothing is recomputed.

Examples:
  website-audit report estimation_result.json --input entities.json
  website-audit report estimation_result.json --input entities.yaml -o report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "", "inventory the export was computed from")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to a file instead of stdout")
	_ = reportCmd.MarkFlagRequired("input")
}

func runReport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.NotFound("export", args[0])
		}
		return apperrors.Input("failed to open export", err)
	}
	defer f.Close()

	export, err := output.DecodeExport(f)
	if err != nil {
		return err
	}

	input, err := inventory.LoadFile(reportInput)
	if err != nil {
		return err
	}

	md := output.FormatReport(output.ResultFromExport(export), input)
	if reportOutput == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	}
	if err := os.WriteFile(reportOutput, []byte(md), 0644); err != nil {
		return apperrors.Input("failed to write "+reportOutput, err)
	}
	return nil
}
