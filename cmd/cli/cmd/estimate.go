// Package cmd - estimate command
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	adapter "website-audit/adapters/cli"
	"website-audit/core/output"
	"website-audit/core/ui"
	"website-audit/internal/config"
)

var (
	outputFormat  string
	noWrite       bool
	watchMode     bool
	watchDebounce time.Duration
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [inventory...]",
	Short: "Estimate effort for one or more entity inventories",
	Long: `Load an entity inventory and produce an effort estimate.

The inventory format follows the file extension (.json, .yaml, .yml, .hcl).
Unless --no-write is given, estimation_report.md and estimation_result.json
are written next to each inventory. Several inventories are estimated
concurrently; when two share a directory their output files are prefixed
with the inventory's name.

Examples:
  website-audit estimate entities.json
  website-audit estimate --format json --no-write entities.yaml
  website-audit estimate sites/*/entities.json
  website-audit estimate --watch entities.hcl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, markdown, json); defaults to the config value")
	estimateCmd.Flags().BoolVar(&noWrite, "no-write", false, "do not write report files next to the inventory")
	estimateCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-estimate whenever the inventory changes")
	estimateCmd.Flags().DurationVar(&watchDebounce, "debounce", adapter.DefaultDebounce, "quiet period before a watched change is estimated")
}

// newRegistry holds every stdout format the CLI offers
func newRegistry() *output.Registry {
	registry := output.NewRegistry()
	_ = registry.Register(ui.SummaryFormatter{NoColor: noColor})
	return registry
}

func newAdapter(cmd *cobra.Command) *adapter.CLIAdapter {
	cfg := config.Get()
	a := adapter.NewCLIAdapter(cfg, newRegistry())
	a.SetOutput(cmd.OutOrStdout())
	if outputFormat != "" {
		a.SetFormat(output.Format(outputFormat))
	}
	a.SetWrite(!noWrite)
	return a
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newAdapter(cmd)
	w := ui.NewWriter(cmd.ErrOrStderr(), noColor)
	if verbose {
		w.SetVerbosity(2)
	}

	switch {
	case watchMode:
		if len(args) != 1 {
			return fmt.Errorf("--watch takes exactly one inventory, got %d", len(args))
		}
		return watch(ctx, a, w, args[0])
	case len(args) == 1:
		return a.Run(ctx, args[0])
	default:
		return batch(ctx, a, w, args)
	}
}

func batch(ctx context.Context, a *adapter.CLIAdapter, w *ui.Writer, paths []string) error {
	progress := w.NewBatchProgress(len(paths))
	results, err := a.RunBatch(ctx, paths, progress)
	progress.Finish()

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if renderErr := a.Render(r.Report); renderErr != nil {
			return renderErr
		}
		if r.Outputs != nil {
			w.Debug("%s: wrote %s and %s", r.Path, r.Outputs.ReportPath, r.Outputs.ResultPath)
		}
	}
	return err
}

func watch(ctx context.Context, a *adapter.CLIAdapter, w *ui.Writer, path string) error {
	w.Info("Watching %s (Ctrl+C to stop)", path)
	return a.Watch(ctx, path, watchDebounce, func(report *output.Report, err error) {
		if err != nil {
			w.Error("%v", err)
			return
		}
		if renderErr := a.Render(report); renderErr != nil {
			w.Error("%v", renderErr)
			return
		}
		w.Success("Estimated %s at %s", path, time.Now().Format("15:04:05"))
	})
}
