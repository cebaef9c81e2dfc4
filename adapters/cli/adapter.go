// Package adapter provides thin adapters over the core engine.
// The CLI adapter loads inventories, delegates to the engine and writes
// the report files; it holds no estimation logic.
package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"website-audit/adapters/inventory"
	"website-audit/core/engine"
	"website-audit/core/output"
	"website-audit/internal/config"
	apperrors "website-audit/internal/errors"
	"website-audit/internal/logging"
)

// CLIAdapter is a THIN wrapper around the core engine.
// It handles input/output only - all logic is in the engine.
type CLIAdapter struct {
	cfg      *config.Config
	registry *output.Registry
	output   io.Writer
	format   output.Format
	write    bool
	now      func() time.Time
	log      *zap.Logger
}

// NewCLIAdapter creates a new CLI adapter. The registry must hold a
// formatter for every format passed to SetFormat.
func NewCLIAdapter(cfg *config.Config, registry *output.Registry) *CLIAdapter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &CLIAdapter{
		cfg:      cfg,
		registry: registry,
		output:   os.Stdout,
		format:   output.Format(cfg.Output.DefaultFormat),
		write:    true,
		now:      time.Now,
		log:      logging.Component("cli"),
	}
}

// SetOutput sets the output writer
func (a *CLIAdapter) SetOutput(w io.Writer) {
	a.output = w
}

// SetFormat sets the stdout format
func (a *CLIAdapter) SetFormat(f output.Format) {
	a.format = f
}

// SetWrite toggles writing the report files next to each inventory
func (a *CLIAdapter) SetWrite(write bool) {
	a.write = write
}

// SetClock replaces the clock used for export timestamps
func (a *CLIAdapter) SetClock(now func() time.Time) {
	a.now = now
}

// Outputs names the files written for one inventory
type Outputs struct {
	ReportPath string
	ResultPath string
}

// Run estimates one inventory, writes its files and renders the result
func (a *CLIAdapter) Run(ctx context.Context, path string) error {
	report, _, err := a.Estimate(ctx, path, false)
	if err != nil {
		return err
	}
	return a.Render(report)
}

// Render writes report to the adapter output in the selected format
func (a *CLIAdapter) Render(report *output.Report) error {
	f, ok := a.registry.Get(a.format)
	if !ok {
		return apperrors.Newf(apperrors.TypeInput, "unknown output format %q (available: %s)", a.format, a.formatList())
	}
	return f.Render(a.output, report)
}

// Estimate loads and estimates one inventory. Unless writing is disabled
// the markdown report and JSON export are written next to the input;
// qualified prefixes their names with the input's base name.
func (a *CLIAdapter) Estimate(ctx context.Context, path string, qualified bool) (*output.Report, *Outputs, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	log := a.log.With(zap.String("file", path))

	input, err := inventory.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	result, err := engine.Estimate(input)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	rate, err := a.cfg.HourlyRate()
	if err != nil {
		return nil, nil, err
	}
	cost := output.ProjectCost(result.TotalHours, rate, a.cfg.Cost.CurrencySymbol)

	report := &output.Report{
		Result:   result,
		Input:    input,
		Cost:     cost,
		Metadata: output.NewMetadata(input, cost, a.now()),
	}
	log.Info("estimated",
		zap.Float64("total_hours", result.TotalHours),
		zap.Int("entities", len(result.Breakdown)),
		zap.Stringer("estimate_id", report.Metadata.EstimateID))

	if !a.write {
		return report, nil, nil
	}

	outs := a.siblingPaths(path, qualified)
	if err := writeRendered(outs.ReportPath, output.MarkdownFormatter{}, report); err != nil {
		return nil, nil, err
	}
	if err := writeRendered(outs.ResultPath, output.JSONFormatter{Indent: a.cfg.Output.PrettyJSON}, report); err != nil {
		return nil, nil, err
	}
	log.Debug("wrote report files", zap.String("report", outs.ReportPath), zap.String("result", outs.ResultPath))

	return report, outs, nil
}

func (a *CLIAdapter) siblingPaths(path string, qualified bool) *Outputs {
	dir := filepath.Dir(path)
	reportName, resultName := a.cfg.Output.ReportFile, a.cfg.Output.ResultFile
	if qualified {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		reportName = stem + "." + reportName
		resultName = stem + "." + resultName
	}
	return &Outputs{
		ReportPath: filepath.Join(dir, reportName),
		ResultPath: filepath.Join(dir, resultName),
	}
}

func writeRendered(path string, f output.Formatter, report *output.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return apperrors.Input("failed to create "+path, err)
	}
	if err := f.Render(file, report); err != nil {
		file.Close()
		return apperrors.Input("failed to write "+path, err)
	}
	if err := file.Close(); err != nil {
		return apperrors.Input("failed to write "+path, err)
	}
	return nil
}

func (a *CLIAdapter) formatList() string {
	formats := a.registry.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
