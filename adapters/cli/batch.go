package adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"website-audit/core/output"
)

// BatchResult is the outcome for one inventory of a batch
type BatchResult struct {
	Path    string
	Report  *output.Report
	Outputs *Outputs
	Err     error
}

// BatchObserver is told about each inventory as it finishes. Calls may
// come from several goroutines.
type BatchObserver interface {
	Done(path string, totalHours float64)
	Failed(path string, err error)
}

// RunBatch estimates every path with at most cfg.Batch.Workers in flight.
// A failing inventory does not stop the others; the returned error
// combines every failure. Results keep the order of paths.
func (a *CLIAdapter) RunBatch(ctx context.Context, paths []string, obs BatchObserver) ([]BatchResult, error) {
	results := make([]BatchResult, len(paths))
	qualified := sharedDirs(paths)

	g, gctx := errgroup.WithContext(ctx)
	workers := a.cfg.Batch.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	a.log.Info("batch started", zap.Int("files", len(paths)), zap.Int("workers", workers))

	for i, path := range paths {
		g.Go(func() error {
			report, outs, err := a.Estimate(gctx, path, qualified[filepath.Dir(path)])
			results[i] = BatchResult{Path: path, Report: report, Outputs: outs, Err: err}
			if obs != nil {
				if err != nil {
					obs.Failed(path, err)
				} else {
					obs.Done(path, report.Result.TotalHours)
				}
			}
			// per-file failures are collected below, only cancellation stops the group
			return gctx.Err()
		})
	}
	waitErr := g.Wait()

	var errs error
	for _, r := range results {
		if r.Err != nil {
			errs = multierr.Append(errs, r.Err)
		}
	}
	if waitErr != nil {
		errs = multierr.Append(errs, waitErr)
	}

	failed := len(multierr.Errors(errs))
	a.log.Info("batch finished", zap.Int("files", len(paths)), zap.Int("errors", failed))
	if errs != nil {
		return results, fmt.Errorf("%d of %d inventories failed: %w", countFailed(results), len(paths), errs)
	}
	return results, nil
}

// sharedDirs marks directories holding more than one input, whose report
// files would otherwise overwrite each other
func sharedDirs(paths []string) map[string]bool {
	seen := make(map[string]int)
	for _, p := range paths {
		seen[filepath.Dir(p)]++
	}
	shared := make(map[string]bool)
	for dir, n := range seen {
		if n > 1 {
			shared[dir] = true
		}
	}
	return shared
}

func countFailed(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
