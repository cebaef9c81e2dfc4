// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs from an
// estimation result and the input it was computed from.
package output

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"website-audit/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal summary
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is the full markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, report *Report) error
}

// Report bundles what every formatter needs. Input is the original
// configuration the result was computed from.
type Report struct {
	Result *types.EstimationResult
	Input  *types.ProjectInput

	// Cost is optional; formatters that show money skip it when nil
	Cost *CostProjection

	// Metadata is optional and only used by the JSON export
	Metadata *ExportMetadata
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry returns a registry holding the markdown and JSON formatters
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	_ = r.Register(MarkdownFormatter{})
	_ = r.Register(JSONFormatter{Indent: true})
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Format()]; exists {
		return fmt.Errorf("formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns a formatter for a format type
func (r *Registry) Get(format Format) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[format]
	return f, ok
}

// Formats lists registered formats in sorted order
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
