package ui

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"website-audit/core/engine"
	"website-audit/core/output"
)

// SummaryFormatter renders the terminal summary of an estimate. It is the
// FormatCLI member of the output registry.
type SummaryFormatter struct {
	NoColor bool
}

// Format implements output.Formatter
func (SummaryFormatter) Format() output.Format { return output.FormatCLI }

// Render implements output.Formatter
func (f SummaryFormatter) Render(w io.Writer, report *output.Report) error {
	ew := &errWriter{w: w}
	NewWriter(ew, f.NoColor).Summary(report)
	return ew.err
}

// Summary prints the headline box followed by the hour breakdown
func (w *Writer) Summary(report *output.Report) {
	r := report.Result
	w.Header("Estimation: " + report.Input.ResolvedProjectName())

	lines := []string{
		fmt.Sprintf("%-16s %s", "Total effort", w.st.success.Render(hours(r.TotalHours))),
		fmt.Sprintf("%-16s %.1f months", output.RealisticPace.Label+" pace", output.RealisticPace.Months(r.TotalHours)),
	}
	if report.Cost != nil {
		lines = append(lines, fmt.Sprintf("%-16s %s %s", "Projected cost", report.Cost.String(), w.st.dim.Render("at "+report.Cost.RateLabel())))
	}
	w.Box(lines...)
	w.Println("")

	w.SubHeader("Entities")
	groups := r.GroupByCategory()
	if len(groups) == 0 {
		w.Println("%s", w.st.dim.Render("  no entities"))
	} else {
		t := w.NewTable("Category", "Items", "Hours", "Share").AlignRight(1, 2, 3)
		for _, g := range groups {
			t.AddRow(output.TitleLabel(string(g.Category)), fmt.Sprint(len(g.Entities)), hours(g.Hours), share(g.Hours, r.TotalHours))
		}
		t.Render()
	}
	w.Println("")

	w.SubHeader("Totals")
	t := w.NewTable("Component", "Hours", "Share").AlignRight(1, 2)
	t.AddRow("Base", hours(r.BaseHours), share(r.BaseHours, r.TotalHours))
	for _, m := range r.Multipliers {
		t.AddRow("  "+output.TitleLabel(m.Name), hours(m.Hours), share(m.Hours, r.TotalHours))
	}
	if r.MigrationHours != 0 {
		t.AddRow("Migration", hours(r.MigrationHours), share(r.MigrationHours, r.TotalHours))
	}
	t.AddRow("Additional", hours(r.AdditionalHours), share(r.AdditionalHours, r.TotalHours))
	risk := report.Input.ResolvedRiskLevel()
	t.AddRow(fmt.Sprintf("Buffer (%.0f%%)", engine.BufferPercentage(risk)*100), hours(r.BufferHours), share(r.BufferHours, r.TotalHours))
	t.AddRow("Total", hours(r.TotalHours), share(r.TotalHours, r.TotalHours))
	t.Render()

	if r.TotalHours > 0 {
		w.Println("")
		w.Debug("%d entities, %d multipliers, risk %s", len(r.Breakdown), len(r.Multipliers), risk)
	}
}

func hours(h float64) string {
	return humanize.CommafWithDigits(h, 1) + " h"
}

func share(part, whole float64) string {
	return fmt.Sprintf("%.1f%%", output.Percent(part, whole))
}

// errWriter keeps the first write error so Render can report it
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, nil
}
