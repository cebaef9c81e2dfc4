package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"website-audit/core/engine"
	"website-audit/core/types"
)

// WeeksPerMonth converts weekly capacity into monthly capacity
const WeeksPerMonth = 4

// PessimisticFactor scales the likely total into the pessimistic range
const PessimisticFactor = 1.3

// Pace is a staffing assumption used for timeline projections
type Pace struct {
	Label        string
	HoursPerWeek float64
}

// Paces are the three timeline projections, in report order
var Paces = []Pace{
	{Label: "Full-time", HoursPerWeek: 40},
	{Label: "Realistic", HoursPerWeek: 30},
	{Label: "Part-time", HoursPerWeek: 20},
}

// RealisticPace is used for month figures in the ranges table and CLI summary
var RealisticPace = Paces[1]

// Weeks converts hours into weeks at this pace
func (p Pace) Weeks(hours float64) float64 {
	return hours / p.HoursPerWeek
}

// Months converts hours into months at this pace
func (p Pace) Months(hours float64) float64 {
	return hours / (p.HoursPerWeek * WeeksPerMonth)
}

// MarkdownFormatter renders the full estimation report
type MarkdownFormatter struct{}

// Format implements Formatter
func (MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render implements Formatter
func (MarkdownFormatter) Render(w io.Writer, report *Report) error {
	_, err := io.WriteString(w, FormatReport(report.Result, report.Input))
	return err
}

// FormatReport renders result as markdown. input supplies the project name,
// risk label, migration details and audit date. The rounding here is for
// display only.
func FormatReport(result *types.EstimationResult, input *types.ProjectInput) string {
	var b strings.Builder
	r := result
	total := r.TotalHours
	riskLabel := TitleLabel(input.RiskLabel())

	fmt.Fprintf(&b, "# Project Estimation Report: %s\n\n", input.ResolvedProjectName())

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Hours | % of Total |\n")
	b.WriteString("|--------|-------|-----------|\n")
	summaryRow(&b, "Base Hours (Entities)", r.BaseHours, total)
	summaryRow(&b, "Multipliers", r.MultiplierHours, total)
	summaryRow(&b, "Migration", r.MigrationHours, total)
	summaryRow(&b, "Additional Effort", r.AdditionalHours, total)
	summaryRow(&b, "Subtotal", r.Subtotal, total)
	summaryRow(&b, fmt.Sprintf("Buffer (%s)", riskLabel), r.BufferHours, total)
	fmt.Fprintf(&b, "| **TOTAL ESTIMATE** | **%.1f** | **100%%** |\n\n", total)

	b.WriteString("## Timeline Projections\n")
	for _, p := range Paces {
		fmt.Fprintf(&b, "\n### %s (%.0fh/week)\n", p.Label, p.HoursPerWeek)
		fmt.Fprintf(&b, "- **Weeks:** %.1f\n", p.Weeks(total))
		fmt.Fprintf(&b, "- **Months:** %.1f\n", p.Months(total))
	}

	pessimistic := total * PessimisticFactor
	b.WriteString("\n## Estimate Ranges\n\n")
	fmt.Fprintf(&b, "| Confidence | Hours | Timeline (%.0fh/week) |\n", RealisticPace.HoursPerWeek)
	b.WriteString("|-----------|-------|---------------------|\n")
	fmt.Fprintf(&b, "| Optimistic (Base) | %.0f | %.1f months |\n", r.BaseHours, RealisticPace.Months(r.BaseHours))
	fmt.Fprintf(&b, "| Likely (Recommended) | %.0f | %.1f months |\n", total, RealisticPace.Months(total))
	fmt.Fprintf(&b, "| Pessimistic (+%.0f%%) | %.0f | %.1f months |\n",
		(PessimisticFactor-1)*100, pessimistic, RealisticPace.Months(pessimistic))
	b.WriteString("\n**Recommendation:** Use the \"Likely\" estimate for planning and budgeting.\n\n")

	b.WriteString("---\n\n## Detailed Breakdown\n\n### Base Hours by Entity Type\n\n")
	b.WriteString(formatBreakdown(r))
	fmt.Fprintf(&b, "\n\n**Total Base Hours:** %.1f\n\n", r.BaseHours)

	b.WriteString("---\n\n### Multipliers Applied\n\n")
	b.WriteString("| Multiplier | Percentage | Hours |\n")
	b.WriteString("|-----------|-----------|-------|\n")
	for _, m := range r.Multipliers {
		fmt.Fprintf(&b, "| %s | %.0f%% | %.1f |\n", TitleLabel(m.Name), Percent(m.Hours, r.BaseHours), m.Hours)
	}
	fmt.Fprintf(&b, "\n**Total Multipliers:** %.1f hours\n\n", r.MultiplierHours)

	b.WriteString("---\n\n### Migration Effort\n\n")
	if r.MigrationHours != 0 {
		fmt.Fprintf(&b, "\n- **Content Volume:** %s nodes\n", humanize.Comma(int64(input.MigrationNodes())))
		fmt.Fprintf(&b, "- **Complexity:** %s\n", TitleLabel(string(input.MigrationComplexity())))
		fmt.Fprintf(&b, "- **Base Setup:** %.0f hours\n", engine.MigrationSetupHours)
		fmt.Fprintf(&b, "- **Migration Hours:** %.1f hours\n", r.MigrationHours)
	} else {
		b.WriteString("No migration required.\n")
	}

	pmHours := r.AdditionalHours - engine.InfrastructureSetupHours - engine.TrainingHandoverHours
	b.WriteString("\n---\n\n### Additional Effort\n\n")
	b.WriteString("| Item | Hours |\n")
	b.WriteString("|------|-------|\n")
	fmt.Fprintf(&b, "| Infrastructure Setup | %.1f |\n", engine.InfrastructureSetupHours)
	fmt.Fprintf(&b, "| Training & Handover | %.1f |\n", engine.TrainingHandoverHours)
	fmt.Fprintf(&b, "| Project Management (%.0f%%) | %.1f |\n", engine.PMRate*100, pmHours)
	fmt.Fprintf(&b, "| **Total Additional** | **%.1f** |\n", r.AdditionalHours)

	b.WriteString("\n---\n\n### Buffer for Unknowns\n\n")
	fmt.Fprintf(&b, "- **Risk Level:** %s\n", riskLabel)
	fmt.Fprintf(&b, "- **Buffer Percentage:** %.0f%%\n", engine.BufferPercentage(input.ResolvedRiskLevel())*100)
	fmt.Fprintf(&b, "- **Buffer Hours:** %.1f\n", r.BufferHours)

	b.WriteString("\n---\n\n## Assumptions\n\n")
	numbered(&b, r.Assumptions)

	b.WriteString("\n---\n\n## Risks\n\n")
	numbered(&b, r.Risks)

	b.WriteString("\n---\n\n## Validation\n\n")
	b.WriteString("This estimate was calculated using:\n")
	b.WriteString("- **Method:** Bottom-up estimation with multipliers\n")
	b.WriteString("- **Baseline:** adessoCMS Drupal 11 project\n")
	b.WriteString("- **Tool:** website-audit estimator\n\n")
	b.WriteString("**Next Steps:**\n")
	b.WriteString("1. Review entity breakdown for accuracy\n")
	b.WriteString("2. Validate complexity classifications\n")
	b.WriteString("3. Confirm multipliers are appropriate\n")
	b.WriteString("4. Assess risk level\n")
	b.WriteString("5. Compare to baseline (if available)\n\n")
	fmt.Fprintf(&b, "---\n\n*Generated: %s*", input.ResolvedAuditDate())

	return b.String()
}

func summaryRow(b *strings.Builder, label string, hours, total float64) {
	fmt.Fprintf(b, "| %s | %.1f | %.1f%% |\n", label, hours, Percent(hours, total))
}

// SummaryRows returns just the summary table rows, for comparing reports
func SummaryRows(report string) []string {
	var rows []string
	inSummary := false
	for _, line := range strings.Split(report, "\n") {
		switch {
		case line == "## Summary":
			inSummary = true
		case inSummary && strings.HasPrefix(line, "## "):
			return rows
		case inSummary && strings.HasPrefix(line, "| ") && !strings.HasPrefix(line, "| Metric"):
			rows = append(rows, line)
		}
	}
	return rows
}

func formatBreakdown(r *types.EstimationResult) string {
	var lines []string
	for _, group := range r.GroupByCategory() {
		lines = append(lines, fmt.Sprintf("\n### %s\n", TitleLabel(string(group.Category))))
		lines = append(lines, "| Name | Complexity | Hours |")
		lines = append(lines, "|------|-----------|-------|")
		for _, e := range group.Entities {
			lines = append(lines, fmt.Sprintf("| %s | %s | %.1f |", e.Name, TitleLabel(string(e.Complexity)), e.Hours))
		}
		lines = append(lines, fmt.Sprintf("| **Subtotal** | | **%.1f** |", group.Hours))
	}
	return strings.Join(lines, "\n")
}

func numbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}
