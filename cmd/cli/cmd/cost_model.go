// Package cmd - cost-model command
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"website-audit/core/engine"
	"website-audit/core/output"
	"website-audit/core/types"
	"website-audit/core/ui"
	"website-audit/internal/config"
)

var costModelJSON bool

// costModelCmd prints the tables every estimate is priced with
var costModelCmd = &cobra.Command{
	Use:   "cost-model",
	Short: "Print the cost model used for estimates",
	Args:  cobra.NoArgs,
	RunE:  runCostModel,
}

func init() {
	costModelCmd.Flags().BoolVar(&costModelJSON, "json", false, "print the model as JSON")
}

func runCostModel(cmd *cobra.Command, args []string) error {
	model := engine.Model()
	cfg := config.Get()

	if costModelJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(model)
	}

	rate, err := cfg.HourlyRate()
	if err != nil {
		return err
	}

	w := ui.NewWriter(cmd.OutOrStdout(), noColor)
	tiers := []types.Complexity{types.ComplexitySimple, types.ComplexityMedium, types.ComplexityComplex}

	w.Header("Cost model")
	w.SubHeader("Hours per entity")
	t := w.NewTable("Category", "Simple", "Medium", "Complex").AlignRight(1, 2, 3)
	for _, c := range types.Categories() {
		row := []string{output.TitleLabel(string(c))}
		for _, cx := range tiers {
			row = append(row, humanize.Ftoa(model.Entities[c][cx]))
		}
		t.AddRow(row...)
	}
	t.Render()

	w.SubHeader("Migration")
	w.Println("%s h setup, plus %s h per 100 nodes times the tier multiplier",
		humanize.Ftoa(model.MigrationSetupHours), humanize.Ftoa(model.MigrationBaseRate))
	mt := w.NewTable("Tier", "Multiplier").AlignRight(1)
	for _, cx := range tiers {
		mt.AddRow(output.TitleLabel(string(cx)), fmt.Sprintf("×%s", humanize.Ftoa(model.MigrationMultipliers[cx])))
	}
	mt.Render()

	w.SubHeader("Fixed and proportional")
	ft := w.NewTable("Item", "Value").AlignRight(1)
	ft.AddRow("Infrastructure setup", humanize.Ftoa(model.InfrastructureHours)+" h")
	ft.AddRow("Training & handover", humanize.Ftoa(model.TrainingHours)+" h")
	ft.AddRow("Project management", fmt.Sprintf("%s%% of subtotal", humanize.Ftoa(model.PMRate*100)))
	for _, level := range []types.RiskLevel{types.RiskLow, types.RiskMedium, types.RiskHigh} {
		ft.AddRow(output.TitleLabel(string(level))+" risk buffer", fmt.Sprintf("%s%%", humanize.Ftoa(model.BufferPercentages[level]*100)))
	}
	ft.AddRow("Hourly rate", cfg.Cost.CurrencySymbol+rate.StringFixed(2))
	ft.Render()
	return nil
}
