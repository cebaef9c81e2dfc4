// Package cmd provides the CLI commands for website-audit.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"website-audit/internal/config"
	"website-audit/internal/logging"
)

// Version is the CLI version, overridden at build time
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "website-audit",
	Short: "Estimate Drupal rebuild effort from a website audit",
	Long: `website-audit turns an audited entity inventory into an effort estimate.

It reads an inventory (JSON, YAML or HCL), prices every entity against a
fixed cost model and writes a markdown report plus a JSON export next to
the input. Audit data can also be scaffolded into a documentation site.

Examples:
  website-audit estimate entities.json
  website-audit estimate --format markdown --no-write entities.yaml
  website-audit estimate --watch entities.json
  website-audit site ./audit --out ./audit-site`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.website-audit.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(siteCmd)
	rootCmd.AddCommand(costModelCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	// a missing file yields the defaults
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "website-audit version %s\n", Version)
	},
}
