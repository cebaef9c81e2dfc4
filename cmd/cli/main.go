// Package main is the entry point for the website-audit CLI.
package main

import (
	"os"

	"website-audit/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
