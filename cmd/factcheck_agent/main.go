// Package main provides the entry point for the FactCheck Agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "factcheck_agent",
	Short: "FactCheck Agent HTTP API Server",
	Long:  "FactCheck Agent verifies textual claims and article URLs against external AI fact-check providers and renders exportable PDF reports.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
