// Package main provides the entry point for the skill profiler service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skill_profiler",
	Short: "Skill profiling ingestion service",
	Long:  "Skill profiler analyzes CVs and public web sources (GitHub, LinkedIn, blogs), extracts and infers professional skills with confidence-weighted evidence, and aggregates them into queryable profiles.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
