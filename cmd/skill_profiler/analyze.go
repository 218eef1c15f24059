package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/db"
	"github.com/jonathan/skill-profiler/internal/fetch"
	"github.com/jonathan/skill-profiler/internal/infer"
	"github.com/jonathan/skill-profiler/internal/observability"
	"github.com/jonathan/skill-profiler/internal/pipeline"
	"github.com/jonathan/skill-profiler/internal/source"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a single analysis job end-to-end",
	Long: `Analyzes a document and/or a set of URLs synchronously and prints the
resulting skill profile. Useful for local runs without the HTTP server.`,
	RunE: runAnalyze,
}

var (
	analyzeFile       string
	analyzeURLs       []string
	analyzeAPIKey     string
	analyzeUseBrowser bool
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to a CV document (.pdf or .docx)")
	analyzeCmd.Flags().StringSliceVarP(&analyzeURLs, "url", "u", nil, "Source URL (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if analyzeFile == "" && len(analyzeURLs) == 0 {
		return fmt.Errorf("nothing to analyze: provide --file or at least one --url")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	log, err := observability.NewLogger(false, analyzeVerbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	fetcher := source.NewFetcher(fetch.DefaultOptions(), fetch.NewTextCache(64), analyzeUseBrowser, log)
	provider := infer.NewProvider(ctx, infer.Config{APIKey: apiKey}, log)
	if closer, ok := provider.(interface{ Close() error }); ok {
		defer closer.Close() //nolint:errcheck
	}
	runner := pipeline.NewRunner(database, fetcher, provider, log)

	job, err := database.CreateJob(ctx, db.JobPayload{FilePath: analyzeFile, URLs: analyzeURLs})
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	if err := runner.Run(ctx, job.ID, job.Payload); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return printProfile(ctx, database, job.ID)
}

// printProfile loads the finished job's profile and writes a readable
// summary to stdout.
func printProfile(ctx context.Context, database *db.DB, jobID uuid.UUID) error {
	job, err := database.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil || job.ProfileID == nil {
		return fmt.Errorf("job finished without a profile")
	}

	profile, err := database.GetProfile(ctx, *job.ProfileID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("profile not found: %s", *job.ProfileID)
	}

	skills, err := database.ProfileSkills(ctx, profile.ID)
	if err != nil {
		return fmt.Errorf("failed to load profile skills: %w", err)
	}

	fmt.Printf("%s\n%s\n\n", profile.Name, profile.Summary)
	fmt.Println("Top skills:")
	for _, ts := range profile.TopSkills {
		fmt.Printf("  %-30s %.2f\n", ts.Name, ts.Confidence)
	}
	fmt.Printf("\nAll skills (%d):\n", len(skills))
	for _, ps := range skills {
		fmt.Printf("  %-30s %-8s %.2f  (%d evidence)\n",
			ps.Skill.Name, ps.Skill.Type, ps.Confidence, len(ps.Evidence))
	}
	return nil
}
