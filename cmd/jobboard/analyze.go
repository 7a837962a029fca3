package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/analysis"
	"github.com/jonathan/jobboard/internal/llm"
	"github.com/jonathan/jobboard/internal/types"
)

var (
	analyzeResumePath string
	analyzeJobTitle   string
	analyzeJobDomain  string
	analyzeJobSkills  []string
	analyzeAPIKey     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume text file against a job, without the server",
	Long: `Run the full analysis pipeline once from the command line: structure the
resume, match skills, compute the compatibility score and print the result as JSON.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumePath, "resume", "r", "", "Path to resume text file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobTitle, "title", "t", "", "Job title (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobDomain, "domain", "d", "", "Job domain")
	analyzeCmd.Flags().StringSliceVarP(&analyzeJobSkills, "skills", "s", nil, "Required skills, comma-separated (required)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")

	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("title")
	_ = analyzeCmd.MarkFlagRequired("skills")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	rawText, err := os.ReadFile(analyzeResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	feedback := &analysis.FeedbackGenerator{Config: llm.ConfigFromEnv()}
	if apiKey != "" {
		client, err := llm.NewGeminiClient(ctx, feedback.Config, apiKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()
		feedback.Client = client
	}

	job := types.JobRequirement{
		Title:  analyzeJobTitle,
		Domain: analyzeJobDomain,
		Skills: analyzeJobSkills,
	}

	analyzer := analysis.NewAnalyzer(feedback)
	result := analyzer.Analyze(ctx, string(rawText), nil, job)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
