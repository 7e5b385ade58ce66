package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/schemas"
)

var parseCommand = &cobra.Command{
	Use:   "parse",
	Short: "Parse raw resume text into structured JSON",
	Long:  "Extracts a structured resume document from plain resume text using the fast model tier, fixing spacing and formatting artifacts along the way. The output is the input format the optimize command expects.",
	RunE:  runParseCmd,
}

var (
	parseConfigPath string
	parseInput      string
	parseOut        string
	parseAPIKey     string
)

func init() {
	parseCommand.Flags().StringVar(&parseConfigPath, "config", "", "Path to config.json file")
	parseCommand.Flags().StringVarP(&parseInput, "input", "i", "", "Path to raw resume text file (required)")
	parseCommand.Flags().StringVarP(&parseOut, "out", "o", "", "Path to write the structured resume JSON (defaults to stdout)")
	parseCommand.Flags().StringVar(&parseAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(parseCommand)
}

func runParseCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	optConfigPath = parseConfigPath
	optAPIKey = parseAPIKey
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if parseInput == "" {
		return fmt.Errorf("--input is required")
	}

	text, err := os.ReadFile(parseInput)
	if err != nil {
		return fmt.Errorf("failed to read resume text: %w", err)
	}

	engine, r, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck // nothing to do about close errors on exit

	resume, err := engine.ParseResume(ctx, string(text))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	// The model occasionally drops required fields; surface that here rather
	// than on the next optimize run.
	if err := schemas.ValidateValue(resume); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: parsed resume is incomplete:\n%v\n", err)
	}

	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode parsed resume: %w", err)
	}
	data = append(data, '\n')

	if parseOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(parseOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
