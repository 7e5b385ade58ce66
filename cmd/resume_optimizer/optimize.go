package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/keywords"
	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/optimizer"
	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/router"
	"github.com/jonathan/resume-optimizer/internal/schemas"
	"github.com/jonathan/resume-optimizer/internal/types"
	"github.com/jonathan/resume-optimizer/internal/validation"
)

var optimizeCommand = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize a resume against a job description",
	Long: `Extracts ATS keywords from the job description, rewrites the resume's summary, experience bullets, project goals, and skills in parallel, then fact-checks the result against the original.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runOptimizeCmd,
}

var (
	optConfigPath string
	optResume     string
	optJob        string
	optScore      string
	optOut        string
	optAPIKey     string
	optWorkers    int
	optNoFallback bool
	optVerbose    bool
)

func init() {
	optimizeCommand.Flags().StringVar(&optConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	optimizeCommand.Flags().StringVarP(&optResume, "resume", "r", "", "Path to structured resume JSON file (required)")
	optimizeCommand.Flags().StringVarP(&optJob, "job", "j", "", "Path to job description text file (required)")
	optimizeCommand.Flags().StringVar(&optScore, "score", "", "Path to a match-score JSON file; its missing skills are merged into the result")
	optimizeCommand.Flags().StringVarP(&optOut, "out", "o", "", "Path to write the optimized resume JSON (defaults to stdout)")
	optimizeCommand.Flags().IntVar(&optWorkers, "workers", 0, "Maximum concurrent section rewrites")
	optimizeCommand.Flags().BoolVar(&optNoFallback, "no-fallback", false, "Disable the fallback model on transient provider failures")
	optimizeCommand.Flags().BoolVarP(&optVerbose, "verbose", "v", false, "Print detailed progress information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	optimizeCommand.Flags().StringVar(&optAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(optimizeCommand)
}

func runOptimizeCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if optResume == "" || optJob == "" {
		return fmt.Errorf("--resume and --job are required")
	}

	resume, err := readResume(optResume)
	if err != nil {
		return err
	}
	jobDescription, err := os.ReadFile(optJob)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	engine, r, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck // nothing to do about close errors on exit

	printer := observability.NewPrinter(os.Stderr)

	result, err := engine.Optimize(ctx, resume, string(jobDescription))
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}
	if cfg.Verbose {
		printer.PrintKeywords(result.Keywords)
		printer.PrintRun(result)
	}

	report := validation.Validate(resume, result.Resume)
	printer.PrintValidation(report)

	if optScore != "" {
		if err := applyMatchScore(cfg, result.Resume, printer); err != nil {
			return err
		}
	}

	return writeResume(result.Resume, optOut)
}

// loadConfig loads the config file when given and overlays CLI flags.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if optConfigPath != "" {
		loaded, err := config.Load(optConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if optAPIKey != "" {
		cfg.APIKey = optAPIKey
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required: set --api-key, GEMINI_API_KEY, or api_key in the config file")
	}
	if optWorkers > 0 {
		cfg.Workers = optWorkers
	}
	if optNoFallback {
		cfg.DisableFallback = true
	}
	if optVerbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// buildEngine wires the router, keyword extractor, and engine from config.
func buildEngine(cfg *config.Config) (*optimizer.Engine, *router.Router, error) {
	opts := []router.Option{}
	if fb := cfg.FallbackLLMConfig(); fb != nil {
		opts = append(opts, router.WithFallbackConfig(fb))
	}
	if cfg.CallTimeoutSeconds > 0 {
		opts = append(opts, router.WithCallTimeout(time.Duration(cfg.CallTimeoutSeconds)*time.Second))
	}
	r, err := router.New(cfg.LLMConfig(), cfg.APIKey, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create model router: %w", err)
	}

	cache := keywords.NewCache(time.Duration(cfg.CacheTTLMinutes)*time.Minute, cfg.CacheCapacity)
	extractor := keywords.NewExtractor(r, cache)
	engine := optimizer.NewEngine(r, extractor, cfg.Workers)
	return engine, r, nil
}

// readResume loads, schema-validates, and decodes a resume file.
func readResume(path string) (*types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	if err := schemas.ValidateResumeJSON(data); err != nil {
		return nil, err
	}
	var resume types.ResumeDocument
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	return &resume, nil
}

// applyMatchScore merges the missing skills from a match-score file into the
// optimized resume under the conservative merge policy.
func applyMatchScore(cfg *config.Config, resume *types.ResumeDocument, printer *observability.Printer) error {
	data, err := os.ReadFile(optScore)
	if err != nil {
		return fmt.Errorf("failed to read score file: %w", err)
	}

	var score types.MatchScore
	if err := parsing.Decode(string(data), &score); err != nil {
		return fmt.Errorf("failed to parse score file: %w", err)
	}
	score.Score = types.ClampScore(score.Score)

	policy := validation.DefaultMergePolicy()
	policy.SoftVocabulary = append(policy.SoftVocabulary, cfg.SoftSkills...)
	resume.Skills = validation.MergeSkills(resume.Skills, score.MissingSkills, policy)

	if cfg.Verbose {
		printer.PrintMatchScore(score)
	}
	return nil
}

// writeResume writes the document as indented JSON to a file or stdout.
func writeResume(resume *types.ResumeDocument, out string) error {
	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode optimized resume: %w", err)
	}
	data = append(data, '\n')

	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
