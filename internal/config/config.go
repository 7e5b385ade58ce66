// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-optimizer/internal/llm"
)

// TierModel configures one model tier in the config file.
type TierModel struct {
	ModelID     string  `json:"model_id" validate:"required"`
	Temperature float32 `json:"temperature" validate:"gte=0,lte=2"`
}

// Config is the CLI configuration, loadable from a JSON file. All fields are
// optional; zero values take defaults.
type Config struct {
	// Behavior
	APIKey             string `json:"api_key,omitempty"`
	Workers            int    `json:"workers,omitempty" validate:"gte=0,lte=64"`
	CallTimeoutSeconds int    `json:"call_timeout_seconds,omitempty" validate:"gte=0,lte=600"`
	DisableFallback    bool   `json:"disable_fallback,omitempty"`
	Verbose            bool   `json:"verbose,omitempty"`

	// Keyword cache
	CacheTTLMinutes int `json:"cache_ttl_minutes,omitempty" validate:"gte=0"`
	CacheCapacity   int `json:"cache_capacity,omitempty" validate:"gte=0,lte=4096"`

	// Model tiers; unset tiers take defaults.
	Tiers         map[string]TierModel `json:"tiers,omitempty" validate:"dive,keys,oneof=fast balanced deep,endkeys"`
	FallbackModel string               `json:"fallback_model,omitempty"`

	// Extra soft-skill vocabulary for the skill merge.
	SoftSkills []string `json:"soft_skills,omitempty"`
}

var validate = validator.New()

// Load reads configuration from a JSON file and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints. Required fields are checked later, after
// flag and environment merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: field %q failed %q validation", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// LLMConfig builds the primary tier table, overlaying configured tiers onto
// the defaults.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	for name, tm := range c.Tiers {
		tier := llm.Tier(name)
		cfg.Tiers[tier] = llm.TierConfig{Tier: tier, ModelID: tm.ModelID, Temperature: tm.Temperature}
	}
	return cfg
}

// FallbackLLMConfig builds the fallback tier table, or nil when fallback is
// disabled.
func (c *Config) FallbackLLMConfig() *llm.Config {
	if c.DisableFallback {
		return nil
	}
	cfg := llm.DefaultFallbackConfig()
	if c.FallbackModel != "" {
		for tier, tc := range cfg.Tiers {
			tc.ModelID = c.FallbackModel
			cfg.Tiers[tier] = tc
		}
	}
	return cfg
}
