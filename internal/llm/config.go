// Package llm provides the model client abstraction, tier configuration,
// structured call outcomes, and the one-shot provider fallback policy.
package llm

// Tier represents the quality/cost level of a model.
type Tier string

const (
	// TierFast is for simple tasks: keyword extraction, structure parsing.
	TierFast Tier = "fast"
	// TierBalanced is for moderate rewriting: bullets, summaries, skills.
	TierBalanced Tier = "balanced"
	// TierDeep is for heavyweight reasoning; optional and defaults to the
	// balanced model when unset.
	TierDeep Tier = "deep"
)

// TierConfig binds a tier to a backing model and sampling temperature.
// Instances are read-only after construction and safe to share.
type TierConfig struct {
	Tier        Tier    `json:"tier"`
	ModelID     string  `json:"model_id"`
	Temperature float32 `json:"temperature"`
}

// Config holds the per-tier model table for one backend.
type Config struct {
	Tiers map[Tier]TierConfig
}

// DefaultConfig returns the default Gemini tier table. Fast runs cold for
// deterministic extraction; rewriting tiers keep some temperature.
func DefaultConfig() *Config {
	return &Config{
		Tiers: map[Tier]TierConfig{
			TierFast:     {Tier: TierFast, ModelID: "gemini-2.5-flash-lite", Temperature: 0.0},
			TierBalanced: {Tier: TierBalanced, ModelID: "gemini-2.5-flash", Temperature: 0.6},
			TierDeep:     {Tier: TierDeep, ModelID: "gemini-2.5-pro", Temperature: 0.6},
		},
	}
}

// DefaultFallbackConfig returns the alternate-backend tier table used when a
// primary call fails transiently. It runs every tier on the lite model so the
// retry lands on different capacity than the call that just failed.
func DefaultFallbackConfig() *Config {
	return &Config{
		Tiers: map[Tier]TierConfig{
			TierFast:     {Tier: TierFast, ModelID: "gemini-2.0-flash-lite", Temperature: 0.0},
			TierBalanced: {Tier: TierBalanced, ModelID: "gemini-2.0-flash-lite", Temperature: 0.6},
			TierDeep:     {Tier: TierDeep, ModelID: "gemini-2.0-flash-lite", Temperature: 0.6},
		},
	}
}

// TierFor returns the configuration for a tier, falling back to balanced then
// fast when the requested tier is not configured.
func (c *Config) TierFor(tier Tier) (TierConfig, bool) {
	if tc, ok := c.Tiers[tier]; ok {
		return tc, true
	}
	if tc, ok := c.Tiers[TierBalanced]; ok {
		return tc, true
	}
	if tc, ok := c.Tiers[TierFast]; ok {
		return tc, true
	}
	return TierConfig{}, false
}
