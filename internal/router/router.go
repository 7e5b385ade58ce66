// Package router dispatches optimization tasks to model tiers. Each task kind
// carries a fixed tier assignment and prompt template; the router owns one
// lazily-created client per tier and runs every call through the provider
// fallback policy.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/prompts"
)

const promptFile = "tasks.json"

// DefaultCallTimeout bounds one client attempt. Each attempt (primary and
// fallback) gets its own deadline so a stalled provider call cannot hang a
// worker, and with it the whole run, indefinitely.
const DefaultCallTimeout = 90 * time.Second

// Kind identifies one optimization task. The set is closed: routing, prompt
// selection, and output handling all switch on it.
type Kind int

const (
	// KindExtractKeywords pulls ATS keywords from a job description.
	KindExtractKeywords Kind = iota
	// KindRewriteBullets rewrites one section's bullet points.
	KindRewriteBullets
	// KindWriteSummary writes the professional summary.
	KindWriteSummary
	// KindOptimizeSkills appends missing job-description skills.
	KindOptimizeSkills
	// KindParseResume extracts a structured resume from raw text.
	KindParseResume
)

// String returns the prompt key for the kind.
func (k Kind) String() string {
	switch k {
	case KindExtractKeywords:
		return "extract-keywords"
	case KindRewriteBullets:
		return "rewrite-bullets"
	case KindWriteSummary:
		return "write-summary"
	case KindOptimizeSkills:
		return "optimize-skills"
	case KindParseResume:
		return "parse-resume"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// tierFor maps each kind to its model tier. Extraction and parsing are
// mechanical and run on the fast tier; rewriting needs judgment and runs on
// the balanced tier.
func tierFor(kind Kind) llm.Tier {
	switch kind {
	case KindExtractKeywords, KindParseResume:
		return llm.TierFast
	default:
		return llm.TierBalanced
	}
}

// wantsJSON reports whether the kind's output is structured and should be
// requested with the JSON response MIME type.
func wantsJSON(kind Kind) bool {
	switch kind {
	case KindRewriteBullets, KindOptimizeSkills, KindParseResume:
		return true
	}
	return false
}

// Request captures everything one task call needs. Unused fields are ignored
// by kinds that do not reference them in their templates.
type Request struct {
	Kind           Kind
	JobDescription string
	Keywords       []string
	Bullets        []string
	RoleContext    string
	Experience     string
	Skills         string
	ResumeText     string
}

// Result is one completed call plus its execution metadata.
type Result struct {
	Raw          string
	Tier         llm.Tier
	Model        string
	Elapsed      time.Duration
	UsedFallback bool
}

// ClientFactory builds a client for one tier configuration. Tests swap it for
// a stub; production uses llm.NewGeminiClient.
type ClientFactory func(ctx context.Context, tc llm.TierConfig, apiKey string) (llm.Client, error)

// Router routes task requests to tier-bound clients. Clients are created on
// first use per tier and shared by all subsequent calls; Router is safe for
// concurrent use.
type Router struct {
	primary     *llm.Config
	fallback    *llm.Config
	apiKey      string
	factory     ClientFactory
	callTimeout time.Duration

	mu              sync.Mutex
	primaryClients  map[llm.Tier]llm.Client
	fallbackClients map[llm.Tier]llm.Client
}

// Option configures a Router.
type Option func(*Router)

// WithFallbackConfig enables the one-shot fallback backend. A nil config
// disables fallback entirely.
func WithFallbackConfig(cfg *llm.Config) Option {
	return func(r *Router) {
		r.fallback = cfg
	}
}

// WithClientFactory overrides how tier clients are constructed.
func WithClientFactory(factory ClientFactory) Option {
	return func(r *Router) {
		r.factory = factory
	}
}

// WithCallTimeout overrides the per-attempt deadline. Non-positive values
// keep the default.
func WithCallTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.callTimeout = d
		}
	}
}

// New creates a Router over the given tier table.
func New(cfg *llm.Config, apiKey string, opts ...Option) (*Router, error) {
	if cfg == nil || len(cfg.Tiers) == 0 {
		return nil, &llm.ConfigError{Message: "tier configuration is required"}
	}
	r := &Router{
		primary: cfg,
		apiKey:  apiKey,
		factory: func(ctx context.Context, tc llm.TierConfig, apiKey string) (llm.Client, error) {
			return llm.NewGeminiClient(ctx, tc, apiKey)
		},
		callTimeout:     DefaultCallTimeout,
		primaryClients:  make(map[llm.Tier]llm.Client),
		fallbackClients: make(map[llm.Tier]llm.Client),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Call resolves the request's tier, renders its prompt, and executes it with
// the fallback policy. The returned Result carries raw model output; callers
// parse it with the resilient parser.
func (r *Router) Call(ctx context.Context, req Request) (Result, llm.Outcome) {
	tier := tierFor(req.Kind)
	result := Result{Tier: tier}

	prompt, err := r.buildPrompt(req)
	if err != nil {
		return result, llm.Outcome{Status: llm.StatusFatalFailure, Category: llm.CategoryUnknown, Err: err}
	}

	primary, err := r.client(ctx, tier, false)
	if err != nil {
		return result, llm.Outcome{Status: llm.StatusFatalFailure, Category: llm.CategoryUnknown, Err: err}
	}
	var fb llm.Client
	if r.fallback != nil {
		fb, err = r.client(ctx, tier, true)
		if err != nil {
			// A broken fallback backend must not block the primary path.
			fb = nil
		}
	}

	call := func(ctx context.Context, client llm.Client) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
		defer cancel()
		if wantsJSON(req.Kind) {
			return client.GenerateJSON(ctx, prompt)
		}
		return client.Generate(ctx, prompt)
	}

	start := time.Now()
	outcome := llm.CallWithFallback(ctx, primary, fb, call)
	result.Elapsed = time.Since(start)
	result.UsedFallback = outcome.UsedFallback
	result.Model = primary.Model()
	if outcome.UsedFallback && fb != nil {
		result.Model = fb.Model()
	}
	if outcome.Status == llm.StatusSuccess {
		result.Raw = outcome.Payload
	}
	return result, outcome
}

// Close releases every client the router created.
func (r *Router) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for _, m := range []map[llm.Tier]llm.Client{r.primaryClients, r.fallbackClients} {
		for tier, client := range m {
			if err := client.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
			delete(m, tier)
		}
	}
	return firstErr
}

// client returns the shared client for a tier, creating it on first use.
func (r *Router) client(ctx context.Context, tier llm.Tier, useFallback bool) (llm.Client, error) {
	cfg, pool := r.primary, r.primaryClients
	if useFallback {
		cfg, pool = r.fallback, r.fallbackClients
	}
	tc, ok := cfg.TierFor(tier)
	if !ok {
		return nil, &llm.ConfigError{Message: fmt.Sprintf("no model configured for tier %s", tier)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if client, exists := pool[tc.Tier]; exists {
		return client, nil
	}
	client, err := r.factory(ctx, tc, r.apiKey)
	if err != nil {
		return nil, err
	}
	pool[tc.Tier] = client
	return client, nil
}

// buildPrompt renders the kind's template with the request's fields.
func (r *Router) buildPrompt(req Request) (string, error) {
	template, err := prompts.Get(promptFile, req.Kind.String())
	if err != nil {
		return "", fmt.Errorf("failed to load prompt for %s: %w", req.Kind, err)
	}

	bullets, err := json.Marshal(req.Bullets)
	if err != nil {
		return "", fmt.Errorf("failed to encode bullets: %w", err)
	}

	return prompts.Format(template, map[string]string{
		"JobDescription": req.JobDescription,
		"Keywords":       strings.Join(req.Keywords, ", "),
		"Bullets":        string(bullets),
		"RoleContext":    req.RoleContext,
		"Experience":     req.Experience,
		"Skills":         req.Skills,
		"ResumeText":     req.ResumeText,
	}), nil
}
