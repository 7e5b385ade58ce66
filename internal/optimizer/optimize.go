package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/router"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// DefaultWorkers bounds concurrent section calls. Provider rate limits, not
// CPU, are the constraint.
const DefaultWorkers = 5

// TaskRouter is the slice of the router the engine needs.
type TaskRouter interface {
	Call(ctx context.Context, req router.Request) (router.Result, llm.Outcome)
}

// KeywordSource produces the keyword set for a job description. Extraction
// is best-effort: implementations return an empty set on failure rather than
// an error, and the run proceeds without keyword targeting.
type KeywordSource interface {
	Extract(ctx context.Context, jobDescription string) types.KeywordSet
}

// SectionResult is the execution record of one section task.
type SectionResult struct {
	Section      string
	Tier         llm.Tier
	Model        string
	Elapsed      time.Duration
	UsedFallback bool
	Degraded     bool
	Err          error
}

// Result is one completed optimization run.
type Result struct {
	RunID    string
	Resume   *types.ResumeDocument
	Keywords types.KeywordSet
	Sections []SectionResult
	Elapsed  time.Duration
}

// Engine runs optimization passes. Safe for concurrent use; each run gets its
// own working state.
type Engine struct {
	router   TaskRouter
	keywords KeywordSource
	workers  int
}

// NewEngine creates an engine. A non-positive workers value takes the default.
func NewEngine(r TaskRouter, kw KeywordSource, workers int) *Engine {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Engine{router: r, keywords: kw, workers: workers}
}

// Optimize rewrites a resume against a job description. The input document is
// never mutated; the returned document is a deep copy with successful section
// rewrites overlaid. Section failures degrade to the original text and are
// recorded in the result, except authentication failures, which abort the run:
// every remaining call would fail identically.
func (e *Engine) Optimize(ctx context.Context, resume *types.ResumeDocument, jobDescription string) (*Result, error) {
	if resume == nil {
		return nil, fmt.Errorf("resume is required")
	}
	start := time.Now()
	runID := uuid.NewString()

	kws := e.keywords.Extract(ctx, jobDescription)

	tasks := Decompose(resume)
	outputs := make([]sectionOutput, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, task := range tasks {
		g.Go(func() error {
			out, fatal := e.runSection(gctx, task, jobDescription, kws)
			outputs[i] = out
			return fatal
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	optimized := Reassemble(resume, tasks, outputs)

	sections := make([]SectionResult, len(tasks))
	for i := range tasks {
		sections[i] = outputs[i].record
	}

	return &Result{
		RunID:    runID,
		Resume:   optimized,
		Keywords: kws,
		Sections: sections,
		Elapsed:  time.Since(start),
	}, nil
}

// sectionOutput carries one task's parsed payload plus its execution record.
// Exactly one of summary, bullets, or skills is set on success; none on
// degradation.
type sectionOutput struct {
	record  SectionResult
	summary string
	bullets []string
	skills  *types.SkillSet
}

// runSection executes one task. The second return is non-nil only for
// authentication failures, which must abort the whole run.
func (e *Engine) runSection(ctx context.Context, task SectionTask, jobDescription string, kws types.KeywordSet) (sectionOutput, error) {
	req := router.Request{
		JobDescription: jobDescription,
		Keywords:       kws.Top(topKeywords),
		Bullets:        task.Bullets,
		RoleContext:    task.RoleContext,
		Experience:     task.Experience,
		Skills:         task.Skills,
	}
	switch task.Section {
	case SectionSummary:
		req.Kind = router.KindWriteSummary
	case SectionSkills:
		req.Kind = router.KindOptimizeSkills
	default:
		req.Kind = router.KindRewriteBullets
	}

	res, outcome := e.router.Call(ctx, req)
	out := sectionOutput{record: SectionResult{
		Section:      task.Name(),
		Tier:         res.Tier,
		Model:        res.Model,
		Elapsed:      res.Elapsed,
		UsedFallback: res.UsedFallback,
	}}

	if outcome.Status != llm.StatusSuccess {
		if outcome.Category == llm.CategoryAuthenticationError {
			return out, fmt.Errorf("section %s: %w", task.Name(), outcome.Err)
		}
		out.record.Degraded = true
		out.record.Err = outcome.Err
		return out, nil
	}

	if err := parseSection(task, res.Raw, &out); err != nil {
		out.record.Degraded = true
		out.record.Err = err
	}
	return out, nil
}

// parseSection decodes raw model output into the task's payload slot.
func parseSection(task SectionTask, raw string, out *sectionOutput) error {
	switch task.Section {
	case SectionSummary:
		text := router.CleanText(raw)
		if text == "" {
			return fmt.Errorf("summary rewrite returned empty text")
		}
		out.summary = text
		return nil
	case SectionSkills:
		var skills types.SkillSet
		if err := parsing.Decode(raw, &skills); err != nil {
			return fmt.Errorf("skills output: %w", err)
		}
		out.skills = &skills
		return nil
	default:
		var bullets []string
		if err := parsing.Decode(raw, &bullets); err != nil {
			return fmt.Errorf("bullet output: %w", err)
		}
		if len(bullets) == 0 {
			return fmt.Errorf("bullet rewrite returned empty list")
		}
		out.bullets = bullets
		return nil
	}
}

// ParseResume extracts a structured document from raw resume text via the
// fast tier.
func (e *Engine) ParseResume(ctx context.Context, rawText string) (*types.ResumeDocument, error) {
	if rawText == "" {
		return nil, fmt.Errorf("resume text is empty")
	}

	res, outcome := e.router.Call(ctx, router.Request{
		Kind:       router.KindParseResume,
		ResumeText: rawText,
	})
	if outcome.Status != llm.StatusSuccess {
		return nil, fmt.Errorf("resume parsing failed (%s): %w", outcome.Category, outcome.Err)
	}

	var doc types.ResumeDocument
	if err := parsing.Decode(res.Raw, &doc); err != nil {
		return nil, fmt.Errorf("resume parsing output: %w", err)
	}
	if doc.Name == "" && len(doc.Experiences) == 0 {
		return nil, fmt.Errorf("resume parsing produced an empty document")
	}
	return &doc, nil
}
