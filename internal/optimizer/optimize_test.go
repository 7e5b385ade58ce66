package optimizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/router"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// scriptedRouter answers each request by kind, optionally failing requests
// whose prompt context matches failOn.
type scriptedRouter struct {
	mu      sync.Mutex
	calls   []router.Request
	failOn  string
	failErr error
}

func (s *scriptedRouter) Call(_ context.Context, req router.Request) (router.Result, llm.Outcome) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	if s.failErr != nil && s.failOn != "" && strings.Contains(req.RoleContext, s.failOn) {
		out := llm.Failure(s.failErr)
		return router.Result{Tier: llm.TierBalanced}, out
	}

	switch req.Kind {
	case router.KindWriteSummary:
		return router.Result{Raw: "Rewritten summary.", Tier: llm.TierBalanced}, llm.Success("Rewritten summary.")
	case router.KindOptimizeSkills:
		raw := `{"hard_skills": ["Go", "Terraform"], "soft_skills": ["Communication"]}`
		return router.Result{Raw: raw, Tier: llm.TierBalanced}, llm.Success(raw)
	default:
		rewritten := make([]string, len(req.Bullets))
		for i := range req.Bullets {
			rewritten[i] = fmt.Sprintf("rewritten: %s", req.Bullets[i])
		}
		data := toJSONArray(rewritten)
		return router.Result{Raw: data, Tier: llm.TierBalanced}, llm.Success(data)
	}
}

func toJSONArray(v []string) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, s := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q", s))
	}
	sb.WriteString("]")
	return sb.String()
}

// staticKeywords avoids the extraction path in engine tests.
type staticKeywords struct{}

func (staticKeywords) Extract(_ context.Context, _ string) types.KeywordSet {
	return types.KeywordSet{Keywords: []string{"Go", "Kubernetes"}, SourceHash: "h"}
}

// emptyKeywords simulates a failed extraction: best-effort empty set.
type emptyKeywords struct{}

func (emptyKeywords) Extract(_ context.Context, _ string) types.KeywordSet {
	return types.KeywordSet{}
}

func testResume() *types.ResumeDocument {
	return &types.ResumeDocument{
		Name:               "Alex Doe",
		ProfileDescription: "Original summary.",
		Experiences: []types.Experience{
			{JobTitle: "Engineer", Company: "Acme", Achievements: []string{"built a", "built b"}},
			{JobTitle: "Developer", Company: "Globex", Achievements: []string{"shipped c"}},
			{JobTitle: "Intern", Company: "Initech", Achievements: []string{"fixed d", "fixed e"}},
		},
		Projects: []types.Project{
			{Name: "sideproj", Goals: []string{"goal one"}},
		},
		Skills: types.SkillSet{HardSkills: []string{"Go"}, SoftSkills: []string{"Communication"}},
	}
}

func TestOptimizeRewritesAllSections(t *testing.T) {
	engine := NewEngine(&scriptedRouter{}, staticKeywords{}, 2)
	original := testResume()

	result, err := engine.Optimize(context.Background(), original, "job description")
	require.NoError(t, err)
	require.NotNil(t, result.Resume)

	assert.Equal(t, "Rewritten summary.", result.Resume.ProfileDescription)
	require.Len(t, result.Resume.Experiences, 3)
	assert.Equal(t, []string{"rewritten: built a", "rewritten: built b"}, result.Resume.Experiences[0].Achievements)
	assert.Equal(t, []string{"rewritten: goal one"}, result.Resume.Projects[0].Goals)
	assert.Contains(t, result.Resume.Skills.HardSkills, "Terraform")
	assert.NotEmpty(t, result.RunID)

	// Input document untouched.
	assert.Equal(t, "Original summary.", original.ProfileDescription)
	assert.Equal(t, []string{"built a", "built b"}, original.Experiences[0].Achievements)
}

func TestOptimizeProceedsWithoutKeywords(t *testing.T) {
	r := &scriptedRouter{}
	engine := NewEngine(r, emptyKeywords{}, 2)

	result, err := engine.Optimize(context.Background(), testResume(), "job description")
	require.NoError(t, err, "a failed extraction must not abort the run")
	require.NotNil(t, result.Resume)

	assert.Empty(t, result.Keywords.Keywords)
	assert.Equal(t, "Rewritten summary.", result.Resume.ProfileDescription)
	assert.Equal(t, []string{"rewritten: built a", "rewritten: built b"}, result.Resume.Experiences[0].Achievements)

	// Section prompts simply carry no keywords.
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.calls {
		assert.Empty(t, req.Keywords)
	}
}

func TestOptimizeDegradesFailedSection(t *testing.T) {
	r := &scriptedRouter{failOn: "Globex", failErr: errors.New("429 too many requests")}
	engine := NewEngine(r, staticKeywords{}, 2)
	original := testResume()

	result, err := engine.Optimize(context.Background(), original, "job description")
	require.NoError(t, err)

	// Same entry count and order; only the failed entry keeps original text.
	require.Len(t, result.Resume.Experiences, 3)
	assert.Equal(t, "Acme", result.Resume.Experiences[0].Company)
	assert.Equal(t, "Globex", result.Resume.Experiences[1].Company)
	assert.Equal(t, "Initech", result.Resume.Experiences[2].Company)

	assert.Equal(t, []string{"shipped c"}, result.Resume.Experiences[1].Achievements)
	assert.Equal(t, []string{"rewritten: built a", "rewritten: built b"}, result.Resume.Experiences[0].Achievements)

	var degraded []string
	for _, s := range result.Sections {
		if s.Degraded {
			degraded = append(degraded, s.Section)
		}
	}
	assert.Equal(t, []string{"experience[1]"}, degraded)
}

func TestOptimizeAbortsOnAuthFailure(t *testing.T) {
	r := &scriptedRouter{failOn: "Globex", failErr: errors.New("401 unauthorized")}
	engine := NewEngine(r, staticKeywords{}, 2)

	_, err := engine.Optimize(context.Background(), testResume(), "job description")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestOptimizeNilResume(t *testing.T) {
	engine := NewEngine(&scriptedRouter{}, staticKeywords{}, 2)
	_, err := engine.Optimize(context.Background(), nil, "job description")
	assert.Error(t, err)
}

func TestDecompose(t *testing.T) {
	tasks := Decompose(testResume())

	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Name()
	}
	assert.Equal(t, []string{"summary", "experience[0]", "experience[1]", "experience[2]", "project[0]", "skills"}, names)
}

func TestDecomposeSkipsEmptySections(t *testing.T) {
	resume := &types.ResumeDocument{
		Name: "Alex Doe",
		Experiences: []types.Experience{
			{JobTitle: "Engineer", Company: "Acme"}, // no achievements
		},
	}
	tasks := Decompose(resume)

	for _, task := range tasks {
		assert.NotEqual(t, SectionSkills, task.Section)
		assert.NotEqual(t, SectionExperience, task.Section)
	}
}

func TestFitBullets(t *testing.T) {
	original := []string{"a", "b", "c"}

	t.Run("matching count passes through", func(t *testing.T) {
		assert.Equal(t, []string{"x", "y", "z"}, fitBullets([]string{"x", "y", "z"}, original))
	})

	t.Run("extras truncated", func(t *testing.T) {
		assert.Equal(t, []string{"x", "y", "z"}, fitBullets([]string{"x", "y", "z", "w"}, original))
	})

	t.Run("shortfall padded with originals", func(t *testing.T) {
		assert.Equal(t, []string{"x", "b", "c"}, fitBullets([]string{"x"}, original))
	})
}

func TestMergeSkillOutputPreservesOriginals(t *testing.T) {
	original := types.SkillSet{
		HardSkills: []string{"Go", "PostgreSQL"},
		SoftSkills: []string{"Mentoring"},
	}
	optimized := types.SkillSet{
		HardSkills: []string{"go", "Kubernetes"}, // "go" is a case-variant duplicate
		SoftSkills: []string{"Mentoring", "Communication"},
	}

	merged := mergeSkillOutput(original, optimized)

	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes"}, merged.HardSkills)
	assert.Equal(t, []string{"Mentoring", "Communication"}, merged.SoftSkills)
}

func TestParseResume(t *testing.T) {
	r := &parseRouter{raw: `{"name": "Alex Doe", "experiences": [{"job_title": "Engineer", "company": "Acme", "achievements": ["did x"]}], "skills": {"hard_skills": ["Go"], "soft_skills": []}}`}
	engine := NewEngine(r, staticKeywords{}, 1)

	doc, err := engine.ParseResume(context.Background(), "Alex Doe\nEngineer at Acme\n- did x")
	require.NoError(t, err)
	assert.Equal(t, "Alex Doe", doc.Name)
	require.Len(t, doc.Experiences, 1)
	assert.Equal(t, "Acme", doc.Experiences[0].Company)
}

func TestParseResumeEmptyOutput(t *testing.T) {
	r := &parseRouter{raw: `{}`}
	engine := NewEngine(r, staticKeywords{}, 1)

	_, err := engine.ParseResume(context.Background(), "some text")
	assert.Error(t, err)
}

// parseRouter returns one fixed raw payload for any request.
type parseRouter struct {
	raw string
}

func (p *parseRouter) Call(_ context.Context, _ router.Request) (router.Result, llm.Outcome) {
	return router.Result{Raw: p.raw, Tier: llm.TierFast}, llm.Success(p.raw)
}
