package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/types"
)

const validResume = `{
  "name": "Alex Doe",
  "experiences": [
    {"job_title": "Engineer", "company": "Acme", "achievements": ["did x"]}
  ],
  "skills": {"hard_skills": ["Go"], "soft_skills": []}
}`

func TestValidateResumeJSON(t *testing.T) {
	t.Run("valid document passes", func(t *testing.T) {
		assert.NoError(t, ValidateResumeJSON([]byte(validResume)))
	})

	t.Run("not json at all", func(t *testing.T) {
		err := ValidateResumeJSON([]byte("this is a resume, trust me"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("missing required fields reports paths", func(t *testing.T) {
		err := ValidateResumeJSON([]byte(`{"experiences": []}`))
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.NotEmpty(t, ve.Errors)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("experience without company reports field path", func(t *testing.T) {
		doc := `{
  "name": "Alex Doe",
  "experiences": [{"job_title": "Engineer", "achievements": []}],
  "skills": {"hard_skills": [], "soft_skills": []}
}`
		err := ValidateResumeJSON([]byte(doc))
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		found := false
		for _, fe := range ve.Errors {
			if fe.Field == "experiences.0" {
				found = true
			}
		}
		assert.True(t, found, "expected an error anchored at experiences.0, got %v", ve.Errors)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		doc := `{"name": "", "experiences": [], "skills": {"hard_skills": [], "soft_skills": []}}`
		assert.Error(t, ValidateResumeJSON([]byte(doc)))
	})
}

func TestValidateValue(t *testing.T) {
	t.Run("well-formed struct passes", func(t *testing.T) {
		doc := &types.ResumeDocument{
			Name: "Alex Doe",
			Experiences: []types.Experience{
				{JobTitle: "Engineer", Company: "Acme", Achievements: []string{"did x"}},
			},
			Skills: types.SkillSet{HardSkills: []string{"Go"}, SoftSkills: []string{}},
		}
		assert.NoError(t, ValidateValue(doc))
	})

	t.Run("empty struct fails", func(t *testing.T) {
		assert.Error(t, ValidateValue(&types.ResumeDocument{}))
	})
}
