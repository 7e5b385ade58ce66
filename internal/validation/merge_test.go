package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-optimizer/internal/types"
)

func TestMergeSkills(t *testing.T) {
	policy := DefaultMergePolicy()

	t.Run("classifies and appends missing skills", func(t *testing.T) {
		current := types.SkillSet{
			HardSkills: []string{"Docker", "Kubernetes"},
			SoftSkills: []string{"Teamwork"},
		}
		missing := []string{"Terraform", "Cross-functional collaboration", "kubernetes"}

		merged := MergeSkills(current, missing, policy)

		assert.Equal(t, []string{"Docker", "Kubernetes", "Terraform"}, merged.HardSkills)
		assert.Equal(t, []string{"Teamwork", "Cross-functional collaboration"}, merged.SoftSkills)
	})

	t.Run("dedupe is case and whitespace insensitive", func(t *testing.T) {
		current := types.SkillSet{HardSkills: []string{"CI/CD"}}
		merged := MergeSkills(current, []string{"ci/cd", "  CI/CD  ", "Go"}, policy)

		assert.Equal(t, []string{"CI/CD", "Go"}, merged.HardSkills)
	})

	t.Run("dedupe spans both buckets", func(t *testing.T) {
		current := types.SkillSet{HardSkills: []string{"Communication"}}
		merged := MergeSkills(current, []string{"communication"}, policy)

		assert.Equal(t, []string{"Communication"}, merged.HardSkills)
		assert.Empty(t, merged.SoftSkills)
	})

	t.Run("unknown skills default to hard", func(t *testing.T) {
		merged := MergeSkills(types.SkillSet{}, []string{"Esoteric Framework X"}, policy)
		assert.Equal(t, []string{"Esoteric Framework X"}, merged.HardSkills)
		assert.Empty(t, merged.SoftSkills)
	})

	t.Run("original wording and order preserved", func(t *testing.T) {
		current := types.SkillSet{HardSkills: []string{"gRPC", "PostgreSQL", "Go"}}
		merged := MergeSkills(current, []string{"Rust"}, policy)
		assert.Equal(t, []string{"gRPC", "PostgreSQL", "Go", "Rust"}, merged.HardSkills)
	})

	t.Run("blank entries skipped", func(t *testing.T) {
		merged := MergeSkills(types.SkillSet{}, []string{"", "  ", "Go"}, policy)
		assert.Equal(t, []string{"Go"}, merged.HardSkills)
	})
}

func TestMergeSkillsScoreExample(t *testing.T) {
	// Missing skills reported by a job-match score against a resume that
	// lists Docker and Communication.
	current := types.SkillSet{
		HardSkills: []string{"Docker"},
		SoftSkills: []string{"Communication"},
	}
	merged := MergeSkills(current, []string{"Kubernetes", "Terraform"}, DefaultMergePolicy())

	assert.Equal(t, []string{"Docker", "Kubernetes", "Terraform"}, merged.HardSkills)
	assert.Equal(t, []string{"Communication"}, merged.SoftSkills)
}

func TestMergePolicyIsSoft(t *testing.T) {
	policy := DefaultMergePolicy()

	tests := []struct {
		skill string
		soft  bool
	}{
		{"Communication", true},
		{"communication skills", true}, // prefix rule
		{"Teamwork", true},
		{"Strong attention to detail", true}, // contains rule
		{"Problem-solving", true},
		{"Kubernetes", false},
		{"Terraform", false},
		{"SQL", false},
	}

	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			assert.Equal(t, tt.soft, policy.IsSoft(tt.skill))
		})
	}
}

func TestMergePolicyExtensible(t *testing.T) {
	policy := DefaultMergePolicy()
	policy.SoftVocabulary = append(policy.SoftVocabulary, "Customer Empathy")

	merged := MergeSkills(types.SkillSet{}, []string{"customer empathy"}, policy)
	assert.Equal(t, []string{"customer empathy"}, merged.SoftSkills)
}
