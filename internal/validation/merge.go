package validation

import (
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// MergePolicy decides which bucket a skill lands in when merging missing
// skills from a match score. The default is deliberately conservative: only
// skills on an explicit soft vocabulary go to soft skills, everything else is
// assumed hard. Misfiling a tool as a soft skill reads far worse to a
// recruiter than the reverse.
type MergePolicy struct {
	// SoftVocabulary holds exact (normalized) soft-skill names.
	SoftVocabulary []string
	// SoftPrefixes classify by prefix, e.g. "communication" covers
	// "communication skills".
	SoftPrefixes []string
	// SoftContains classify by substring.
	SoftContains []string
}

// DefaultMergePolicy returns the built-in soft-skill vocabulary.
func DefaultMergePolicy() MergePolicy {
	return MergePolicy{
		SoftVocabulary: []string{
			"communication",
			"teamwork",
			"collaboration",
			"cross-functional collaboration",
			"adaptability",
			"problem solving",
			"problem-solving",
			"time management",
			"leadership",
			"mentoring",
			"attention to detail",
			"detail oriented",
			"critical thinking",
			"stakeholder management",
		},
		SoftPrefixes: []string{"communication", "teamwork", "interpersonal"},
		SoftContains: []string{"attention to detail"},
	}
}

// IsSoft reports whether a skill classifies as soft under the policy.
func (p MergePolicy) IsSoft(skill string) bool {
	key := normalizeSkill(skill)
	for _, v := range p.SoftVocabulary {
		if key == normalizeSkill(v) {
			return true
		}
	}
	for _, prefix := range p.SoftPrefixes {
		if strings.HasPrefix(key, normalizeSkill(prefix)) {
			return true
		}
	}
	for _, sub := range p.SoftContains {
		if strings.Contains(key, normalizeSkill(sub)) {
			return true
		}
	}
	return false
}

// MergeSkills appends the missing skills from a match score onto a skill set.
// Existing skills keep their exact wording and order; additions keep the
// score's wording and land after them. Duplicates are detected
// case-insensitively with whitespace collapsed, across both buckets, so a
// skill already listed as hard is never re-added as soft.
func MergeSkills(current types.SkillSet, missing []string, policy MergePolicy) types.SkillSet {
	out := types.SkillSet{
		HardSkills: append([]string(nil), current.HardSkills...),
		SoftSkills: append([]string(nil), current.SoftSkills...),
	}

	seen := make(map[string]struct{}, len(out.HardSkills)+len(out.SoftSkills))
	for _, s := range out.HardSkills {
		seen[normalizeSkill(s)] = struct{}{}
	}
	for _, s := range out.SoftSkills {
		seen[normalizeSkill(s)] = struct{}{}
	}

	for _, skill := range missing {
		key := normalizeSkill(skill)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if policy.IsSoft(skill) {
			out.SoftSkills = append(out.SoftSkills, skill)
		} else {
			out.HardSkills = append(out.HardSkills, skill)
		}
	}

	return out
}

// normalizeSkill lowercases and collapses whitespace for comparisons.
func normalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
