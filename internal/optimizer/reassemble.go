package optimizer

import (
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Reassemble overlays section outputs onto a deep copy of the original
// resume. Degraded sections contribute nothing, so their slots keep the
// original text byte for byte. Entry count and order always match the input.
func Reassemble(original *types.ResumeDocument, tasks []SectionTask, outputs []sectionOutput) *types.ResumeDocument {
	out := original.Clone()

	for i, task := range tasks {
		o := outputs[i]
		if o.record.Degraded {
			continue
		}
		switch task.Section {
		case SectionSummary:
			if o.summary != "" {
				out.ProfileDescription = o.summary
			}
		case SectionExperience:
			if task.Index < len(out.Experiences) && o.bullets != nil {
				out.Experiences[task.Index].Achievements = fitBullets(o.bullets, original.Experiences[task.Index].Achievements)
			}
		case SectionProject:
			if task.Index < len(out.Projects) && o.bullets != nil {
				out.Projects[task.Index].Goals = fitBullets(o.bullets, original.Projects[task.Index].Goals)
			}
		case SectionSkills:
			if o.skills != nil {
				out.Skills = mergeSkillOutput(original.Skills, *o.skills)
			}
		}
	}

	return out
}

// fitBullets forces rewritten bullets to the original cardinality. Models
// are told to return the same count but sometimes merge or split; extras are
// truncated and shortfalls are padded with the original bullets they replace.
func fitBullets(rewritten, original []string) []string {
	if len(rewritten) == len(original) {
		return rewritten
	}
	if len(rewritten) > len(original) {
		return rewritten[:len(original)]
	}
	fitted := append([]string(nil), rewritten...)
	for i := len(rewritten); i < len(original); i++ {
		fitted = append(fitted, original[i])
	}
	return fitted
}

// mergeSkillOutput keeps every original skill with its exact wording and
// order, then appends model additions that are genuinely new. The model is
// prompted to preserve the structure, but the invariant is enforced here
// rather than trusted.
func mergeSkillOutput(original, optimized types.SkillSet) types.SkillSet {
	return types.SkillSet{
		HardSkills: appendNew(original.HardSkills, optimized.HardSkills),
		SoftSkills: appendNew(original.SoftSkills, optimized.SoftSkills),
	}
}

// appendNew returns base plus the items from extra not already present,
// compared case-insensitively.
func appendNew(base, extra []string) []string {
	out := append([]string(nil), base...)
	seen := make(map[string]struct{}, len(base))
	for _, s := range base {
		seen[normalizeSkill(s)] = struct{}{}
	}
	for _, s := range extra {
		key := normalizeSkill(s)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// normalizeSkill is the comparison key for duplicate detection: lowercased
// with whitespace collapsed.
func normalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
