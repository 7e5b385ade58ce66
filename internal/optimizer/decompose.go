// Package optimizer decomposes a resume into independent section tasks, fans
// them out across tier-routed model calls, and reassembles the results with
// per-section degradation: a failed section keeps its original text.
package optimizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Section identifies one independently-optimized slice of a resume.
type Section string

const (
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionProject    Section = "project"
	SectionSkills     Section = "skills"
)

// topKeywords is how many keywords each section prompt receives. The full set
// dilutes the rewrite; the head of the ranked list carries the signal.
const topKeywords = 10

// SectionTask is one unit of parallel work. Index is meaningful only for
// experience and project tasks and addresses the entry being rewritten.
type SectionTask struct {
	Section     Section
	Index       int
	Bullets     []string
	RoleContext string
	Experience  string
	Skills      string
}

// Name returns a stable identifier for logs and section results.
func (t SectionTask) Name() string {
	switch t.Section {
	case SectionExperience, SectionProject:
		return fmt.Sprintf("%s[%d]", t.Section, t.Index)
	}
	return string(t.Section)
}

// Decompose splits a resume into section tasks. Every experience and project
// entry becomes its own task so a single bad model response can only lose one
// entry's rewrite. Sections with nothing to rewrite produce no task.
func Decompose(resume *types.ResumeDocument) []SectionTask {
	var tasks []SectionTask

	if resume.ProfileDescription != "" || len(resume.Experiences) > 0 {
		tasks = append(tasks, SectionTask{
			Section:    SectionSummary,
			Experience: experienceContext(resume),
		})
	}

	for i, exp := range resume.Experiences {
		if len(exp.Achievements) == 0 {
			continue
		}
		tasks = append(tasks, SectionTask{
			Section:     SectionExperience,
			Index:       i,
			Bullets:     exp.Achievements,
			RoleContext: fmt.Sprintf("%s at %s (%s - %s)", exp.JobTitle, exp.Company, exp.StartDate, exp.EndDate),
		})
	}

	for i, proj := range resume.Projects {
		if len(proj.Goals) == 0 {
			continue
		}
		tasks = append(tasks, SectionTask{
			Section:     SectionProject,
			Index:       i,
			Bullets:     proj.Goals,
			RoleContext: fmt.Sprintf("Personal project: %s", proj.Name),
		})
	}

	if len(resume.Skills.HardSkills) > 0 || len(resume.Skills.SoftSkills) > 0 {
		skillsJSON, err := json.Marshal(resume.Skills)
		if err == nil {
			tasks = append(tasks, SectionTask{
				Section: SectionSkills,
				Skills:  string(skillsJSON),
			})
		}
	}

	return tasks
}

// experienceContext flattens the work history into the compact form the
// summary prompt consumes.
func experienceContext(resume *types.ResumeDocument) string {
	var sb strings.Builder
	if resume.MainJobTitle != "" {
		sb.WriteString("Title: " + resume.MainJobTitle + "\n")
	}
	if resume.ProfileDescription != "" {
		sb.WriteString("Current summary: " + resume.ProfileDescription + "\n")
	}
	for _, exp := range resume.Experiences {
		sb.WriteString(fmt.Sprintf("- %s at %s: %s\n", exp.JobTitle, exp.Company, strings.Join(exp.Achievements, "; ")))
	}
	return sb.String()
}
