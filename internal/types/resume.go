// Package types provides type definitions for structured data exchanged by the
// resume-optimizer engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// ResumeDocument is the structured resume the engine optimizes. It is handed
// in by the caller, mutated only during reassembly, and returned with the same
// shape and entry identities it arrived with.
type ResumeDocument struct {
	Name               string       `json:"name"`
	MainJobTitle       string       `json:"main_job_title,omitempty"`
	Email              string       `json:"email,omitempty"`
	Phone              string       `json:"phone,omitempty"`
	Location           string       `json:"location,omitempty"`
	LinkedIn           string       `json:"linkedin,omitempty"`
	GitHub             string       `json:"github,omitempty"`
	ProfileDescription string       `json:"profile_description,omitempty"`
	Experiences        []Experience `json:"experiences"`
	Projects           []Project    `json:"projects"`
	Education          []Education  `json:"education,omitempty"`
	Skills             SkillSet     `json:"skills"`
	Languages          []string     `json:"languages,omitempty"`
}

// Experience is one employment entry. JobTitle and Company identify the entry
// and are never rewritten; Achievements is the unit the engine optimizes.
type Experience struct {
	JobTitle     string   `json:"job_title"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Achievements []string `json:"achievements"`
}

// Project is one project entry; Name is its identity, Goals the rewritten unit.
type Project struct {
	Name  string   `json:"name"`
	Goals []string `json:"goals"`
}

// Education is carried through optimization untouched.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// SkillSet splits skills the way ATS parsers expect them.
type SkillSet struct {
	HardSkills []string `json:"hard_skills"`
	SoftSkills []string `json:"soft_skills"`
}

// Clone returns a deep copy. Reassembly overlays results onto a clone so a
// failed section can keep the caller's original slices untouched.
func (r *ResumeDocument) Clone() *ResumeDocument {
	if r == nil {
		return nil
	}
	out := *r
	out.Experiences = make([]Experience, len(r.Experiences))
	for i, exp := range r.Experiences {
		out.Experiences[i] = exp
		out.Experiences[i].Achievements = append([]string(nil), exp.Achievements...)
	}
	out.Projects = make([]Project, len(r.Projects))
	for i, proj := range r.Projects {
		out.Projects[i] = proj
		out.Projects[i].Goals = append([]string(nil), proj.Goals...)
	}
	out.Education = append([]Education(nil), r.Education...)
	out.Skills.HardSkills = append([]string(nil), r.Skills.HardSkills...)
	out.Skills.SoftSkills = append([]string(nil), r.Skills.SoftSkills...)
	out.Languages = append([]string(nil), r.Languages...)
	return &out
}

// PlainText flattens the document into the line-oriented text the
// anti-hallucination validator compares. Field order is stable so two renders
// of the same document are byte-identical.
func (r *ResumeDocument) PlainText() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder

	writeField := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", label, value))
		}
	}

	writeField("Name", r.Name)
	writeField("Title", r.MainJobTitle)
	writeField("Email", r.Email)
	writeField("Phone", r.Phone)
	writeField("Location", r.Location)
	writeField("LinkedIn", r.LinkedIn)
	writeField("GitHub", r.GitHub)
	writeField("Summary", r.ProfileDescription)

	for _, exp := range r.Experiences {
		sb.WriteString(fmt.Sprintf("Experience: %s at %s\n", exp.JobTitle, exp.Company))
		for _, a := range exp.Achievements {
			sb.WriteString(a)
			sb.WriteString("\n")
		}
	}
	for _, proj := range r.Projects {
		sb.WriteString(fmt.Sprintf("Project: %s\n", proj.Name))
		for _, g := range proj.Goals {
			sb.WriteString(g)
			sb.WriteString("\n")
		}
	}
	for _, edu := range r.Education {
		sb.WriteString(fmt.Sprintf("Education: %s at %s\n", edu.Degree, edu.Institution))
		if edu.Description != "" {
			sb.WriteString(edu.Description)
			sb.WriteString("\n")
		}
	}
	if len(r.Skills.HardSkills) > 0 {
		sb.WriteString("Hard Skills: " + strings.Join(r.Skills.HardSkills, ", ") + "\n")
	}
	if len(r.Skills.SoftSkills) > 0 {
		sb.WriteString("Soft Skills: " + strings.Join(r.Skills.SoftSkills, ", ") + "\n")
	}
	if len(r.Languages) > 0 {
		sb.WriteString("Languages: " + strings.Join(r.Languages, ", ") + "\n")
	}

	return sb.String()
}
