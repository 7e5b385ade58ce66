package types

// ValidationReport is the advisory outcome of comparing the original resume
// text against its optimized rendition. The engine never blocks on it; the
// caller decides whether to warn or reject.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// AddError records a hard failure (a verifiable fact lost in optimization)
// and flips the report invalid.
func (r *ValidationReport) AddError(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

// AddWarning records a soft, advisory finding.
func (r *ValidationReport) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// MatchScore is the score payload produced by the scoring collaborator and
// consumed by the conservative skill-merge step.
type MatchScore struct {
	Score          int      `json:"score"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Recommendation string   `json:"recommendation,omitempty"`
	Rationale      string   `json:"rationale,omitempty"`
}

// ClampScore bounds a raw score into the 0-100 range scorers are expected to
// produce but occasionally overshoot.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
