// Package validation compares an optimized resume against its original to
// catch facts the models dropped or invented. Findings are advisory: hard
// errors mark verifiable identity facts lost in optimization, warnings mark
// softer drift worth a human look.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

var (
	emailRe     = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phoneRe     = regexp.MustCompile(`\+?\d[\d\s()-]{7,}\d`)
	linkedinRe  = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubRe    = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
	birthdateRe = regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{4}\b`)
)

// degreeMarkers are education facts that must survive optimization verbatim
// enough to still match.
var degreeMarkers = []string{"Master", "Bachelor", "PhD", "Ph.D", "MBA", "Doctorate"}

// certMarkers flag certification claims; losing one is suspicious but may be
// an intentional trim, so it warns rather than errors.
var certMarkers = []string{"AWS Certified", "Azure", "PMP", "CISSP", "Scrum Master", "CKA", "CCNA"}

// inventedCertMarkers are certification phrases models splice in from job
// descriptions. Any of these appearing only in the optimized text is a
// fabricated credential.
var inventedCertMarkers = []string{"forklift certified", "CDL license", "crane operator", "commercial driver's license"}

// Validate compares the plain-text renders of the original and optimized
// documents. It never blocks: callers decide what to do with the report.
func Validate(original, optimized *types.ResumeDocument) types.ValidationReport {
	return ValidateText(original.PlainText(), optimized.PlainText())
}

// ValidateText is the text-level comparison behind Validate, exposed for
// callers holding flat resume text.
func ValidateText(original, optimized string) types.ValidationReport {
	report := types.ValidationReport{Valid: true}
	lowerOpt := strings.ToLower(optimized)

	checkContact(&report, original, optimized)

	// Degree matching is case-sensitive: the markers are proper nouns, and a
	// folded match would let prose like "mastered new tools" hide the loss of
	// a Master's degree.
	for _, marker := range degreeMarkers {
		if strings.Contains(original, marker) && !strings.Contains(optimized, marker) {
			report.AddError(fmt.Sprintf("education fact lost: %q appears in the original but not the optimized resume", marker))
		}
	}

	for _, marker := range certMarkers {
		if containsFold(original, marker) && !strings.Contains(lowerOpt, strings.ToLower(marker)) {
			report.AddWarning(fmt.Sprintf("certification %q was removed during optimization", marker))
		}
	}

	for _, marker := range inventedCertMarkers {
		if containsFold(optimized, marker) && !containsFold(original, marker) {
			report.AddWarning(fmt.Sprintf("certification %q appears in the optimized resume but not the original", marker))
		}
	}

	if bd := birthdateRe.FindString(original); bd != "" && !strings.Contains(optimized, bd) {
		report.AddWarning(fmt.Sprintf("date of birth %s was removed during optimization", bd))
	}

	checkLanguages(&report, original, optimized)

	return report
}

// checkContact verifies that contact facts present in the original survive.
// Contact details are never a legitimate optimization target.
func checkContact(report *types.ValidationReport, original, optimized string) {
	if email := emailRe.FindString(original); email != "" && !containsFold(optimized, email) {
		report.AddError(fmt.Sprintf("email %s missing from optimized resume", email))
	}

	if phone := phoneRe.FindString(original); phone != "" {
		if !strings.Contains(normalizePhone(optimized), normalizePhone(phone)) {
			report.AddError(fmt.Sprintf("phone number %s missing from optimized resume", strings.TrimSpace(phone)))
		}
	}

	if link := linkedinRe.FindString(original); link != "" && linkedinRe.FindString(optimized) == "" {
		report.AddError("LinkedIn profile link missing from optimized resume")
	}
	if link := githubRe.FindString(original); link != "" && githubRe.FindString(optimized) == "" {
		report.AddError("GitHub profile link missing from optimized resume")
	}
}

// knownLanguages is the watch-list for spoken-language claims.
var knownLanguages = []string{"English", "German", "French", "Spanish", "Italian", "Portuguese", "Russian", "Ukrainian", "Polish", "Dutch", "Mandarin", "Japanese", "Arabic", "Hindi"}

// checkLanguages warns about spoken languages that appear or disappear.
// Models occasionally promote "English" into a resume that never claimed it.
func checkLanguages(report *types.ValidationReport, original, optimized string) {
	for _, lang := range knownLanguages {
		inOrig := containsFold(original, lang)
		inOpt := containsFold(optimized, lang)
		switch {
		case inOrig && !inOpt:
			report.AddWarning(fmt.Sprintf("language %q was removed during optimization", lang))
		case !inOrig && inOpt:
			report.AddWarning(fmt.Sprintf("language %q was added during optimization but is not in the original", lang))
		}
	}
}

// normalizePhone strips everything but digits and a leading plus, so
// formatting changes do not count as a lost number.
func normalizePhone(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '+' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
