// Package parsing makes free-form model output decodable. Clean isolates the
// structured payload, Repair completes truncated output, and SafeParse
// composes the two behind a fallback value so no malformed response can
// surface as an error.
package parsing

import (
	"regexp"
	"strings"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	fenceMarkerRe = regexp.MustCompile("```(?:json)?")

	trailingCommaObjRe = regexp.MustCompile(`,\s*\}`)
	trailingCommaArrRe = regexp.MustCompile(`,\s*\]`)
	// A value token followed only by whitespace-and-newline and a quoted key is
	// a dropped comma between pair lines.
	missingCommaPairRe = regexp.MustCompile(`([0-9]|"|true|false|null)[ \t]*\n\s*"`)
	missingCommaObjRe  = regexp.MustCompile(`\}\s*\n?\s*"([^"]+)"\s*:`)

	lineCommentRe = regexp.MustCompile(`(?m)^\s*(//|#).*$`)
)

// Clean extracts the structured payload from raw model output: fenced block
// interior if present, then the first balanced object or array span, then a
// pass of safe syntactic repairs. Input with no structure comes back trimmed
// but otherwise untouched.
func Clean(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	if strings.Contains(text, "```") {
		if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
			text = m[1]
		} else {
			// Unpaired fence markers; strip them loose.
			text = fenceMarkerRe.ReplaceAllString(text, "")
			text = strings.ReplaceAll(text, "```", "")
		}
	}

	text = sliceToStructure(text)

	text = trailingCommaObjRe.ReplaceAllString(text, "}")
	text = trailingCommaArrRe.ReplaceAllString(text, "]")
	text = missingCommaPairRe.ReplaceAllString(text, `$1, "`)
	text = missingCommaObjRe.ReplaceAllString(text, `}, "$1":`)
	text = lineCommentRe.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

// sliceToStructure cuts preamble and trailing prose around the first JSON
// object or array. Whichever bracket kind opens first wins; the span runs to
// the last matching closer.
func sliceToStructure(text string) string {
	objStart := strings.Index(text, "{")
	arrStart := strings.Index(text, "[")

	start, closer := objStart, "}"
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		start, closer = arrStart, "]"
	}

	end := strings.LastIndex(text, closer)
	if start == -1 || end == -1 || end <= start {
		// No structure found; may be a raw string payload.
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[start : end+1])
}
