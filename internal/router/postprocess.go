package router

import (
	"regexp"
	"strings"
)

// labelPrefixRe matches the chatty lead-ins models prepend to free-text
// output despite instructions not to.
var labelPrefixRe = regexp.MustCompile(`(?i)^(professional summary|summary|here is the summary|here's the summary|output)\s*:\s*`)

// trailingNoteRe matches explanation blocks models append after the answer,
// separated by a blank line and starting with a meta phrase.
var trailingNoteRe = regexp.MustCompile(`(?is)\n\s*\n\s*(note:|explanation:|i have|this summary).*$`)

// CleanText normalizes free-text model output: code fences and label prefixes
// are stripped, trailing explanation blocks are cut, and internal newlines
// collapse to spaces so the result is a single paragraph.
func CleanText(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	text = labelPrefixRe.ReplaceAllString(text, "")
	text = trailingNoteRe.ReplaceAllString(text, "")

	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimSpace(text)
}

// ParseCommaList splits comma-separated model output into trimmed, non-empty
// items. Surrounding quotes and list bullets are stripped per item.
func ParseCommaList(raw string) []string {
	text := CleanText(raw)
	if text == "" {
		return nil
	}

	parts := strings.Split(text, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		item = strings.Trim(item, `"'`)
		item = strings.TrimLeft(item, "-* ")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
