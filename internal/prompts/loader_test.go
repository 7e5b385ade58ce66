package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Run("known key", func(t *testing.T) {
		prompt, err := Get("tasks.json", "extract-keywords")
		require.NoError(t, err)
		assert.Contains(t, prompt, "{{.JobDescription}}")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Get("tasks.json", "does-not-exist")
		assert.Error(t, err)
	})

	t.Run("unknown file", func(t *testing.T) {
		_, err := Get("missing.json", "extract-keywords")
		assert.Error(t, err)
	})
}

func TestAllTaskPromptsPresent(t *testing.T) {
	keys, err := List("tasks.json")
	require.NoError(t, err)

	expected := []string{
		"extract-keywords",
		"rewrite-bullets",
		"write-summary",
		"optimize-skills",
		"parse-resume",
	}
	for _, key := range expected {
		assert.Contains(t, keys, key)
	}
}

func TestFormat(t *testing.T) {
	template := "Job: {{.JobDescription}}\nKeywords: {{.Keywords}}"
	result := Format(template, map[string]string{
		"JobDescription": "Go engineer",
		"Keywords":       "Go, SQL",
	})

	assert.Equal(t, "Job: Go engineer\nKeywords: Go, SQL", result)
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	result := Format("{{.Missing}}", map[string]string{"Other": "x"})
	assert.Equal(t, "{{.Missing}}", result)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("tasks.json", "does-not-exist")
	})
}
