package types

import "time"

// KeywordSet is a ranked keyword list extracted from a job description,
// tagged with the content hash of its source text so cached sets can be
// shared across concurrent section tasks of the same job.
type KeywordSet struct {
	Keywords   []string  `json:"keywords"`
	SourceHash string    `json:"source_hash"`
	CreatedAt  time.Time `json:"created_at"`
	FromCache  bool      `json:"from_cache,omitempty"`
}

// Top returns at most k keywords, highest extraction priority first.
func (ks KeywordSet) Top(k int) []string {
	if k <= 0 || len(ks.Keywords) == 0 {
		return nil
	}
	if k > len(ks.Keywords) {
		k = len(ks.Keywords)
	}
	return ks.Keywords[:k]
}
