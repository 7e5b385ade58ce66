package keywords

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/router"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// maxJobDescriptionChars bounds the text sent to the extraction model. ATS
// keywords cluster in the requirements sections near the top; everything past
// the bound is boilerplate.
const maxJobDescriptionChars = 8000

// TaskRouter is the slice of the router the extractor needs.
type TaskRouter interface {
	Call(ctx context.Context, req router.Request) (router.Result, llm.Outcome)
}

// Extractor produces keyword sets for job descriptions, consulting the cache
// first and collapsing concurrent extractions of the same text into one model
// call.
type Extractor struct {
	cache  *Cache
	router TaskRouter
	group  singleflight.Group
}

// NewExtractor creates an extractor over the given router and cache. A nil
// cache disables caching but keeps in-flight deduplication.
func NewExtractor(r TaskRouter, cache *Cache) *Extractor {
	return &Extractor{cache: cache, router: r}
}

// Extract returns the keyword set for a job description. Cache hits and
// shared in-flight results are marked FromCache; a fresh extraction is not.
// Extraction is best-effort: any failure logs and yields an empty set so the
// run continues without keyword targeting. Failed extractions are never
// cached, so the next run retries.
func (e *Extractor) Extract(ctx context.Context, jobDescription string) types.KeywordSet {
	if jobDescription == "" {
		return types.KeywordSet{}
	}
	hash := Hash(jobDescription)

	if e.cache != nil {
		if set, ok := e.cache.Get(hash); ok {
			set.FromCache = true
			return set
		}
	}

	v, err, shared := e.group.Do(hash, func() (interface{}, error) {
		set, err := e.extract(ctx, jobDescription, hash)
		if err != nil {
			return nil, err
		}
		if e.cache != nil {
			e.cache.Put(hash, set)
		}
		return set, nil
	})
	if err != nil {
		log.Printf("keywords: extraction failed, continuing without keywords: %v", err)
		return types.KeywordSet{SourceHash: hash}
	}

	set := v.(types.KeywordSet)
	set.FromCache = shared
	return set
}

// extract performs one model call and parses its comma-separated output.
func (e *Extractor) extract(ctx context.Context, jobDescription, hash string) (types.KeywordSet, error) {
	text := jobDescription
	if len(text) > maxJobDescriptionChars {
		text = text[:maxJobDescriptionChars]
	}

	result, outcome := e.router.Call(ctx, router.Request{
		Kind:           router.KindExtractKeywords,
		JobDescription: text,
	})
	if outcome.Status != llm.StatusSuccess {
		return types.KeywordSet{}, fmt.Errorf("keyword extraction failed (%s): %w", outcome.Category, outcome.Err)
	}

	kws := router.ParseCommaList(result.Raw)
	if len(kws) == 0 {
		return types.KeywordSet{}, fmt.Errorf("keyword extraction returned no keywords")
	}

	return types.KeywordSet{
		Keywords:   kws,
		SourceHash: hash,
		CreatedAt:  time.Now(),
	}, nil
}
