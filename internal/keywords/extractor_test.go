package keywords

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/router"
)

// countingRouter returns a scripted keyword list and counts extraction calls.
type countingRouter struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
}

func (c *countingRouter) Call(_ context.Context, req router.Request) (router.Result, llm.Outcome) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.err != nil {
		return router.Result{Tier: llm.TierFast}, llm.Outcome{
			Status:   llm.StatusRetryableFailure,
			Category: llm.ClassifyError(c.err),
			Err:      c.err,
		}
	}
	return router.Result{Raw: c.text, Tier: llm.TierFast}, llm.Success(c.text)
}

func (c *countingRouter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestExtractCachesByContent(t *testing.T) {
	r := &countingRouter{text: "Go, SQL, Kubernetes"}
	ex := NewExtractor(r, NewCache(time.Hour, 8))
	ctx := context.Background()

	first := ex.Extract(ctx, "some job description")
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, first.Keywords)
	assert.False(t, first.FromCache)
	assert.Equal(t, Hash("some job description"), first.SourceHash)

	second := ex.Extract(ctx, "some job description")
	assert.Equal(t, first.Keywords, second.Keywords)
	assert.True(t, second.FromCache)

	assert.Equal(t, 1, r.count(), "second extraction must be served from cache")
}

func TestExtractDistinctTextsCallSeparately(t *testing.T) {
	r := &countingRouter{text: "Go"}
	ex := NewExtractor(r, NewCache(time.Hour, 8))
	ctx := context.Background()

	ex.Extract(ctx, "posting one")
	ex.Extract(ctx, "posting two")

	assert.Equal(t, 2, r.count())
}

func TestExtractConcurrentCallsCollapse(t *testing.T) {
	r := &countingRouter{text: "Go, SQL"}
	ex := NewExtractor(r, NewCache(time.Hour, 8))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set := ex.Extract(ctx, "shared posting")
			assert.Equal(t, []string{"Go", "SQL"}, set.Keywords)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, r.count(), "concurrent extractions of the same text must share one call")
}

func TestExtractFailurePolicy(t *testing.T) {
	t.Run("model failure yields empty set not error", func(t *testing.T) {
		r := &countingRouter{err: errors.New("429 too many requests")}
		ex := NewExtractor(r, NewCache(time.Hour, 8))

		set := ex.Extract(context.Background(), "posting")
		assert.Empty(t, set.Keywords)
		assert.Equal(t, Hash("posting"), set.SourceHash)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		r := &countingRouter{err: errors.New("timeout")}
		ex := NewExtractor(r, NewCache(time.Hour, 8))
		ctx := context.Background()

		set := ex.Extract(ctx, "posting")
		require.Empty(t, set.Keywords)

		r.mu.Lock()
		r.err = nil
		r.text = "Go"
		r.mu.Unlock()

		set = ex.Extract(ctx, "posting")
		assert.Equal(t, []string{"Go"}, set.Keywords)
		assert.Equal(t, 2, r.count())
	})

	t.Run("empty job description yields empty set", func(t *testing.T) {
		r := &countingRouter{}
		ex := NewExtractor(r, nil)
		set := ex.Extract(context.Background(), "")
		assert.Empty(t, set.Keywords)
		assert.Zero(t, r.count())
	})

	t.Run("empty keyword list yields empty set", func(t *testing.T) {
		r := &countingRouter{text: "   "}
		ex := NewExtractor(r, nil)
		set := ex.Extract(context.Background(), "posting")
		assert.Empty(t, set.Keywords)
	})
}
