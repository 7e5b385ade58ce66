package llm

import "context"

// CallFunc is one attempt against a specific client. The policy re-runs the
// identical function against the fallback client, so the request must be
// fully captured in the closure.
type CallFunc func(ctx context.Context, client Client) (string, error)

// CallWithFallback executes fn against primary and, when the failure
// classifies as transient and a fallback client is supplied, retries the
// identical request against fallback exactly once. The sequence is
// primary -> fallback -> terminal: whatever the fallback attempt produces is
// final, so there is never a second retry and never backoff at this layer.
// Authentication and unknown failures surface immediately.
func CallWithFallback(ctx context.Context, primary, fallback Client, fn CallFunc) Outcome {
	payload, err := fn(ctx, primary)
	if err == nil {
		return Success(payload)
	}

	outcome := Failure(err)
	if outcome.Status != StatusRetryableFailure || fallback == nil {
		return outcome
	}

	payload, err = fn(ctx, fallback)
	if err == nil {
		out := Success(payload)
		out.UsedFallback = true
		return out
	}

	// Terminal regardless of category: this was already the fallback attempt.
	final := Failure(err)
	final.Status = StatusFatalFailure
	final.UsedFallback = true
	return final
}
