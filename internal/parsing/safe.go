package parsing

import (
	"encoding/json"
	"log"
)

// maxLoggedPayload bounds how much of an undecodable response reaches the log.
const maxLoggedPayload = 2000

// Decode cleans raw model output and unmarshals it into v, retrying once on a
// repaired copy. It is the error-returning half of SafeParse for callers that
// need to distinguish failure.
func Decode(raw string, v any) error {
	cleaned := Clean(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}
	repaired := Repair(cleaned)
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return &ParseError{Message: "undecodable after clean and repair", Cause: err}
	}
	return nil
}

// SafeParse decodes raw model output into T, falling back to the supplied
// value when even the repaired text does not decode. It never returns an
// error and never panics. Callers that need to act on failure, like the
// engine's per-section degradation, use Decode instead.
func SafeParse[T any](raw string, fallback T) T {
	var v T
	if err := Decode(raw, &v); err != nil {
		log.Printf("parsing: falling back after decode failure: %v; raw payload: %s", err, truncate(raw, maxLoggedPayload))
		return fallback
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
