package parsing

import "fmt"

// ParseError represents a failure to decode model output after cleaning and
// repair. SafeParse absorbs it; it is exported for callers that use Decode
// directly and want errors.As.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
