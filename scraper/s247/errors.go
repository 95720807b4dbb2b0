package s247

import "fmt"

// FetchError reports a failed page fetch: a transport-level failure or a
// non-success HTTP status. Fetches are never retried; the enclosing
// collection fails.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError reports a structurally required markup element that was
// missing or malformed. Optional elements never produce this error; they
// simply leave the field absent.
type ExtractionError struct {
	Selector string
	Detail   string
}

func (e *ExtractionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("extract %q: %s", e.Selector, e.Detail)
	}
	return fmt.Sprintf("extract %q: required element not found", e.Selector)
}

// ValidationError reports an invalid caller-supplied query parameter. It is
// raised at construction time, before any network activity.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q, must be one of %v", e.Field, e.Value, e.Allowed)
}
