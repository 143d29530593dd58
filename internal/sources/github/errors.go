package github

import "fmt"

// APIError is a non-2xx response from the GitHub API. Callers
// distinguish "not found", "validation failed" and "rate limited" by
// Status; there is no structured retry classification.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api error: %d %s", e.Status, e.Body)
}

// TransportError is a failure before or after the HTTP exchange: DNS,
// connection reset, or a 2xx response whose body is not valid JSON.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("github transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
