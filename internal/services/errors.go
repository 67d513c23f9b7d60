package services

// Typed errors let the handler layer map failures to HTTP codes without
// string matching. Anything else collapses to a generic 500.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// UpstreamError covers a malformed or empty reply from the completion
// service.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string { return e.Message }

// TimeoutError marks a completion call that exceeded its deadline. Kept
// distinct from UpstreamError so logs can tell a hang from a bad response.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string { return e.Message }
