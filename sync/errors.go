package sync

import (
	"fmt"
	"strings"
)

// RequestErrorKind classifies a failed Sharpi API request.
type RequestErrorKind int

const (
	// KindTimeout means the attempt exceeded HTTPRequestTimeout or was
	// otherwise cut short by the network.
	KindTimeout RequestErrorKind = iota
	// KindRetriable is a server-side (5xx) failure that may succeed on
	// resubmission.
	KindRetriable
	// KindClient is a non-conflict client-side (4xx) failure. Terminal.
	KindClient
	// KindConflict is the duplicate-resource response that triggers the
	// PATCH fallback.
	KindConflict
)

func (k RequestErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindRetriable:
		return "retriable"
	case KindClient:
		return "client"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

// RequestError is a classified failure from a single Sharpi API request.
// StatusCode and Body are zero/empty for transport-level failures.
type RequestError struct {
	Kind       RequestErrorKind
	StatusCode int
	Body       string
	URL        string
	Cause      error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("sharpi request to %s failed (%s): status %d: %s", e.URL, e.Kind, e.StatusCode, e.Body)
	}
	if e.Cause != nil {
		return fmt.Sprintf("sharpi request to %s failed (%s): %v", e.URL, e.Kind, e.Cause)
	}
	return fmt.Sprintf("sharpi request to %s failed (%s)", e.URL, e.Kind)
}

func (e *RequestError) Unwrap() error { return e.Cause }

// Retriable reports whether the same request may succeed on resubmission.
func (e *RequestError) Retriable() bool {
	return e.Kind == KindRetriable || e.Kind == KindTimeout
}

// IsConflict reports whether status and body identify a duplicate-resource
// response per the configured conflict settings.
func (s ConflictSettings) IsConflict(status int, body string) bool {
	for _, code := range s.Statuses {
		if code != status {
			continue
		}
		if s.MessageContains == "" || strings.Contains(body, s.MessageContains) {
			return true
		}
	}
	return false
}

// classifyStatus maps a non-2xx response to a RequestError.
func classifyStatus(conflict ConflictSettings, url string, status int, body string) *RequestError {
	result := &RequestError{StatusCode: status, Body: body, URL: url}
	switch {
	case status >= 500:
		result.Kind = KindRetriable
	case conflict.IsConflict(status, body):
		result.Kind = KindConflict
	default:
		result.Kind = KindClient
	}
	return result
}
