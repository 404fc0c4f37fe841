package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API failure.
type Kind int

const (
	// KindTransport is a connection, DNS or timeout failure.
	KindTransport Kind = iota + 1
	// KindHTTP is a reply with a non-200 HTTP status.
	KindHTTP
	// KindParse is a 200 reply whose body is not JSON.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrTransport  = errors.New("transport error")
	ErrHTTPStatus = errors.New("unexpected http status")
	ErrParse      = errors.New("failed to parse JSON response")
)

// Error is the failure result of Execute.
type Error struct {
	Kind   Kind
	Path   string
	Status int
	Body   string
	Header http.Header
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("%s: request failed: %v", e.Path, e.Err)
	case KindHTTP:
		return fmt.Sprintf("%s: status %d: %s", e.Path, e.Status, e.Body)
	case KindParse:
		return fmt.Sprintf("%s: status %d: %v", e.Path, e.Status, ErrParse)
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrHTTPStatus:
		return e.Kind == KindHTTP
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

// Document renders the error as the JSON object printed for failed calls.
func (e *Error) Document() map[string]any {
	switch e.Kind {
	case KindHTTP:
		headers := make(map[string]string, len(e.Header))
		for k := range e.Header {
			headers[k] = e.Header.Get(k)
		}
		return map[string]any{"error": e.Body, "status": e.Status, "headers": headers}
	case KindParse:
		return map[string]any{"error": ErrParse.Error(), "status": e.Status}
	default:
		msg := ""
		if e.Err != nil {
			msg = e.Err.Error()
		}
		return map[string]any{"error": msg}
	}
}
