package generation

import (
	"fmt"
)

type Kind string

const (
	KindTimeout       Kind = "timeout"
	KindAPI           Kind = "api_error"
	KindEmptyResponse Kind = "empty_response"
)

// Error is returned for every failed generation call. Callers route on Kind.
type Error struct {
	Kind   Kind
	Status int
	Body   string
	Err    error
}

var (
	ErrTimeout       = &Error{Kind: KindTimeout}
	ErrAPI           = &Error{Kind: KindAPI}
	ErrEmptyResponse = &Error{Kind: KindEmptyResponse}
)

func (e *Error) Error() string {
	msg := "generation " + string(e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrTimeout) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

const maxBodyLog = 512

func clipBody(b []byte) string {
	if len(b) > maxBodyLog {
		return string(b[:maxBodyLog]) + "..."
	}
	return string(b)
}
