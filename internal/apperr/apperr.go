package apperr

import (
	"encoding/json"
	"errors"
	"time"
)

// Kind classifies an error for the UI.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindTransport     Kind = "transport"
	KindProtocol      Kind = "protocol"
	KindRateLimit     Kind = "rate_limit"
	KindUpstreamAPI   Kind = "upstream_api"
	KindSerialization Kind = "serialization"
	KindNotFound      Kind = "not_found"
)

var allKinds = []Kind{
	KindValidation,
	KindTransport,
	KindProtocol,
	KindRateLimit,
	KindUpstreamAPI,
	KindSerialization,
	KindNotFound,
}

// Kinds returns every kind in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Error is the single error shape handed to callers of the catalog layer.
// RetryAfter is set only for KindRateLimit.
type Error struct {
	Kind       Kind
	Message    string
	RetryAfter *time.Duration
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: k})
// works as a kind check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

type wireError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	RetryAfter *int64 `json:"retry_after"`
}

// MarshalJSON renders {kind, message, retry_after} with retry_after in whole
// seconds or null.
func (e *Error) MarshalJSON() ([]byte, error) {
	w := wireError{Kind: e.Kind, Message: e.Message}
	if e.RetryAfter != nil {
		secs := int64(e.RetryAfter.Round(time.Second) / time.Second)
		w.RetryAfter = &secs
	}
	return json.Marshal(w)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (e *Error) UnmarshalJSON(data []byte) error {
	var w wireError
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.Kind = w.Kind
	e.Message = w.Message
	e.RetryAfter = nil
	if w.RetryAfter != nil {
		d := time.Duration(*w.RetryAfter) * time.Second
		e.RetryAfter = &d
	}
	return nil
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err is nil or untranslated.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return ""
}
