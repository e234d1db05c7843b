package shiki

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Failure is the closed family of errors returned by Client. Every method
// returns either nil or one of the types below.
type Failure interface {
	error
	failure()
}

var (
	_ Failure = (*TransportError)(nil)
	_ Failure = (*QueryError)(nil)
	_ Failure = (*RateLimitError)(nil)
	_ Failure = (*StatusError)(nil)
	_ Failure = (*DecodeError)(nil)
)

// TransportError wraps network-level failures: DNS, connect, TLS, timeouts,
// cancelled contexts.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (*TransportError) failure() {}

// QueryError reports a well-formed GraphQL response carrying errors.
type QueryError struct {
	Messages []string
}

func (e *QueryError) Error() string {
	if len(e.Messages) == 0 {
		return "graphql: query rejected"
	}
	return "graphql: " + strings.Join(e.Messages, "; ")
}

func (*QueryError) failure() {}

// RateLimitError reports HTTP 429. RetryAfter is nil when the upstream gave no
// usable hint.
type RateLimitError struct {
	Endpoint   string
	RetryAfter *time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter != nil {
		return fmt.Sprintf("api %s rate limited, retry after %s", e.Endpoint, *e.RetryAfter)
	}
	return fmt.Sprintf("api %s rate limited", e.Endpoint)
}

func (*RateLimitError) failure() {}

// StatusError reports any other non-2xx response.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Endpoint, e.StatusCode)
}

func (*StatusError) failure() {}

// DecodeError reports a response body that could not be parsed.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (*DecodeError) failure() {}

// parseRetryAfter understands both delay-seconds and HTTP-date forms.
func parseRetryAfter(value string, now time.Time) *time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return nil
		}
		d := time.Duration(secs) * time.Second
		return &d
	}
	if at, err := http.ParseTime(value); err == nil {
		d := at.Sub(now)
		if d < 0 {
			d = 0
		}
		d = d.Round(time.Second)
		return &d
	}
	return nil
}
