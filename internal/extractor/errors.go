package extractor

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const defaultRetryAfter = 60 * time.Second

// RateLimitError indicates an extraction provider returned HTTP 429. The
// fallback chain uses RetryAfter to decide how long to route around the
// provider; HTTP handlers surface it as a Retry-After header.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. A non-positive retryAfterSecs
// falls back to the 60s default so a missing header never produces a zero
// backoff.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	retryAfter := time.Duration(retryAfterSecs) * time.Second
	if retryAfter <= 0 {
		retryAfter = defaultRetryAfter
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: retryAfter,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Both forms from RFC 9110 are accepted: delay-seconds and HTTP-date.
// Unparseable or past values yield 0, which callers treat as "use the default".
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		if secs < 0 {
			return 0
		}
		return secs
	}
	if at, err := http.ParseTime(val); err == nil {
		if d := time.Until(at); d > 0 {
			return int(d.Seconds())
		}
	}
	return 0
}
