package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const defaultSecondaryRetryAfter = 60 * time.Second

// RequestInfo identifies a throttled request
type RequestInfo struct {
	Method string
	URL    string
}

func (r RequestInfo) String() string {
	return r.Method + " " + r.URL
}

// RateLimitPolicy decides whether a throttled request is retried.
// retryCount is the number of retries already made for the request.
type RateLimitPolicy interface {
	OnPrimaryRateLimit(wait time.Duration, req RequestInfo, retryCount int) bool
	OnSecondaryRateLimit(wait time.Duration, req RequestInfo, retryCount int) bool
}

// RetryOncePolicy retries a request once after a primary rate limit and never after a secondary one
type RetryOncePolicy struct{}

// OnPrimaryRateLimit implements RateLimitPolicy
func (RetryOncePolicy) OnPrimaryRateLimit(wait time.Duration, req RequestInfo, retryCount int) bool {
	pterm.Warning.Printf("Request quota exhausted for request %s\n", req)
	if retryCount == 0 {
		pterm.Info.Printf("Retrying after %s\n", wait)
		return true
	}
	return false
}

// OnSecondaryRateLimit implements RateLimitPolicy
func (RetryOncePolicy) OnSecondaryRateLimit(wait time.Duration, req RequestInfo, retryCount int) bool {
	pterm.Warning.Printf("Secondary rate limit detected for request %s\n", req)
	return false
}

type rateLimitKind int

const (
	notRateLimited rateLimitKind = iota
	primaryRateLimit
	secondaryRateLimit
)

// RateLimitTransport applies a RateLimitPolicy to throttled responses
type RateLimitTransport struct {
	Base   http.RoundTripper
	Policy RateLimitPolicy

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimitTransport wraps base with the given policy, defaulting to RetryOncePolicy
func NewRateLimitTransport(base http.RoundTripper, policy RateLimitPolicy) *RateLimitTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if policy == nil {
		policy = RetryOncePolicy{}
	}
	return &RateLimitTransport{Base: base, Policy: policy}
}

// RoundTrip implements http.RoundTripper
func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	info := RequestInfo{Method: req.Method, URL: req.URL.String()}
	attempt := req

	for retryCount := 0; ; retryCount++ {
		resp, err := t.base().RoundTrip(attempt)
		if err != nil {
			return nil, err
		}

		kind, wait := classifyRateLimit(resp, t.clock())
		var retry bool
		switch kind {
		case primaryRateLimit:
			retry = t.Policy.OnPrimaryRateLimit(wait, info, retryCount)
		case secondaryRateLimit:
			retry = t.Policy.OnSecondaryRateLimit(wait, info, retryCount)
		}
		if !retry {
			return resp, nil
		}

		next, ok := rewindRequest(req)
		if !ok {
			pterm.Debug.Printf("Request body of %s cannot be replayed, not retrying\n", info)
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if err := t.wait(req.Context(), wait); err != nil {
			return nil, err
		}
		attempt = next
	}
}

func (t *RateLimitTransport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

func (t *RateLimitTransport) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

func (t *RateLimitTransport) wait(ctx context.Context, d time.Duration) error {
	if t.sleep != nil {
		return t.sleep(ctx, d)
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// rewindRequest returns a copy of req with a fresh body
func rewindRequest(req *http.Request) (*http.Request, bool) {
	next := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return next, true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	next.Body = body
	return next, true
}

// classifyRateLimit inspects a response for primary or secondary rate limit signals
func classifyRateLimit(resp *http.Response, now time.Time) (rateLimitKind, time.Duration) {
	// GraphQL reports an exhausted quota as 200 with a RATE_LIMITED error
	if resp.StatusCode == http.StatusOK {
		if resp.Header.Get("X-RateLimit-Remaining") == "0" && strings.Contains(peekBody(resp), "RATE_LIMITED") {
			return primaryRateLimit, untilReset(resp.Header.Get("X-RateLimit-Reset"), now)
		}
		return notRateLimited, 0
	}
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return notRateLimited, 0
	}

	retryAfter, hasRetryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))

	if resp.Header.Get("X-RateLimit-Remaining") == "0" {
		if hasRetryAfter {
			return primaryRateLimit, retryAfter
		}
		return primaryRateLimit, untilReset(resp.Header.Get("X-RateLimit-Reset"), now)
	}

	if hasRetryAfter {
		return secondaryRateLimit, retryAfter
	}
	if bodyMentionsSecondaryLimit(resp) {
		return secondaryRateLimit, defaultSecondaryRetryAfter
	}

	return notRateLimited, 0
}

func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

func untilReset(value string, now time.Time) time.Duration {
	epoch, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	wait := time.Unix(epoch, 0).Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

func bodyMentionsSecondaryLimit(resp *http.Response) bool {
	return strings.Contains(strings.ToLower(peekBody(resp)), "secondary rate limit")
}

// peekBody reads the body and restores it for the caller
func peekBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return string(data)
}
