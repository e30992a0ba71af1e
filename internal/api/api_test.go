package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v68/github"
)

// newTestClient points the REST client at an httptest server with rate limit sleeps disabled
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	transport := NewRateLimitTransport(srv.Client().Transport, nil)
	transport.sleep = func(context.Context, time.Duration) error { return nil }

	rest := github.NewClient(&http.Client{Transport: transport})
	baseURL, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatalf("failed to parse server URL: %v", err)
	}
	rest.BaseURL = baseURL

	return &Client{rest: rest}
}
