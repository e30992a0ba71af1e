package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ghapi "github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/google/go-github/v68/github"
	"github.com/pterm/pterm"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

const (
	defaultHost = "github.com"
	apiVersion  = "2022-11-28"
)

// GraphQLDoer executes a GraphQL query and decodes its data into response
type GraphQLDoer interface {
	DoWithContext(ctx context.Context, query string, variables map[string]interface{}, response interface{}) error
}

// ClientOptions configures a Client
type ClientOptions struct {
	// Host is github.com, a GitHub Enterprise Server hostname or a ghe.com tenant
	Host string
	// AuthToken falls back to the gh CLI credentials for Host when empty
	AuthToken string
	// Transport is the underlying transport, http.DefaultTransport when nil
	Transport http.RoundTripper
	// RateLimitPolicy defaults to RetryOncePolicy
	RateLimitPolicy RateLimitPolicy
}

// Client talks to the GitHub GraphQL and REST APIs through one rate limited transport
type Client struct {
	graphql GraphQLDoer
	rest    *github.Client
}

// NewClient creates a Client, resolving the host and token from the gh CLI when not given
func NewClient(opts ClientOptions) (*Client, error) {
	host := normalizeHost(opts.Host)
	if host == "" {
		host, _ = auth.DefaultHost()
	}
	if host == "" {
		host = defaultHost
	}

	token := opts.AuthToken
	if token == "" {
		var source string
		token, source = auth.TokenForHost(host)
		if token != "" {
			pterm.Debug.Printf("Using token for %s from %s\n", host, source)
		}
	}
	if token == "" {
		return nil, &types.ConfigError{Source: "github-token", Message: fmt.Sprintf("no token provided and gh is not authenticated to %s", host)}
	}

	ghOpts := ghapi.ClientOptions{
		Host:      host,
		AuthToken: token,
		Transport: NewRateLimitTransport(opts.Transport, opts.RateLimitPolicy),
		Headers: map[string]string{
			"X-GitHub-Api-Version": apiVersion,
		},
	}

	graphql, err := ghapi.NewGraphQLClient(ghOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	httpClient, err := ghapi.NewHTTPClient(ghOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	rest, err := newRESTClient(httpClient, host)
	if err != nil {
		return nil, err
	}

	pterm.Debug.Printf("Using GitHub host %s\n", host)
	return &Client{graphql: graphql, rest: rest}, nil
}

// normalizeHost reduces a server URL such as https://github.company.com/ to its host name
func normalizeHost(value string) string {
	host := strings.TrimSpace(value)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimRight(host, "/")
}

func newRESTClient(httpClient *http.Client, host string) (*github.Client, error) {
	rest := github.NewClient(httpClient)
	switch {
	case host == defaultHost:
		return rest, nil
	case strings.HasSuffix(host, ".ghe.com"):
		baseURL, err := url.Parse(fmt.Sprintf("https://api.%s/", host))
		if err != nil {
			return nil, fmt.Errorf("invalid host %q: %w", host, err)
		}
		rest.BaseURL = baseURL
		return rest, nil
	default:
		enterpriseURL := fmt.Sprintf("https://%s/", host)
		enterprise, err := rest.WithEnterpriseURLs(enterpriseURL, enterpriseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub Enterprise Server URL %q: %w", host, err)
		}
		return enterprise, nil
	}
}

// GetCurrentUser returns the login of the authenticated user
func (c *Client) GetCurrentUser(ctx context.Context) (string, error) {
	user, _, err := c.rest.Users.Get(ctx, "")
	if err != nil {
		return "", err
	}
	return user.GetLogin(), nil
}

// CheckOrganizationMembership checks the authenticated user's role in an organization
func (c *Client) CheckOrganizationMembership(ctx context.Context, org string) (types.MembershipStatus, error) {
	login, err := c.GetCurrentUser(ctx)
	if err != nil {
		return types.MembershipStatus{}, fmt.Errorf("failed to get current user: %w", err)
	}

	membership, resp, err := c.rest.Organizations.GetOrgMembership(ctx, login, org)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return types.MembershipStatus{Login: login, Role: "none"}, nil
		}
		return types.MembershipStatus{}, fmt.Errorf("failed to get membership in '%s': %w", org, err)
	}

	if membership.GetState() != "active" {
		return types.MembershipStatus{Login: login, Role: "none"}, nil
	}

	return types.MembershipStatus{
		Login:    login,
		IsMember: true,
		IsOwner:  membership.GetRole() == "admin",
		Role:     membership.GetRole(),
	}, nil
}

// ValidateMembership warns when the authenticated user is unlikely to be allowed to change repository settings.
// It never fails the run: app and installation tokens have no user to check.
func (c *Client) ValidateMembership(ctx context.Context, org string) {
	status, err := c.CheckOrganizationMembership(ctx, org)
	if err != nil {
		pterm.Debug.Printf("Skipping membership check for '%s': %v\n", org, err)
		return
	}
	switch {
	case !status.IsMember:
		pterm.Warning.Printf("User '%s' is not a member of organization '%s', updates will likely fail\n", status.Login, org)
	case !status.IsOwner:
		pterm.Warning.Printf("User '%s' is a member but not an owner of organization '%s', updates may fail\n", status.Login, org)
	default:
		pterm.Debug.Printf("User '%s' is an owner of organization '%s'\n", status.Login, org)
	}
}
