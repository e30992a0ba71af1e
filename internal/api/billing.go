package api

import (
	"context"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/pterm/pterm"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

// ListActiveCommitters fetches the Advanced Security active committers of every repository in an organization
func (c *Client) ListActiveCommitters(ctx context.Context, org string) ([]types.RepositoryCommitters, error) {
	var repos []types.RepositoryCommitters
	opts := &github.ListOptions{PerPage: maxPerPage}
	total := 0

	for {
		committers, resp, err := c.rest.Billing.GetAdvancedSecurityActiveCommittersOrg(ctx, org, opts)
		if err != nil {
			return nil, &types.TransportError{Operation: "fetch advanced security committers", OrgName: org, Err: err}
		}
		total = committers.TotalAdvancedSecurityCommitters

		for _, repo := range committers.Repositories {
			entry := types.RepositoryCommitters{
				Name:       shortRepositoryName(repo.GetName()),
				Committers: make([]string, 0, len(repo.AdvancedSecurityCommittersBreakdown)),
			}
			for _, breakdown := range repo.AdvancedSecurityCommittersBreakdown {
				if login := breakdown.GetUserLogin(); login != "" {
					entry.Committers = append(entry.Committers, login)
				}
			}
			repos = append(repos, entry)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	pterm.Debug.Printf("Organization '%s' reports %d advanced security committers across %d repositories\n", org, total, len(repos))
	return repos, nil
}

// shortRepositoryName strips the owner from an owner/name pair
func shortRepositoryName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
