package api

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

const maxPerPage = 100

const repositoriesQuery = `query($org: String!, $first: Int!, $after: String) {
	organization(login: $org) {
		repositories(first: $first, after: $after) {
			nodes {
				name
			}
			pageInfo {
				hasNextPage
				endCursor
			}
		}
	}
}`

type repositoriesPage struct {
	Organization struct {
		Repositories struct {
			Nodes []struct {
				Name string `json:"name"`
			} `json:"nodes"`
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"repositories"`
	} `json:"organization"`
}

// ListRepositories fetches the names of all repositories in an organization using GraphQL
func (c *Client) ListRepositories(ctx context.Context, org string) ([]string, error) {
	var repos []string
	var cursor *string
	pages := 0

	for {
		variables := map[string]interface{}{
			"org":   org,
			"first": maxPerPage,
			"after": cursor,
		}

		var page repositoriesPage
		if err := c.graphql.DoWithContext(ctx, repositoriesQuery, variables, &page); err != nil {
			pterm.Error.Printf("Failed to fetch repositories for organization '%s': %v\n", org, err)
			return nil, &types.TransportError{Operation: "list repositories", OrgName: org, Err: err}
		}
		pages++

		for _, node := range page.Organization.Repositories.Nodes {
			if node.Name == org {
				pterm.Debug.Printf("Ignoring repository named after organization '%s'\n", org)
				continue
			}
			repos = append(repos, node.Name)
		}

		if !page.Organization.Repositories.PageInfo.HasNextPage {
			break
		}
		next := page.Organization.Repositories.PageInfo.EndCursor
		cursor = &next
	}

	pterm.Debug.Printf("Fetched %d repositories in %d pages\n", len(repos), pages)
	return repos, nil
}
