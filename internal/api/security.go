package api

import (
	"context"

	"github.com/google/go-github/v68/github"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

// SetAdvancedSecurity sets the advanced security status of a single repository
func (c *Client) SetAdvancedSecurity(ctx context.Context, org, repo string, status types.Status) error {
	update := &github.Repository{
		SecurityAndAnalysis: &github.SecurityAndAnalysis{
			AdvancedSecurity: &github.AdvancedSecurity{
				Status: github.Ptr(string(status)),
			},
		},
	}

	_, _, err := c.rest.Repositories.Edit(ctx, org, repo, update)
	return err
}
