package processors

import (
	"context"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

// RepositoryProcessor defines the interface for processing repositories
type RepositoryProcessor interface {
	ProcessRepository(ctx context.Context, repo string) types.ComplianceResult
}

// SecurityUpdater changes the advanced security status of a repository
type SecurityUpdater interface {
	SetAdvancedSecurity(ctx context.Context, org, repo string, status types.Status) error
}
