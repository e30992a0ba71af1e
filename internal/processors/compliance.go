package processors

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

// ComplianceProcessor implements RepositoryProcessor by applying the allow-set to each repository
type ComplianceProcessor struct {
	Org         string
	AllowSet    types.AllowSet
	ForceEnable bool
	Updater     SecurityUpdater
}

// DesiredStatus returns the status policy requires for a repository
func DesiredStatus(allow types.AllowSet, repo string) types.Status {
	if allow.Contains(repo) {
		return types.StatusEnabled
	}
	return types.StatusDisabled
}

// ShouldSkip reports whether no update is issued for the desired status.
// Repositories that should be enabled are left alone unless forced.
func ShouldSkip(desired types.Status, forceEnable bool) bool {
	return !forceEnable && desired == types.StatusEnabled
}

// ProcessRepository processes a single repository
func (cp *ComplianceProcessor) ProcessRepository(ctx context.Context, repo string) types.ComplianceResult {
	desired := DesiredStatus(cp.AllowSet, repo)

	if ShouldSkip(desired, cp.ForceEnable) {
		pterm.Debug.Printf("Repository '%s' is allowed, skipping without --force-enable\n", repo)
		return types.ComplianceResult{Repository: repo, Desired: desired, Skipped: true}
	}

	if err := cp.Updater.SetAdvancedSecurity(ctx, cp.Org, repo, desired); err != nil {
		return types.ComplianceResult{
			Repository: repo,
			Desired:    desired,
			Error:      &types.UpdatePartialError{Repository: repo, Status: desired, Err: err},
		}
	}

	return types.ComplianceResult{Repository: repo, Desired: desired, Applied: true}
}

// Plan computes the outcome for every repository without calling the API
func Plan(repos []string, allow types.AllowSet, forceEnable bool) []types.ComplianceResult {
	results := make([]types.ComplianceResult, 0, len(repos))
	for _, repo := range repos {
		desired := DesiredStatus(allow, repo)
		results = append(results, types.ComplianceResult{
			Repository: repo,
			Desired:    desired,
			Skipped:    ShouldSkip(desired, forceEnable),
		})
	}
	return results
}
