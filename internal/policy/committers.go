package policy

import (
	"sort"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

// CommitterReport counts distinct active committers per repository and per team.
// A team's count is the union of committers over all of its repositories.
func CommitterReport(org string, policy types.Policy, repos []types.RepositoryCommitters) types.CommitterReport {
	allow := NewAllowSet(policy)
	byRepo := make(map[string]map[string]struct{}, len(repos))
	everyone := make(map[string]struct{})

	for _, repo := range repos {
		logins, ok := byRepo[repo.Name]
		if !ok {
			logins = make(map[string]struct{})
			byRepo[repo.Name] = logins
		}
		for _, login := range repo.Committers {
			logins[login] = struct{}{}
			everyone[login] = struct{}{}
		}
	}

	report := types.CommitterReport{
		Organization:    org,
		TotalCommitters: len(everyone),
		Repositories:    make([]types.RepositoryCommitterCount, 0, len(byRepo)),
		Teams:           make([]types.TeamCommitters, 0, len(policy)),
	}

	for name, logins := range byRepo {
		report.Repositories = append(report.Repositories, types.RepositoryCommitterCount{
			Name:       name,
			Committers: len(logins),
			Allowed:    allow.Contains(name),
		})
	}
	sort.Slice(report.Repositories, func(i, j int) bool {
		return report.Repositories[i].Name < report.Repositories[j].Name
	})

	for _, team := range policy.Teams() {
		union := make(map[string]struct{})
		seen := make(types.AllowSet)
		var covered []string
		for _, name := range policy[team] {
			logins, ok := byRepo[name]
			if !ok || !seen.Add(name) {
				continue
			}
			covered = append(covered, name)
			for login := range logins {
				union[login] = struct{}{}
			}
		}
		if covered == nil {
			covered = []string{}
		}
		report.Teams = append(report.Teams, types.TeamCommitters{
			Team:         team,
			Committers:   len(union),
			Repositories: covered,
		})
	}

	return report
}
