package policy

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

// Load reads a team to repository mapping from a YAML file
func Load(path string) (types.Policy, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &types.ConfigError{Source: "policy file", Message: "path is required"}
	}

	// #nosec G304 -- the policy path is operator supplied
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.ConfigError{Source: path, Message: "failed to read policy file", Err: err}
	}

	return Parse(path, data)
}

// Parse decodes policy file contents, source is only used in error messages
func Parse(source string, data []byte) (types.Policy, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &types.ConfigError{Source: source, Message: "policy file must map team names to lists of repository names", Err: err}
	}
	if len(raw) == 0 {
		return nil, &types.ConfigError{Source: source, Message: "policy file contains no teams"}
	}

	policy := make(types.Policy, len(raw))
	for team, repos := range raw {
		cleaned := make([]string, 0, len(repos))
		for i, repo := range repos {
			name := strings.TrimSpace(repo)
			if name == "" {
				pterm.Warning.Printf("Team '%s' entry %d: empty repository name, skipping\n", team, i+1)
				continue
			}
			cleaned = append(cleaned, name)
		}
		policy[team] = cleaned
	}

	return policy, nil
}

// NewAllowSet builds the set of repositories any team wants enabled
func NewAllowSet(policy types.Policy) types.AllowSet {
	allow := make(types.AllowSet)
	for _, team := range policy.Teams() {
		added := 0
		for _, repo := range policy[team] {
			if allow.Add(repo) {
				added++
			}
		}
		pterm.Debug.Printf("Team '%s': %d repositories (%d new)\n", team, len(policy[team]), added)
	}
	return allow
}

// LoadAllowSet loads a policy file and derives its allow-set
func LoadAllowSet(path string) (types.Policy, types.AllowSet, error) {
	policy, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	allow := NewAllowSet(policy)
	if allow.Len() == 0 {
		pterm.Warning.Println("Policy file lists no repositories, advanced security will be disabled everywhere")
	}
	return policy, allow, nil
}

// Describe returns a one line summary of a policy
func Describe(policy types.Policy, allow types.AllowSet) string {
	return fmt.Sprintf("%d teams, %d distinct repositories", len(policy), allow.Len())
}
