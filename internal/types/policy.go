package types

import "sort"

// Policy maps a team name to the repositories that team wants Advanced Security enabled on
type Policy map[string][]string

// Teams returns the team names in sorted order
func (p Policy) Teams() []string {
	teams := make([]string, 0, len(p))
	for team := range p {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// AllowSet is the set of repository names that should have Advanced Security enabled
type AllowSet map[string]struct{}

// Add inserts a repository name and reports whether it was new
func (s AllowSet) Add(name string) bool {
	if _, exists := s[name]; exists {
		return false
	}
	s[name] = struct{}{}
	return true
}

// Contains reports whether the repository is allowed
func (s AllowSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of allowed repositories
func (s AllowSet) Len() int {
	return len(s)
}

// Names returns the allowed repository names in sorted order
func (s AllowSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
