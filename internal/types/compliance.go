package types

// Status is the Advanced Security status of a repository
type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"
)

// ComplianceResult represents the result of processing a single repository
type ComplianceResult struct {
	Repository string
	Desired    Status
	Applied    bool
	Skipped    bool
	Error      error
}

// Outcome returns a short label for reports
func (r ComplianceResult) Outcome() string {
	switch {
	case r.Error != nil:
		return "failed"
	case r.Skipped:
		return "skipped"
	case r.Applied:
		return "applied"
	default:
		return "pending"
	}
}

// RepositoryCommitters lists the Advanced Security committers of one repository
type RepositoryCommitters struct {
	Name       string   `json:"name"`
	Committers []string `json:"committers"`
}

// TeamCommitters is the number of distinct committers across a team's repositories
type TeamCommitters struct {
	Team         string   `json:"team"`
	Committers   int      `json:"committers"`
	Repositories []string `json:"repositories"`
}

// RepositoryCommitterCount is the number of distinct committers of one repository
type RepositoryCommitterCount struct {
	Name       string `json:"name"`
	Committers int    `json:"committers"`
	Allowed    bool   `json:"allowed"`
}

// CommitterReport aggregates active committers per repository and per team
type CommitterReport struct {
	Organization    string                     `json:"organization"`
	TotalCommitters int                        `json:"total_committers"`
	Repositories    []RepositoryCommitterCount `json:"repositories"`
	Teams           []TeamCommitters           `json:"teams"`
}
