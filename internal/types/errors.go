package types

import "fmt"

// ConfigError represents a missing or malformed configuration value or policy file
type ConfigError struct {
	Source  string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError represents a failed API call that the run cannot continue without
type TransportError struct {
	Operation string
	OrgName   string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to %s for organization '%s': %v", e.Operation, e.OrgName, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpdatePartialError represents a failed update of a single repository
type UpdatePartialError struct {
	Repository string
	Status     Status
	Err        error
}

func (e *UpdatePartialError) Error() string {
	return fmt.Sprintf("failed to set advanced security to '%s' on repository '%s': %v", e.Status, e.Repository, e.Err)
}

func (e *UpdatePartialError) Unwrap() error {
	return e.Err
}
