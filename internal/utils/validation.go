package utils

import "fmt"

// ValidateDelay validates the delay flag value
func ValidateDelay(delay int) error {
	if delay < 0 || delay > 600 {
		return fmt.Errorf("delay must be between 0 and 600 seconds, got %d", delay)
	}
	return nil
}
