package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/callmegreg/gh-advanced-security-sync/internal/types"
)

// Config holds the run configuration gathered from the environment
type Config struct {
	// GitHub
	Token string
	Host  string

	// Policy
	Org         string
	PolicyFile  string
	ForceEnable bool
}

// Load loads the configuration from a .env file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	forceEnable, err := getBool("false", "INPUT_FORCE-ENABLE", "FORCE_ENABLE")
	if err != nil {
		return nil, err
	}

	return &Config{
		Token:       getEnv("", "INPUT_GITHUB-TOKEN", "GITHUB_TOKEN", "GH_TOKEN"),
		Host:        getEnv("", "GH_HOST"),
		Org:         getEnv("", "INPUT_ORG", "GITHUB_ORG"),
		PolicyFile:  getEnv("", "INPUT_FILE", "POLICY_FILE"),
		ForceEnable: forceEnable,
	}, nil
}

// getEnv returns the first non-empty environment variable among keys, or defaultValue
func getEnv(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return defaultValue
}

func getBool(defaultValue string, keys ...string) (bool, error) {
	raw := getEnv(defaultValue, keys...)
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &types.ConfigError{Source: strings.Join(keys, "/"), Message: "must be 'true' or 'false'", Err: err}
	}
	return value, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Org == "" {
		return &types.ConfigError{Source: "org", Message: "organization is required"}
	}
	if strings.Contains(c.Org, " ") || strings.Contains(c.Org, "/") {
		return &types.ConfigError{Source: "org", Message: "invalid organization name format: " + c.Org}
	}
	if c.PolicyFile == "" {
		return &types.ConfigError{Source: "file", Message: "policy file path is required"}
	}
	return nil
}
