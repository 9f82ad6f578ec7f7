package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Name      string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("STONECTL_SERVER", "http://localhost:3000"),
		Name:      getEnvOrDefault("STONECTL_NAME", defaultName()),
		Output:    getEnvOrDefault("STONECTL_OUTPUT", "text"),
		Verbose:   false,
	}
}

func defaultName() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "guest"
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
