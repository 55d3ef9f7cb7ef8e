package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Version is overridden at build time with -ldflags "-X visrender/internal/config.Version=..."
var Version = ""

const fallbackVersion = "0.1.0"

// GetVersion returns the build version, the APP_VERSION environment variable or the VERSION file
func GetVersion() string {
	if Version != "" {
		return Version
	}

	// Set by CI/CD
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	return getBaseVersion(".", "..")
}

// getBaseVersion reads the first VERSION file found in dirs
func getBaseVersion(dirs ...string) string {
	for _, dir := range dirs {
		content, err := os.ReadFile(filepath.Join(dir, "VERSION"))
		if err != nil {
			continue
		}
		if v := strings.TrimSpace(string(content)); v != "" {
			return v
		}
	}
	return fallbackVersion
}
