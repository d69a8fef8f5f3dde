package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults for the merge options shared by the CLI and the GUI.
const (
	DefaultPattern  = "*.pdf"
	DefaultTemplate = "{directory}_{date}.pdf"
)

// EnvConfigPath overrides the location of the configuration store.
const EnvConfigPath = "PDFMERGE_CONFIG"

const (
	appDirName     = "pdfmerge"
	configFileName = "configurations.yml"
)

// DefaultPath returns the per-user configuration store location:
// $PDFMERGE_CONFIG if set, otherwise <user config dir>/pdfmerge/configurations.yml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}
