package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/create-lit-component/internal/branding"
)

// File name constants for the userdata convention.
const (
	PreferencesFile = "preferences.yaml"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
)

// GetConfigRoot returns the directory holding per-user state.
// It checks the CREATE_LIT_COMPONENT_CONFIG_DIR environment variable first,
// then falls back to <os.UserConfigDir>/create-lit-component.
func GetConfigRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("CONFIG_DIR")); v != "" {
		return v, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	return filepath.Join(dir, branding.ConfigDir()), nil
}

// GetPreferencesPath returns the path to preferences.yaml within the config root.
func GetPreferencesPath() (string, error) {
	root, err := GetConfigRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, PreferencesFile), nil
}
