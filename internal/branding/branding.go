// Package branding provides compile-time identity values for the CLI.
//
// The command name doubles as the lookup key for project configuration
// (.create-lit-componentrc, the "create-lit-component" key in package.json)
// and as the namespace of the stored preferences, so forks that rename the
// binary get their own config and preferences for free.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	ConfigDir   string `yaml:"config_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "create-lit-component",
			DisplayName: "Create Lit Component",
			Description: "Scaffold a new LitElement web component package",
			ConfigDir:   "create-lit-component",
			EnvPrefix:   "CREATE_LIT_COMPONENT",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-lit-component").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigDir returns the directory name used under the OS user config dir.
func ConfigDir() string { load(); return defaults.ConfigDir }

// EnvPrefix returns the environment variable prefix (e.g., "CREATE_LIT_COMPONENT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// EnvVar returns a fully qualified env var name,
// e.g., EnvVar("scope") → "CREATE_LIT_COMPONENT_SCOPE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
