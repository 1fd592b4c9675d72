package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/create-lit-component/internal/branding"
	"github.com/agentx-labs/create-lit-component/internal/manifest"
	"github.com/agentx-labs/create-lit-component/internal/options"
	"github.com/spf13/viper"
)

// ValidationError reports a config document that does not match the options
// schema.
type ValidationError struct {
	Path   string
	Issues []manifest.ValidationIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("invalid configuration in %s: %s", e.Path, strings.Join(msgs, "; "))
}

// candidate is one config file name checked in every directory.
type candidate struct {
	file     string
	fileType string // viper config type; "" means package.json key lookup
}

// candidates returns the file names searched for command, in priority order.
func candidates(command string) []candidate {
	return []candidate{
		{file: manifest.FileName},
		{file: "." + command + "rc", fileType: "yaml"},
		{file: "." + command + "rc.json", fileType: "json"},
		{file: "." + command + "rc.yaml", fileType: "yaml"},
		{file: "." + command + "rc.yml", fileType: "yaml"},
		{file: command + ".config.json", fileType: "json"},
		{file: command + ".config.yaml", fileType: "yaml"},
	}
}

// Result is the outcome of a config search.
type Result struct {
	Options options.Set
	Path    string // file the options came from; "" when none was found
}

// Load searches startDir and its ancestors for the first config source
// recognised for command. It returns an empty Result when nothing is found.
// Parse and validation errors are returned, never skipped.
func Load(command, startDir string) (*Result, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", startDir, err)
	}

	for {
		for _, c := range candidates(command) {
			path := filepath.Join(dir, c.file)
			if !isFile(path) {
				continue
			}

			doc, found, err := readCandidate(path, c, command)
			if err != nil {
				return nil, err
			}
			if !found {
				continue
			}

			opts, err := toOptions(path, doc)
			if err != nil {
				return nil, err
			}
			return &Result{Options: opts, Path: path}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return &Result{Options: options.Set{}}, nil
		}
		dir = parent
	}
}

func readCandidate(path string, c candidate, command string) (map[string]any, bool, error) {
	if c.fileType == "" {
		return manifest.PackageKey(path, command)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(c.fileType)
	if err := v.ReadInConfig(); err != nil {
		return nil, false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return v.AllSettings(), true, nil
}

// toOptions canonicalizes keys, validates the document and converts it into
// an option set.
func toOptions(path string, doc map[string]any) (options.Set, error) {
	canonical := make(map[string]any, len(doc))
	for k, v := range doc {
		if key, ok := options.Canonical(k); ok {
			canonical[key] = v
			continue
		}
		canonical[k] = v
	}

	result, err := manifest.ValidateOptions(canonical)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &ValidationError{Path: path, Issues: result.Issues}
	}

	opts := options.Set{}
	for k, v := range canonical {
		coerced, err := options.Coerce(k, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		opts[k] = coerced
	}

	// A relative template directory is relative to the file that names it.
	if tmpl, ok := opts.String(options.Template); ok && !filepath.IsAbs(tmpl) {
		opts[options.Template] = filepath.Join(filepath.Dir(path), tmpl)
	}
	return opts, nil
}

// Environment returns the options set through prefixed environment variables,
// e.g. CREATE_LIT_COMPONENT_SCOPE or CREATE_LIT_COMPONENT_USESCOPE.
func Environment() (options.Set, error) {
	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())

	opts := options.Set{}
	for key, kind := range options.Keys {
		envKey := strings.ToLower(key)
		if err := v.BindEnv(envKey); err != nil {
			return nil, fmt.Errorf("binding %s: %w", branding.EnvVar(key), err)
		}
		if !v.IsSet(envKey) {
			continue
		}
		if kind == options.KindBool {
			b, err := options.Coerce(key, v.GetString(envKey))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", branding.EnvVar(key), err)
			}
			opts[key] = b
			continue
		}
		opts[key] = v.GetString(envKey)
	}
	return opts, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
