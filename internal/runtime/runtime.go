package runtime

import (
	"fmt"
	"sort"
	"strings"
)

// PackageManager describes a supported package manager.
type PackageManager struct {
	Name string
	// MinVersion is a semver constraint the installed binary should satisfy.
	MinVersion string
}

// Output captures the result of a package-manager run.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Supported package manager identifiers.
const (
	NPM  = "npm"
	Yarn = "yarn"
	PNPM = "pnpm"
)

var packageManagers = map[string]PackageManager{
	NPM:  {Name: NPM, MinVersion: ">= 7.0.0"},
	Yarn: {Name: Yarn, MinVersion: ">= 1.22.0"},
	PNPM: {Name: PNPM, MinVersion: ">= 8.0.0"},
}

// Lookup returns the package manager registered under name.
func Lookup(name string) (PackageManager, error) {
	pm, ok := packageManagers[name]
	if !ok {
		return PackageManager{}, fmt.Errorf("unknown package manager %q: supported are %s", name, strings.Join(Supported(), ", "))
	}
	return pm, nil
}

// Supported lists the known package manager names in sorted order.
func Supported() []string {
	names := make([]string, 0, len(packageManagers))
	for name := range packageManagers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
