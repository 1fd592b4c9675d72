package options

import (
	"fmt"
	"sort"
	"strings"
)

// Option keys. The same names are used by flags, config files, environment
// variables and prompts.
const (
	Name           = "name"
	Scope          = "scope"
	Description    = "description"
	Install        = "install"
	Silent         = "silent"
	UseScope       = "useScope"
	PackageManager = "packageManager"
	Template       = "template"
)

// Kind is the value type an option carries.
type Kind int

const (
	KindString Kind = iota
	KindBool
)

// Keys lists every known option with its value kind.
var Keys = map[string]Kind{
	Name:           KindString,
	Scope:          KindString,
	Description:    KindString,
	Install:        KindBool,
	Silent:         KindBool,
	UseScope:       KindBool,
	PackageManager: KindString,
	Template:       KindString,
}

// Set maps option keys to string or bool values. A key that is absent was not
// supplied by any source; a present key always wins over lower-precedence sources.
type Set map[string]any

// Source is one named layer of configuration.
type Source struct {
	Name   string
	Values Set
}

// Defaults returns the built-in lowest-precedence values.
func Defaults() Set {
	return Set{
		Install:        true,
		Silent:         false,
		PackageManager: "npm",
	}
}

// Merge folds sources from lowest to highest precedence into a new Set.
// Later sources override earlier ones key by key. Inputs are not modified.
func Merge(sources ...Source) Set {
	out := Set{}
	for _, src := range sources {
		for k, v := range src.Values {
			out[k] = v
		}
	}
	return out
}

// Provenance reports, for every key of the merged result, the name of the
// source that supplied it.
func Provenance(sources ...Source) map[string]string {
	out := map[string]string{}
	for _, src := range sources {
		for k := range src.Values {
			out[k] = src.Name
		}
	}
	return out
}

// Has reports whether key was supplied.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// String returns the string value for key and whether it was present.
func (s Set) String(key string) (string, bool) {
	v, ok := s[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Bool returns the bool value for key and whether it was present.
func (s Set) Bool(key string) (bool, bool) {
	v, ok := s[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Scope returns the normalized scope ("@acme") or "" when no usable scope was
// supplied. It is the only place scope values get normalized.
func (s Set) Scope() string {
	raw, _ := s.String(Scope)
	return NormalizeScope(raw)
}

// Keys returns the present keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeScope trims whitespace and prefixes "@" when missing.
// An empty or bare "@" scope normalizes to "".
func NormalizeScope(scope string) string {
	scope = strings.TrimSpace(scope)
	if scope == "" || scope == "@" {
		return ""
	}
	if !strings.HasPrefix(scope, "@") {
		scope = "@" + scope
	}
	return scope
}

// Canonical maps a case-insensitive key (viper lowercases everything) to the
// option key it names.
func Canonical(key string) (string, bool) {
	for k := range Keys {
		if strings.EqualFold(k, key) {
			return k, true
		}
	}
	return "", false
}

// Coerce converts v to the kind registered for key. Strings "true"/"false"
// are accepted for bool options so that environment values can be used.
func Coerce(key string, v any) (any, error) {
	kind, ok := Keys[key]
	if !ok {
		return nil, fmt.Errorf("unknown option %q", key)
	}
	switch kind {
	case KindBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(b)) {
			case "true", "1", "yes":
				return true, nil
			case "false", "0", "no":
				return false, nil
			}
		}
		return nil, fmt.Errorf("option %q must be a boolean, got %v", key, v)
	default:
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("option %q must be a string, got %T", key, v)
		}
		return str, nil
	}
}
