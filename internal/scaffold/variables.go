package scaffold

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/agentx-labs/create-lit-component/internal/options"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Variables are the placeholder values substituted into a template.
type Variables struct {
	Component          string // e.g., "my-card"
	Description        string // Human-readable description
	PkgName            string // Derived: @scope/my-card or my-card
	ComponentClassName string // Derived: MyCard
}

// NewVariables derives template variables from a resolved option set.
func NewVariables(opts options.Set) Variables {
	component, _ := opts.String(options.Name)
	description, _ := opts.String(options.Description)

	v := Variables{
		Component:          component,
		Description:        description,
		PkgName:            component,
		ComponentClassName: ClassName(component),
	}
	if scope := opts.Scope(); scope != "" {
		v.PkgName = scope + "/" + component
	}
	return v
}

// ClassName converts a kebab or snake case name to PascalCase:
// "my-card" → "MyCard", "data_table-row" → "DataTableRow".
func ClassName(name string) string {
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	// Casers are stateful; NoLower keeps the tail of each segment untouched.
	caser := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(caser.String(seg))
	}
	return b.String()
}

// placeholders maps every placeholder token to its value.
func (v Variables) placeholders() map[string]string {
	return map[string]string{
		"{{component}}":          v.Component,
		"{{description}}":        v.Description,
		"{{pkgName}}":            v.PkgName,
		"{{componentClassName}}": v.ComponentClassName,
	}
}

// Replacer returns a replacer substituting every placeholder token.
func (v Variables) Replacer() *strings.Replacer {
	var pairs []string
	for token, value := range v.placeholders() {
		pairs = append(pairs, token, value)
	}
	return strings.NewReplacer(pairs...)
}

// JSONReplacer is like Replacer but escapes each value for use inside a JSON
// string literal.
func (v Variables) JSONReplacer() *strings.Replacer {
	var pairs []string
	for token, value := range v.placeholders() {
		pairs = append(pairs, token, jsonEscape(value))
	}
	return strings.NewReplacer(pairs...)
}

// jsonEscape returns s encoded as a JSON string without the surrounding quotes.
func jsonEscape(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	out := strings.TrimSuffix(buf.String(), "\n")
	return out[1 : len(out)-1]
}
