// Package elementname validates HTML custom element names.
package elementname

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// reservedNames are hyphenated names already used by SVG and MathML.
var reservedNames = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// discouragedPrefixes belong to well-known libraries or are reserved by XML.
var discouragedPrefixes = []string{"polymer-", "x-", "ng-", "xml"}

// Error explains why a name is not a valid custom element name.
type Error struct {
	Name   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid component name %q: %s", e.Name, e.Reason)
}

// Validate reports whether name is a valid custom element name.
// It returns nil for a valid name and an *Error otherwise.
func Validate(name string) error {
	if reason := check(name); reason != "" {
		return &Error{Name: name, Reason: reason}
	}
	return nil
}

func check(name string) string {
	if name == "" {
		return "missing element name"
	}
	if strings.IndexFunc(name, isUpperASCII) >= 0 {
		return "custom element names must not contain uppercase ASCII characters"
	}
	if !strings.Contains(name, "-") {
		return "custom element names must contain a hyphen, for example: unicorn-cake"
	}
	if c := name[0]; c < 'a' || c > 'z' {
		return "custom element names must start with a lowercase ASCII letter"
	}
	if reservedNames[name] {
		return "the name is reserved by the HTML specification and cannot be used"
	}
	if !utf8.ValidString(name) {
		return "custom element names must be valid UTF-8"
	}
	for _, r := range name {
		if !isPCENChar(r) {
			return fmt.Sprintf("character %q is not allowed in custom element names", r)
		}
	}
	return ""
}

// Warnings returns advisories for names that are valid but likely to collide
// or confuse. An invalid name yields no warnings.
func Warnings(name string) []string {
	if Validate(name) != nil {
		return nil
	}
	var warnings []string
	for _, p := range discouragedPrefixes {
		if strings.HasPrefix(name, p) {
			warnings = append(warnings, fmt.Sprintf("names starting with %q are commonly used by other libraries", p))
		}
	}
	if strings.HasSuffix(name, "-") {
		warnings = append(warnings, "names ending in a hyphen are unusual")
	}
	if strings.Contains(name, "--") {
		warnings = append(warnings, "names with consecutive hyphens are unusual")
	}
	return warnings
}

func isUpperASCII(r rune) bool { return r >= 'A' && r <= 'Z' }

// isPCENChar implements the PotentialCustomElementName character production.
func isPCENChar(r rune) bool {
	switch {
	case r == '-' || r == '.' || r == '_' || r == 0xB7:
		return true
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z':
		return true
	case r >= 0xC0 && r <= 0xD6,
		r >= 0xD8 && r <= 0xF6,
		r >= 0xF8 && r <= 0x37D,
		r >= 0x37F && r <= 0x1FFF,
		r >= 0x200C && r <= 0x200D,
		r >= 0x203F && r <= 0x2040,
		r >= 0x2070 && r <= 0x218F,
		r >= 0x2C00 && r <= 0x2FEF,
		r >= 0x3001 && r <= 0xD7FF,
		r >= 0xF900 && r <= 0xFDCF,
		r >= 0xFDF0 && r <= 0xFFFD,
		r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}
