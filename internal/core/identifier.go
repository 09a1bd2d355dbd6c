package core

import (
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be used both as a source
// path segment and as an importable module name: letters, digits and
// underscores only, not starting with a digit.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// DeriveModuleName derives a module identifier from a human-readable
// project name: lowercase, every non-identifier rune replaced with an
// underscore, and a leading underscore when the result would start
// with a digit. The derivation is pure, so repeated runs with the same
// project name always produce the same module name.
func DeriveModuleName(projectName string) string {
	lower := strings.ToLower(strings.TrimSpace(projectName))
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}
