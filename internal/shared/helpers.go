// Package shared provides common utility functions used across multiple
// packages in the mlscaffold codebase.
package shared

import "strings"

// NormalizePipName lowercases a Python package name and replaces
// underscores and dots with hyphens, following PEP 503 normalization.
// Manifest uniqueness and group-disjointness checks compare normalized
// names so "My_Pkg" and "my-pkg" count as the same dependency.
func NormalizePipName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer("_", "-", ".", "-")
	return replacer.Replace(lower)
}
