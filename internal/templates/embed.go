// Package templates carries the literal template bodies the scaffolder
// renders. The bodies are data, not logic: the engine substitutes
// delimited placeholders in them and nothing more.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed all:catalog
var catalogFS embed.FS

// Catalog returns the read-only template file system rooted at the
// catalog directory, so logical paths do not carry the embed prefix.
func Catalog() fs.FS {
	sub, err := fs.Sub(catalogFS, "catalog")
	if err != nil {
		panic(err)
	}
	return sub
}
