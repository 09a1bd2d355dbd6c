// Package testutil provides shared test helpers used across integration
// and unit test packages.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mlscaffold/internal/app"
)

// FixedClock is the timestamp reported by services built with NewService.
var FixedClock = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// NewService builds an application service with a deterministic clock.
func NewService() app.Service {
	svc := app.NewService()
	svc.Clock = func() time.Time { return FixedClock }
	return svc
}

// ReadTree returns the contents of every regular file under root, keyed
// by slash-separated path relative to root.
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}
