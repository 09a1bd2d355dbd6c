package adapters

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mlscaffold/internal/ports"
	"mlscaffold/internal/types"
)

// TreeWriterAdapter applies a synthesis plan to the target tree. Each
// entry is written atomically via a temp file and rename, so no file
// is ever left truncated; a failure partway through returns the report
// of everything written so far.
type TreeWriterAdapter struct {
	Root string
}

func NewTreeWriterAdapter(root string) TreeWriterAdapter {
	return TreeWriterAdapter{Root: root}
}

func (w TreeWriterAdapter) Apply(ctx context.Context, plan types.Plan, force bool) (types.Report, error) {
	report := types.Report{}
	for _, entry := range plan.Entries {
		mode := entry.Mode
		if force {
			mode = types.WriteModeForceOverwrite
		}
		dest := filepath.Join(w.Root, filepath.FromSlash(entry.Path))

		_, err := os.Lstat(dest)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return report, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to stat %s", entry.Path)).
				WithCause(err)
		}
		exists := err == nil

		if exists && mode == types.WriteModeCreateIfAbsent {
			report.Results = append(report.Results, types.FileResult{
				Path:   entry.Path,
				Action: types.FileActionSkipped,
			})
			log.Ctx(ctx).Debug().Str("path", entry.Path).Msg("exists, skipping")
			continue
		}

		if err := writeFileAtomic(dest, entry.Content); err != nil {
			return report, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to write %s", entry.Path)).
				WithCause(err)
		}
		action := types.FileActionCreated
		if exists {
			action = types.FileActionReplaced
		}
		report.Results = append(report.Results, types.FileResult{
			Path:   entry.Path,
			Action: action,
		})
	}
	log.Ctx(ctx).Debug().
		Int("created", report.CreatedCount()).
		Int("replaced", report.ReplacedCount()).
		Int("skipped", report.SkippedCount()).
		Msg("synthesis plan applied")
	return report, nil
}

// writeFileAtomic writes content via a temp file in the destination
// directory followed by a rename, so a crash can only leave a stray
// temp file, never a half-written destination.
func writeFileAtomic(dest string, content []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".mlscaffold-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return err
	}
	success = true
	return nil
}

var _ ports.TreeWriterPort = TreeWriterAdapter{}
