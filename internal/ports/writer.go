package ports

import (
	"context"

	"mlscaffold/internal/types"
)

// TreeWriterPort applies a synthesis plan to the target project tree.
// Without force, existing files are skipped and recorded as such; with
// force, every plan entry is rewritten. The returned report is valid
// even when err is non-nil and lists the files written before the
// failure.
type TreeWriterPort interface {
	Apply(ctx context.Context, plan types.Plan, force bool) (types.Report, error)
}
