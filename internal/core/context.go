package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mlscaffold/internal/types"
)

// ContextOptions are the raw scaffolding inputs. The CLI resolves flags
// and environment overrides into this struct once at the process
// boundary; nothing below the context builder reads the environment.
type ContextOptions struct {
	ProjectName string
	ModuleName  string
	AuthorName  string
	AuthorEmail string
	Task        string
}

var taskProfiles = map[types.TaskProfile]struct{}{
	types.TaskClassification: {},
	types.TaskDetection:      {},
	types.TaskReconstruction: {},
}

// BuildContext validates the raw inputs and produces the immutable
// variable context for this run. The module name is derived from the
// project name unless explicitly overridden; either way it must be a
// valid identifier because it becomes a source path segment. Author
// keys are only set when provided, so a template referencing a missing
// one fails at render time naming the key.
func BuildContext(ctx context.Context, opts ContextOptions) (types.Context, error) {
	projectName := strings.TrimSpace(opts.ProjectName)
	if projectName == "" {
		return types.Context{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project name is required")
	}

	moduleName := strings.TrimSpace(opts.ModuleName)
	if moduleName == "" {
		moduleName = DeriveModuleName(projectName)
	}
	if !ValidIdentifier(moduleName) {
		return types.Context{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("module name %q is not a valid identifier", moduleName))
	}

	task := types.TaskProfile(strings.TrimSpace(opts.Task))
	if task == "" {
		task = types.TaskClassification
	}
	if _, ok := taskProfiles[task]; !ok {
		return types.Context{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown task profile %q", task))
	}

	values := map[string]string{
		types.KeyProjectName: projectName,
		types.KeyModuleName:  moduleName,
	}
	if name := strings.TrimSpace(opts.AuthorName); name != "" {
		values[types.KeyAuthorName] = name
	}
	if email := strings.TrimSpace(opts.AuthorEmail); email != "" {
		values[types.KeyAuthorEmail] = email
	}

	log.Ctx(ctx).Debug().
		Str("project", projectName).
		Str("module", moduleName).
		Str("task", string(task)).
		Msg("variable context built")
	return types.Context{Values: values, Task: task}, nil
}
