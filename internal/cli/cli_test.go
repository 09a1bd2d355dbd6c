package cli

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"new", "plan", "templates"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		assert.True(t, found, "root command is missing %q", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, version, root.Version)
}

func TestNewCommandFlags(t *testing.T) {
	cmd := newNewCommand()
	for _, name := range []string{"name", "module", "author-name", "author-email", "task", "dir", "force"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "new command is missing --%s", name)
	}
	task, err := cmd.Flags().GetString("task")
	require.NoError(t, err)
	assert.Equal(t, "classification", task)
	dir, err := cmd.Flags().GetString("dir")
	require.NoError(t, err)
	assert.Equal(t, ".", dir)
}

func TestPlanCommandFlags(t *testing.T) {
	cmd := newPlanCommand()
	for _, name := range []string{"name", "module", "author-name", "author-email", "task"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "plan command is missing --%s", name)
	}
	assert.Nil(t, cmd.Flags().Lookup("dir"), "plan must not take a target directory")
	assert.Nil(t, cmd.Flags().Lookup("force"))
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("bad input"), 2},
		{"failed precondition", errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).WithMsg("unresolved"), 4},
		{"not found", errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("missing"), 5},
		{"internal", errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("io"), 5},
		{"plain error", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeForError(tt.err))
		})
	}
}

func TestErrorMessagePrefersBuilderMessage(t *testing.T) {
	err := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("project name is required").
		WithCause(errors.New("underlying"))
	assert.Equal(t, "project name is required", errorMessage(err))
	assert.Equal(t, "boom", errorMessage(errors.New("boom")))
}
