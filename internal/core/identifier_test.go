package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveModuleName(t *testing.T) {
	tests := []struct {
		name    string
		project string
		want    string
	}{
		{name: "hyphens", project: "new-cool-project-name", want: "new_cool_project_name"},
		{name: "mixed case", project: "My Project", want: "my_project"},
		{name: "already valid", project: "plain", want: "plain"},
		{name: "leading digit", project: "3d-vision", want: "_3d_vision"},
		{name: "dots and slashes", project: "a.b/c", want: "a_b_c"},
		{name: "surrounding space", project: "  padded  ", want: "padded"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveModuleName(tt.project)
			assert.Equal(t, tt.want, got)
			assert.True(t, ValidIdentifier(got), "derived name %q must be a valid identifier", got)
			// Derivation is idempotent: deriving from the result is a no-op.
			assert.Equal(t, got, DeriveModuleName(got))
		})
	}
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("module_1"))
	assert.True(t, ValidIdentifier("_private"))
	assert.False(t, ValidIdentifier("1module"))
	assert.False(t, ValidIdentifier("has-hyphen"))
	assert.False(t, ValidIdentifier(""))
	assert.False(t, ValidIdentifier("has space"))
}
