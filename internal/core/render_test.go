package core

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlscaffold/internal/types"
)

func testContext(values map[string]string) types.Context {
	return types.Context{Values: values, Task: types.TaskClassification}
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	vars := testContext(map[string]string{"projectName": "foo"})
	out, err := Render("ci.yml", []byte("{{ projectName }}-build"), vars)
	require.NoError(t, err)
	assert.Equal(t, "foo-build", string(out))
}

func TestRenderHandlesWhitespaceVariants(t *testing.T) {
	vars := testContext(map[string]string{"moduleName": "demo"})
	out, err := Render("t", []byte("{{moduleName}} {{ moduleName }} {{  moduleName  }}"), vars)
	require.NoError(t, err)
	assert.Equal(t, "demo demo demo", string(out))
}

func TestRenderValuesInsertedVerbatim(t *testing.T) {
	vars := testContext(map[string]string{"projectName": `a"b\c`})
	out, err := Render("t", []byte("{{ projectName }}"), vars)
	require.NoError(t, err)
	assert.Equal(t, `a"b\c`, string(out))
}

func TestRenderMissingKeyFails(t *testing.T) {
	vars := testContext(map[string]string{"projectName": "foo"})
	_, err := Render("src/__init__.py", []byte("{{ authorEmail }}"), vars)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, errorText(err), "authorEmail")
	assert.Contains(t, errorText(err), "src/__init__.py")
}

func TestRenderReportsAllMissingKeysSorted(t *testing.T) {
	vars := testContext(map[string]string{})
	_, err := Render("t", []byte("{{ zeta }} {{ alpha }} {{ zeta }}"), vars)
	require.Error(t, err)
	assert.Contains(t, errorText(err), "alpha, zeta")
}

func TestRenderLeavesNonPlaceholderBracesAlone(t *testing.T) {
	vars := testContext(map[string]string{"x": "1"})
	body := "dict = {1: 2} and ${shellVar} stay as-is {{ x }}"
	out, err := Render("t", []byte(body), vars)
	require.NoError(t, err)
	assert.Equal(t, "dict = {1: 2} and ${shellVar} stay as-is 1", string(out))
}

func errorText(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return builder.Msg
	}
	return err.Error()
}
