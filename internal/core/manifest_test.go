package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlscaffold/internal/shared"
	"mlscaffold/internal/types"
)

func manifestContext(t *testing.T, task types.TaskProfile) types.Context {
	t.Helper()
	vars, err := BuildContext(t.Context(), ContextOptions{
		ProjectName: "demo-project",
		AuthorName:  "Dev",
		AuthorEmail: "dev@example.com",
		Task:        string(task),
	})
	require.NoError(t, err)
	return vars
}

func TestManifestCoreDisjointFromGroups(t *testing.T) {
	builder := NewManifestBuilder()
	manifest, err := builder.Build(t.Context(), manifestContext(t, types.TaskClassification))
	require.NoError(t, err)

	core := map[string]struct{}{}
	for _, dep := range manifest.Core {
		core[shared.NormalizePipName(dep.Name)] = struct{}{}
	}
	for _, group := range manifest.Groups {
		for _, dep := range group.Deps {
			_, clash := core[shared.NormalizePipName(dep.Name)]
			assert.False(t, clash, "group %s dependency %s also in core", group.Name, dep.Name)
		}
	}
}

func TestManifestGroupsPairwiseDisjoint(t *testing.T) {
	builder := NewManifestBuilder()
	manifest, err := builder.Build(t.Context(), manifestContext(t, types.TaskDetection))
	require.NoError(t, err)

	seen := map[string]string{}
	for _, group := range manifest.Groups {
		for _, dep := range group.Deps {
			name := shared.NormalizePipName(dep.Name)
			other, dup := seen[name]
			assert.False(t, dup, "dependency %s in both %s and %s", name, other, group.Name)
			seen[name] = group.Name
		}
	}
}

func TestManifestExportGroupCarriesONNX(t *testing.T) {
	builder := NewManifestBuilder()
	manifest, err := builder.Build(t.Context(), manifestContext(t, types.TaskClassification))
	require.NoError(t, err)

	export, ok := manifest.Group(GroupExport)
	require.True(t, ok)
	assert.True(t, export.Optional)
	assert.Contains(t, export.Deps.Names(), "onnx")
	assert.Contains(t, export.Deps.Names(), "onnxruntime-gpu")
	assert.NotContains(t, manifest.Core.Names(), "onnx")
}

func TestManifestDetectionAddsCocoTools(t *testing.T) {
	builder := NewManifestBuilder()
	manifest, err := builder.Build(t.Context(), manifestContext(t, types.TaskDetection))
	require.NoError(t, err)
	cv, ok := manifest.Group(GroupCV)
	require.True(t, ok)
	assert.Contains(t, cv.Deps.Names(), "pycocotools")

	classification, err := builder.Build(t.Context(), manifestContext(t, types.TaskClassification))
	require.NoError(t, err)
	cv, ok = classification.Group(GroupCV)
	require.True(t, ok)
	assert.NotContains(t, cv.Deps.Names(), "pycocotools")
}

func TestManifestAuthorsRequireEmail(t *testing.T) {
	vars, err := BuildContext(t.Context(), ContextOptions{
		ProjectName: "demo",
		AuthorName:  "Dev",
	})
	require.NoError(t, err)

	builder := NewManifestBuilder()
	_, err = builder.Build(t.Context(), vars)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, errorText(err), "authorEmail")
}

func TestValidateManifestRejectsCoreGroupOverlap(t *testing.T) {
	manifest := types.Manifest{
		Core: types.DependencySet{{Name: "numpy", Constraint: ">=1.0"}},
		Groups: []types.DependencyGroup{
			{Name: "extras", Deps: types.DependencySet{{Name: "NumPy", Constraint: ">=1.0"}}},
		},
	}
	err := validateManifest(manifest)
	require.Error(t, err)
	assert.Contains(t, errorText(err), "numpy")
}

func TestValidateManifestRejectsBadConstraint(t *testing.T) {
	manifest := types.Manifest{
		Core: types.DependencySet{{Name: "numpy", Constraint: "^1.26.0"}},
	}
	err := validateManifest(manifest)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestValidateManifestRejectsUnknownRegistry(t *testing.T) {
	manifest := types.Manifest{
		Core: types.DependencySet{{Name: "torch", Constraint: "==2.7.1", Source: "nowhere"}},
	}
	err := validateManifest(manifest)
	require.Error(t, err)
	assert.Contains(t, errorText(err), "nowhere")
}

func TestValidateManifestRejectsBadDebianVersion(t *testing.T) {
	manifest := types.Manifest{
		System: []types.SystemPackage{{Name: "git", Version: "not a version!"}},
	}
	err := validateManifest(manifest)
	require.Error(t, err)
	assert.Contains(t, errorText(err), "git")
}

func TestManifestSystemPackagesValid(t *testing.T) {
	builder := NewManifestBuilder()
	manifest, err := builder.Build(t.Context(), manifestContext(t, types.TaskClassification))
	require.NoError(t, err)
	assert.NotEmpty(t, manifest.System)
}
