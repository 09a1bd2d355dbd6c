package core

import (
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlscaffold/internal/adapters"
	"mlscaffold/internal/types"
)

func testPlanner() Planner {
	return NewPlanner(
		adapters.NewTemplateCatalogAdapter(),
		adapters.NewManifestTOMLAdapter(),
		adapters.NewPipelineYAMLAdapter(),
	)
}

func fullContext(t *testing.T) types.Context {
	t.Helper()
	vars, err := BuildContext(t.Context(), ContextOptions{
		ProjectName: "new-cool-project-name",
		AuthorName:  "Dev",
		AuthorEmail: "dev@example.com",
	})
	require.NoError(t, err)
	return vars
}

func TestBuildPlanHasNoResidualPlaceholders(t *testing.T) {
	plan, err := testPlanner().BuildPlan(t.Context(), fullContext(t))
	require.NoError(t, err)
	require.NotEmpty(t, plan.Entries)
	for _, entry := range plan.Entries {
		assert.Empty(t, placeholderPattern.FindAll(entry.Content, -1),
			"residual placeholder in %s", entry.Path)
		assert.NotContains(t, entry.Path, "{{")
	}
}

func TestBuildPlanCoversGeneratedDocuments(t *testing.T) {
	plan, err := testPlanner().BuildPlan(t.Context(), fullContext(t))
	require.NoError(t, err)
	for _, dest := range []string{
		DestManifest, DestMainPipeline, DestReleasePipeline, DestParams,
		".gitignore", "Dockerfile", ".circleci/config.yml", ".dvc/config", ".env.example",
		"src/new_cool_project_name/__init__.py",
		"src/new_cool_project_name/train.py",
		"src/new_cool_project_name/model/model.py",
		"tests/test_basic.py",
		"tests/test_model.py",
	} {
		_, ok := plan.Entry(dest)
		assert.True(t, ok, "plan missing destination %s", dest)
	}
}

func TestBuildPlanEntriesDefaultToCreateIfAbsent(t *testing.T) {
	plan, err := testPlanner().BuildPlan(t.Context(), fullContext(t))
	require.NoError(t, err)
	for _, entry := range plan.Entries {
		assert.Equal(t, types.WriteModeCreateIfAbsent, entry.Mode, "entry %s", entry.Path)
	}
}

func TestBuildPlanSourceDepsAreGenerated(t *testing.T) {
	vars := fullContext(t)
	plan, err := testPlanner().BuildPlan(t.Context(), vars)
	require.NoError(t, err)

	main, release, err := NewPipelineBuilder().Build(t.Context(), vars)
	require.NoError(t, err)
	for _, graph := range []types.Graph{main, release} {
		for _, stage := range graph.Stages {
			for _, dep := range stage.Deps {
				if !strings.HasPrefix(dep, "src/") {
					continue
				}
				_, ok := plan.Entry(dep)
				assert.True(t, ok, "stage %s dep %s is not generated by the plan", stage.Name, dep)
			}
		}
	}
}

func TestBuildPlanMissingAuthorEmailFails(t *testing.T) {
	vars, err := BuildContext(t.Context(), ContextOptions{
		ProjectName: "demo",
		AuthorName:  "Dev",
	})
	require.NoError(t, err)

	_, err = testPlanner().BuildPlan(t.Context(), vars)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, errorText(err), "authorEmail")
}

func TestBuildPlanDockerfileCarriesAptPins(t *testing.T) {
	plan, err := testPlanner().BuildPlan(t.Context(), fullContext(t))
	require.NoError(t, err)
	entry, ok := plan.Entry("Dockerfile")
	require.True(t, ok)
	assert.Contains(t, string(entry.Content), "git=1:2.43.0-1ubuntu7")
}

func TestBuildPlanTaskVariantSelectsModelStub(t *testing.T) {
	vars, err := BuildContext(t.Context(), ContextOptions{
		ProjectName: "demo",
		AuthorName:  "Dev",
		AuthorEmail: "dev@example.com",
		Task:        string(types.TaskReconstruction),
	})
	require.NoError(t, err)
	plan, err := testPlanner().BuildPlan(t.Context(), vars)
	require.NoError(t, err)

	model, ok := plan.Entry("src/demo/model/model.py")
	require.True(t, ok)
	assert.Contains(t, string(model.Content), "SimpleAutoencoder")

	smoke, ok := plan.Entry("tests/test_model.py")
	require.True(t, ok)
	assert.Contains(t, string(smoke.Content), "SimpleAutoencoder")
}

func TestCheckPlanConsistencyRejectsMissingSource(t *testing.T) {
	plan := types.Plan{Entries: []types.PlanEntry{
		{Path: "dvc.yaml", Mode: types.WriteModeCreateIfAbsent},
	}}
	graph := types.Graph{
		Name: "main",
		Stages: []types.Stage{
			{Name: "train", Cmd: "run", Deps: []string{"src/other_module/train.py"}},
		},
	}
	err := checkPlanConsistency(plan, []types.Graph{graph})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, errorText(err), "src/other_module/train.py")
}

func TestCheckPlanConsistencyRejectsDuplicateDestination(t *testing.T) {
	plan := types.Plan{Entries: []types.PlanEntry{
		{Path: "pyproject.toml"},
		{Path: "pyproject.toml"},
	}}
	err := checkPlanConsistency(plan, nil)
	require.Error(t, err)
	assert.Contains(t, errorText(err), "pyproject.toml")
}
