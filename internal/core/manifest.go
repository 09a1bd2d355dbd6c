package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"
	"github.com/rs/zerolog/log"

	"mlscaffold/internal/shared"
	"mlscaffold/internal/types"
)

// Optional group names of the default manifest. The export and cv
// groups carry GPU/ONNX and vision extras that are heavy and platform
// sensitive; nothing in the core set or the default pipeline stages
// may depend on them.
const (
	GroupExport = "export"
	GroupCV     = "cv"
	GroupDev    = "dev"
)

const registryPyTorch = "pytorch"

type ManifestBuilder struct{}

func NewManifestBuilder() ManifestBuilder {
	return ManifestBuilder{}
}

// Build assembles the default dependency manifest for the project
// described by vars and validates its invariants: unique names per
// set, groups disjoint from the core set and from each other, every
// constraint a valid PEP 440 specifier set, every pinned registry
// declared, and every system package version a valid Debian version.
func (b ManifestBuilder) Build(ctx context.Context, vars types.Context) (types.Manifest, error) {
	assert.NotEmpty(ctx, vars.ProjectName(), "project name must be set")
	assert.NotEmpty(ctx, vars.ModuleName(), "module name must be set")

	// The authors entry goes through the substitution engine so a
	// missing author key fails the run the same way a template
	// referencing it would, before anything is written.
	author, err := RenderString("pyproject.toml:authors", "{{ authorName }} <{{ authorEmail }}>", vars)
	if err != nil {
		return types.Manifest{}, err
	}

	manifest := types.Manifest{
		ProjectName:      vars.ProjectName(),
		ModuleName:       vars.ModuleName(),
		Version:          "0.1.0",
		Description:      fmt.Sprintf("%s training and release pipelines", vars.ProjectName()),
		Authors:          []string{author},
		PythonConstraint: ">=3.10,<4.0",
		Registries: []types.Registry{
			{Name: registryPyTorch, URL: "https://download.pytorch.org/whl/cu128", Priority: "explicit"},
		},
		Core: types.DependencySet{
			{Name: "lightning", Constraint: ">=2.5.0,<3.0.0"},
			{Name: "torch", Constraint: "==2.7.1", Source: registryPyTorch},
			{Name: "torchmetrics", Constraint: ">=1.5.0,<2.0.0"},
			{Name: "tensorboard", Constraint: ">=2.18.0,<3.0.0"},
			{Name: "dvc", Constraint: ">=3.64.0,<4.0.0", Extras: []string{"s3"}},
			{Name: "boto3", Constraint: ">=1.35.0,<2.0.0"},
			{Name: "numpy", Constraint: ">=1.26.0,<2.0.0"},
			{Name: "tqdm", Constraint: ">=4.66.0,<5.0.0"},
			{Name: "python-dotenv", Constraint: ">=1.0.0,<2.0.0"},
			{Name: "gitpython", Constraint: ">=3.1.0,<4.0.0"},
		},
		Groups: []types.DependencyGroup{
			{Name: GroupExport, Optional: true, Deps: types.DependencySet{
				{Name: "onnx", Constraint: ">=1.16.0,<2.0.0"},
				{Name: "onnxruntime-gpu", Constraint: ">=1.18.0,<2.0.0"},
			}},
			{Name: GroupCV, Optional: true, Deps: cvGroupDeps(vars.Task)},
			{Name: GroupDev, Deps: types.DependencySet{
				{Name: "pytest", Constraint: ">=8.0.0,<9.0.0"},
				{Name: "ruff", Constraint: ">=0.9.0,<0.10.0"},
			}},
		},
		System: []types.SystemPackage{
			{Name: "git", Version: "1:2.43.0-1ubuntu7"},
			{Name: "curl", Version: "8.5.0-2ubuntu10"},
			{Name: "libgl1", Version: "1.7.0-1build1"},
			{Name: "libglib2.0-0t64", Version: "2.80.0-6ubuntu1"},
		},
	}

	if err := validateManifest(manifest); err != nil {
		return types.Manifest{}, err
	}
	log.Ctx(ctx).Debug().
		Int("core", len(manifest.Core)).
		Int("groups", len(manifest.Groups)).
		Msg("dependency manifest built")
	return manifest, nil
}

func cvGroupDeps(task types.TaskProfile) types.DependencySet {
	deps := types.DependencySet{
		{Name: "torchvision", Constraint: "==0.22.1", Source: registryPyTorch},
		{Name: "matplotlib", Constraint: ">=3.8.0,<4.0.0"},
	}
	if task == types.TaskDetection {
		deps = append(deps, types.Dependency{Name: "pycocotools", Constraint: ">=2.0.7,<3.0.0"})
	}
	return deps
}

func validateManifest(manifest types.Manifest) error {
	registries := map[string]struct{}{}
	for _, registry := range manifest.Registries {
		registries[registry.Name] = struct{}{}
	}

	coreNames, err := validateSet("core", manifest.Core, registries)
	if err != nil {
		return err
	}
	groupNames := map[string]map[string]struct{}{}
	for _, group := range manifest.Groups {
		names, err := validateSet(group.Name, group.Deps, registries)
		if err != nil {
			return err
		}
		groupNames[group.Name] = names
	}

	for _, group := range manifest.Groups {
		for name := range groupNames[group.Name] {
			if _, clash := coreNames[name]; clash {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("dependency %s appears in both core set and group %s", name, group.Name))
			}
		}
	}
	for i, group := range manifest.Groups {
		for _, other := range manifest.Groups[i+1:] {
			for name := range groupNames[group.Name] {
				if _, clash := groupNames[other.Name][name]; clash {
					return errbuilder.New().
						WithCode(errbuilder.CodeInvalidArgument).
						WithMsg(fmt.Sprintf("dependency %s appears in both group %s and group %s", name, group.Name, other.Name))
				}
			}
		}
	}

	for _, pkg := range manifest.System {
		if _, err := debversion.NewVersion(pkg.Version); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("system package %s has invalid debian version %q", pkg.Name, pkg.Version)).
				WithCause(err)
		}
	}
	return nil
}

func validateSet(setName string, deps types.DependencySet, registries map[string]struct{}) (map[string]struct{}, error) {
	names := map[string]struct{}{}
	for _, dep := range deps {
		normalized := shared.NormalizePipName(dep.Name)
		if normalized == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("dependency with empty name in set %s", setName))
		}
		if _, dup := names[normalized]; dup {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("dependency %s declared twice in set %s", normalized, setName))
		}
		names[normalized] = struct{}{}
		if _, err := pep440.NewSpecifiers(dep.Constraint); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("dependency %s in set %s has invalid constraint %q", dep.Name, setName, dep.Constraint)).
				WithCause(err)
		}
		if dep.Source != "" {
			if _, ok := registries[dep.Source]; !ok {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("dependency %s in set %s pins unknown registry %s", dep.Name, setName, dep.Source))
			}
		}
	}
	return names, nil
}
