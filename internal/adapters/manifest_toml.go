package adapters

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pelletier/go-toml/v2"

	"mlscaffold/internal/ports"
	"mlscaffold/internal/types"
)

// ManifestTOMLAdapter serializes the dependency manifest as a poetry
// pyproject.toml. The adapter only encodes; all content policy lives
// in the manifest builder.
type ManifestTOMLAdapter struct{}

func NewManifestTOMLAdapter() ManifestTOMLAdapter {
	return ManifestTOMLAdapter{}
}

type pyprojectDoc struct {
	Tool        toolSection      `toml:"tool"`
	BuildSystem buildSystemTable `toml:"build-system"`
}

type toolSection struct {
	Poetry poetryTable `toml:"poetry"`
	Ruff   ruffTable   `toml:"ruff"`
	Pytest pytestTable `toml:"pytest"`
}

type poetryTable struct {
	Name         string                `toml:"name"`
	Version      string                `toml:"version"`
	Description  string                `toml:"description"`
	Authors      []string              `toml:"authors"`
	Packages     []packageInclude      `toml:"packages"`
	Source       []sourceTable         `toml:"source,omitempty"`
	Dependencies map[string]any        `toml:"dependencies"`
	Group        map[string]groupTable `toml:"group,omitempty"`
}

type packageInclude struct {
	Include string `toml:"include"`
	From    string `toml:"from"`
}

type sourceTable struct {
	Name     string `toml:"name"`
	URL      string `toml:"url"`
	Priority string `toml:"priority"`
}

type groupTable struct {
	Optional     bool           `toml:"optional"`
	Dependencies map[string]any `toml:"dependencies"`
}

type ruffTable struct {
	LineLength    int           `toml:"line-length"`
	TargetVersion string        `toml:"target-version"`
	Lint          ruffLintTable `toml:"lint"`
}

type ruffLintTable struct {
	Select []string `toml:"select"`
}

type pytestTable struct {
	IniOptions pytestIniTable `toml:"ini_options"`
}

type pytestIniTable struct {
	Testpaths []string `toml:"testpaths"`
}

type buildSystemTable struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

func (a ManifestTOMLAdapter) EncodeManifest(manifest types.Manifest) ([]byte, error) {
	dependencies := map[string]any{
		"python": manifest.PythonConstraint,
	}
	for _, dep := range manifest.Core {
		dependencies[dep.Name] = dependencyValue(dep)
	}

	groups := map[string]groupTable{}
	for _, group := range manifest.Groups {
		deps := map[string]any{}
		for _, dep := range group.Deps {
			deps[dep.Name] = dependencyValue(dep)
		}
		groups[group.Name] = groupTable{Optional: group.Optional, Dependencies: deps}
	}

	sources := make([]sourceTable, 0, len(manifest.Registries))
	for _, registry := range manifest.Registries {
		sources = append(sources, sourceTable{
			Name:     registry.Name,
			URL:      registry.URL,
			Priority: registry.Priority,
		})
	}

	doc := pyprojectDoc{
		Tool: toolSection{
			Poetry: poetryTable{
				Name:         manifest.ProjectName,
				Version:      manifest.Version,
				Description:  manifest.Description,
				Authors:      manifest.Authors,
				Packages:     []packageInclude{{Include: manifest.ModuleName, From: "src"}},
				Source:       sources,
				Dependencies: dependencies,
				Group:        groups,
			},
			Ruff: ruffTable{
				LineLength:    120,
				TargetVersion: "py310",
				Lint:          ruffLintTable{Select: []string{"E", "F", "I"}},
			},
			Pytest: pytestTable{
				IniOptions: pytestIniTable{Testpaths: []string{"tests"}},
			},
		},
		BuildSystem: buildSystemTable{
			Requires:     []string{"poetry-core"},
			BuildBackend: "poetry.core.masonry.api",
		},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode dependency manifest").
			WithCause(err)
	}
	return data, nil
}

// dependencyValue encodes a dependency as a bare constraint string or,
// when it carries a source or extras, as an inline table.
func dependencyValue(dep types.Dependency) any {
	if dep.Source == "" && len(dep.Extras) == 0 {
		return dep.Constraint
	}
	value := map[string]any{"version": dep.Constraint}
	if dep.Source != "" {
		value["source"] = dep.Source
	}
	if len(dep.Extras) > 0 {
		value["extras"] = dep.Extras
	}
	return value
}

var _ ports.ManifestEncoderPort = ManifestTOMLAdapter{}
