package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mlscaffold/internal/ports"
	"mlscaffold/internal/types"
)

// Planner assembles the complete synthesis plan: the encoded manifest,
// pipeline and parameter documents plus every rendered template. All
// rendering and consistency checks happen here, before a single file
// is written, so a failing run leaves the target tree untouched.
type Planner struct {
	Templates ports.TemplateSourcePort
	Manifests ports.ManifestEncoderPort
	Pipelines ports.PipelineEncoderPort
	Manifest  ManifestBuilder
	Pipeline  PipelineBuilder
}

func NewPlanner(templates ports.TemplateSourcePort, manifests ports.ManifestEncoderPort, pipelines ports.PipelineEncoderPort) Planner {
	return Planner{
		Templates: templates,
		Manifests: manifests,
		Pipelines: pipelines,
		Manifest:  NewManifestBuilder(),
		Pipeline:  NewPipelineBuilder(),
	}
}

// Destinations of the generated structured documents.
const (
	DestManifest        = "pyproject.toml"
	DestMainPipeline    = "dvc.yaml"
	DestReleasePipeline = "dvc-release.yaml"
	DestParams          = "params.yaml"
)

func (p Planner) BuildPlan(ctx context.Context, vars types.Context) (types.Plan, error) {
	manifest, err := p.Manifest.Build(ctx, vars)
	if err != nil {
		return types.Plan{}, err
	}
	main, release, err := p.Pipeline.Build(ctx, vars)
	if err != nil {
		return types.Plan{}, err
	}

	var plan types.Plan
	add := func(dest string, content []byte) {
		plan.Entries = append(plan.Entries, types.PlanEntry{
			Path:    dest,
			Content: content,
			Mode:    types.WriteModeCreateIfAbsent,
		})
	}

	manifestDoc, err := p.Manifests.EncodeManifest(manifest)
	if err != nil {
		return types.Plan{}, err
	}
	add(DestManifest, manifestDoc)

	mainDoc, err := p.Pipelines.EncodeGraph(main)
	if err != nil {
		return types.Plan{}, err
	}
	add(DestMainPipeline, mainDoc)

	releaseDoc, err := p.Pipelines.EncodeGraph(release)
	if err != nil {
		return types.Plan{}, err
	}
	add(DestReleasePipeline, releaseDoc)

	paramsDoc, err := p.Pipelines.EncodeParams(BuildParams(vars))
	if err != nil {
		return types.Plan{}, err
	}
	add(DestParams, paramsDoc)

	// Templates render against the run context extended with
	// generator-derived values such as the container apt pin line.
	renderVars := vars.With(map[string]string{
		"aptPackages": formatAptPins(manifest.System),
	})
	for _, descriptor := range p.Templates.List() {
		if !descriptor.AppliesTo(vars.Task) {
			continue
		}
		body, err := p.Templates.Load(descriptor.LogicalPath)
		if err != nil {
			return types.Plan{}, err
		}
		dest, err := RenderString(descriptor.LogicalPath, descriptor.Destination, renderVars)
		if err != nil {
			return types.Plan{}, err
		}
		content := body
		if descriptor.Mode == types.RenderModeSubstitute {
			content, err = Render(descriptor.LogicalPath, body, renderVars)
			if err != nil {
				return types.Plan{}, err
			}
		}
		add(dest, content)
	}

	if err := checkPlanConsistency(plan, []types.Graph{main, release}); err != nil {
		return types.Plan{}, err
	}
	log.Ctx(ctx).Debug().Int("entries", len(plan.Entries)).Msg("synthesis plan built")
	return plan, nil
}

func formatAptPins(pkgs []types.SystemPackage) string {
	pins := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		pins = append(pins, fmt.Sprintf("%s=%s", pkg.Name, pkg.Version))
	}
	return strings.Join(pins, " ")
}

// checkPlanConsistency rejects duplicate destinations and, critically,
// any pipeline stage dependency under src/ that the plan does not
// actually generate. This is the guard against a pipeline definition
// and the source layout disagreeing on the module-name segment.
func checkPlanConsistency(plan types.Plan, graphs []types.Graph) error {
	destinations := map[string]struct{}{}
	for _, entry := range plan.Entries {
		if _, dup := destinations[entry.Path]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("synthesis plan has two entries for destination %s", entry.Path))
		}
		destinations[entry.Path] = struct{}{}
	}
	for _, graph := range graphs {
		for _, stage := range graph.Stages {
			for _, dep := range stage.Deps {
				if !strings.HasPrefix(dep, "src/") {
					continue
				}
				if _, ok := destinations[dep]; !ok {
					return errbuilder.New().
						WithCode(errbuilder.CodeFailedPrecondition).
						WithMsg(fmt.Sprintf("inconsistent pipeline path %q: stage %s of graph %s references a source file the plan does not generate", dep, stage.Name, graph.Name))
				}
			}
		}
	}
	return nil
}
