package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"mlscaffold/internal/core"
	"mlscaffold/internal/types"
)

// Scaffold runs one complete synthesis: build the variable context,
// assemble and validate the full plan, then apply it to the target
// tree. Any validation failure aborts before the first write. The
// returned result carries the apply report even when apply failed
// partway, so the caller can see exactly which files were written.
func (s Service) Scaffold(ctx context.Context, req ScaffoldRequest) (ScaffoldResult, error) {
	vars, plan, err := s.buildPlan(ctx, req.ProjectName, req.ModuleName, req.AuthorName, req.AuthorEmail, req.Task)
	if err != nil {
		return ScaffoldResult{}, err
	}

	targetDir := req.TargetDir
	if targetDir == "" {
		targetDir = "."
	}
	writer := s.NewWriter(targetDir)
	report, applyErr := writer.Apply(ctx, plan, req.Force)

	result := ScaffoldResult{
		ProjectName: vars.ProjectName(),
		ModuleName:  vars.ModuleName(),
		Task:        vars.Task,
		Report:      report,
		FinishedAt:  s.Clock(),
	}
	if applyErr != nil {
		log.Ctx(ctx).Error().
			Int("written", report.WrittenCount()).
			Msg("synthesis aborted partway; written files are listed in the report")
		return result, applyErr
	}
	return result, nil
}

// Plan is the dry run: identical rendering and validation, no writes.
func (s Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	vars, plan, err := s.buildPlan(ctx, req.ProjectName, req.ModuleName, req.AuthorName, req.AuthorEmail, req.Task)
	if err != nil {
		return PlanResult{}, err
	}
	result := PlanResult{
		ProjectName: vars.ProjectName(),
		ModuleName:  vars.ModuleName(),
	}
	for _, entry := range plan.Entries {
		result.Entries = append(result.Entries, PlanEntrySummary{
			Path: entry.Path,
			Mode: entry.Mode,
			Size: len(entry.Content),
		})
	}
	return result, nil
}

// Templates lists the template catalog.
func (s Service) Templates(_ context.Context) TemplatesResult {
	return TemplatesResult{Entries: s.Catalog.List()}
}

func (s Service) buildPlan(ctx context.Context, projectName, moduleName, authorName, authorEmail, task string) (types.Context, types.Plan, error) {
	vars, err := core.BuildContext(ctx, core.ContextOptions{
		ProjectName: projectName,
		ModuleName:  moduleName,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		Task:        task,
	})
	if err != nil {
		return types.Context{}, types.Plan{}, err
	}
	planner := core.NewPlanner(s.Catalog, s.Manifests, s.Pipelines)
	plan, err := planner.BuildPlan(ctx, vars)
	if err != nil {
		return types.Context{}, types.Plan{}, err
	}
	return vars, plan, nil
}
