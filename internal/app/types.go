package app

import (
	"time"

	"mlscaffold/internal/types"
)

// ScaffoldRequest carries the resolved scaffolding inputs. The CLI
// layer has already merged flags and environment overrides; nothing in
// the application layer reads the environment.
type ScaffoldRequest struct {
	ProjectName string
	ModuleName  string
	AuthorName  string
	AuthorEmail string
	Task        string
	TargetDir   string
	Force       bool
}

type ScaffoldResult struct {
	ProjectName string
	ModuleName  string
	Task        types.TaskProfile
	Report      types.Report
	FinishedAt  time.Time
}

// PlanRequest is ScaffoldRequest without the write step.
type PlanRequest struct {
	ProjectName string
	ModuleName  string
	AuthorName  string
	AuthorEmail string
	Task        string
}

type PlanEntrySummary struct {
	Path string
	Mode types.WriteMode
	Size int
}

type PlanResult struct {
	ProjectName string
	ModuleName  string
	Entries     []PlanEntrySummary
}

type TemplatesResult struct {
	Entries []types.TemplateDescriptor
}
