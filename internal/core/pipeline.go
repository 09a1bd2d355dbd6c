package core

import (
	"context"
	"fmt"
	"path"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mlscaffold/internal/types"
)

// Well-known target-tree paths the pipeline stages exchange artifacts
// through. Source entry points are not listed here because they carry
// the module-name segment and are derived per run.
const (
	PathRawData       = "data/raw"
	PathProcessedData = "data/processed"
	PathModelArtifact = "models/model.ckpt"
	PathTrainLogs     = "logs"
	PathEvalReport    = "evaluation_results.json"
	PathONNXModel     = "releases/model.onnx"
	PathModelInfo     = "releases/model_info.json"
	PathTagMarker     = "releases/.git_tag_created"
	PathUploadMarker  = "releases/.s3_upload_complete"
)

// Command prefix that puts the generated module on the resolution path
// in the target environment. Every stage command must carry it; a bare
// "python" invocation would not resolve the project's own module.
const activationPrefix = "poetry run"

type PipelineBuilder struct{}

func NewPipelineBuilder() PipelineBuilder {
	return PipelineBuilder{}
}

// Build constructs the main and release pipeline graphs for the
// project described by vars. Every source path referenced by a stage
// is derived from the same module name as the rest of the generated
// tree, so the graphs cannot drift from the source layout. Both graphs
// are validated before being returned.
func (b PipelineBuilder) Build(ctx context.Context, vars types.Context) (types.Graph, types.Graph, error) {
	srcRoot := path.Join("src", vars.ModuleName())
	module := vars.ModuleName()

	main := types.Graph{
		Name: "main",
		Stages: []types.Stage{
			{
				Name:   "preprocess",
				Cmd:    stageCmd(module, "data.preprocess"),
				Deps:   []string{PathRawData, path.Join(srcRoot, "data/preprocess.py")},
				Outs:   []string{PathProcessedData},
				Params: []string{"preprocess"},
			},
			{
				Name:   "train",
				Cmd:    stageCmd(module, "train"),
				Deps:   []string{PathProcessedData, path.Join(srcRoot, "train.py")},
				Outs:   []string{PathModelArtifact, PathTrainLogs},
				Params: []string{"training"},
			},
			{
				Name:   "evaluate",
				Cmd:    stageCmd(module, "eval"),
				Deps:   []string{PathModelArtifact, PathProcessedData, path.Join(srcRoot, "eval.py")},
				Outs:   []string{PathEvalReport},
				Params: []string{"evaluation"},
			},
		},
	}

	release := types.Graph{
		Name: "release",
		Stages: []types.Stage{
			{
				Name:   "export",
				Cmd:    stageCmd(module, "scripts.export_and_benchmark"),
				Deps:   []string{PathModelArtifact, path.Join(srcRoot, "scripts/export_and_benchmark.py")},
				Outs:   []string{PathONNXModel, PathModelInfo},
				Params: []string{"export"},
			},
			{
				Name:       "tag",
				Cmd:        stageCmd(module, "scripts.release") + " --step tag",
				Deps:       []string{PathONNXModel, path.Join(srcRoot, "scripts/release.py")},
				MarkerOuts: []string{PathTagMarker},
				Params:     []string{"release"},
			},
			{
				Name:       "upload",
				Cmd:        stageCmd(module, "scripts.release") + " --step upload",
				Deps:       []string{PathTagMarker},
				MarkerOuts: []string{PathUploadMarker},
				Params:     []string{"release"},
			},
		},
	}

	external := externalInputs(srcRoot)
	if err := ValidateGraph(ctx, main, external); err != nil {
		return types.Graph{}, types.Graph{}, err
	}
	// The release graph starts from the model artifact the main graph
	// produced in an earlier run, so that path counts as external here.
	releaseExternal := copySet(external)
	releaseExternal[PathModelArtifact] = struct{}{}
	if err := ValidateGraph(ctx, release, releaseExternal); err != nil {
		return types.Graph{}, types.Graph{}, err
	}

	log.Ctx(ctx).Debug().
		Int("main_stages", len(main.Stages)).
		Int("release_stages", len(release.Stages)).
		Msg("pipeline graphs built")
	return main, release, nil
}

func stageCmd(module string, entry string) string {
	return fmt.Sprintf("%s python -m %s.%s", activationPrefix, module, entry)
}

// externalInputs is the set of dependency paths a stage may reference
// without any stage producing them: the raw data drop and the
// generated source entry points.
func externalInputs(srcRoot string) map[string]struct{} {
	external := map[string]struct{}{
		PathRawData: {},
	}
	for _, rel := range []string{
		"data/preprocess.py",
		"train.py",
		"eval.py",
		"scripts/export_and_benchmark.py",
		"scripts/release.py",
	} {
		external[path.Join(srcRoot, rel)] = struct{}{}
	}
	return external
}

// ValidateGraph enforces the chaining invariant: every dependency path
// of every stage must either be produced as an output by an earlier
// stage or be a declared external input. Violations are rejected here,
// at generation time, not left for the downstream runner to discover.
func ValidateGraph(ctx context.Context, graph types.Graph, external map[string]struct{}) error {
	produced := copySet(external)
	seen := map[string]struct{}{}
	for _, stage := range graph.Stages {
		if stage.Name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("graph %s has a stage without a name", graph.Name))
		}
		if _, dup := seen[stage.Name]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("graph %s declares stage %s twice", graph.Name, stage.Name))
		}
		seen[stage.Name] = struct{}{}
		for _, dep := range stage.Deps {
			if _, ok := produced[dep]; !ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(fmt.Sprintf("inconsistent pipeline path %q: stage %s of graph %s depends on it but no earlier stage produces it", dep, stage.Name, graph.Name))
			}
		}
		for _, out := range stage.AllOuts() {
			produced[out] = struct{}{}
		}
	}
	log.Ctx(ctx).Debug().Str("graph", graph.Name).Msg("pipeline graph validated")
	return nil
}

func copySet(set map[string]struct{}) map[string]struct{} {
	copied := make(map[string]struct{}, len(set))
	for key := range set {
		copied[key] = struct{}{}
	}
	return copied
}

// BuildParams seeds the default parameter document for the selected
// task profile. The engine only writes these defaults; the generated
// stages read and interpret them at run time.
func BuildParams(vars types.Context) types.Params {
	params := types.Params{
		Preprocess: types.PreprocessParams{
			RawDir:       PathRawData,
			ProcessedDir: PathProcessedData,
			ValSplit:     0.2,
			Seed:         42,
		},
		Training: types.TrainingParams{
			Epochs:       10,
			BatchSize:    64,
			LearningRate: 1e-3,
		},
		Evaluation: types.EvaluationParams{
			BatchSize: 128,
		},
		Export: types.ExportParams{
			OpsetVersion: 17,
			InputName:    "input",
			OutputName:   "output",
		},
		Release: types.ReleaseParams{
			Bucket: "ml-data",
			Prefix: path.Join("models", vars.ProjectName()),
		},
	}
	switch vars.Task {
	case types.TaskDetection:
		params.Training.ImageSize = 640
		params.Training.NumClasses = 80
		params.Evaluation.Metrics = []string{"map", "map_50"}
	case types.TaskReconstruction:
		params.Training.ImageSize = 256
		params.Training.LatentDim = 128
		params.Evaluation.Metrics = []string{"mse", "ssim"}
	default:
		params.Training.ImageSize = 28
		params.Training.NumClasses = 10
		params.Evaluation.Metrics = []string{"accuracy", "f1"}
	}
	return params
}
