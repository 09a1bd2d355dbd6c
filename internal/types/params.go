package types

// Params is the seeded parameter document the generated pipeline stages
// read at run time. Each top-level key corresponds to one params
// sub-key declared on a stage; the engine seeds defaults per task
// profile and does not interpret the values further.
type Params struct {
	Preprocess PreprocessParams `yaml:"preprocess"`
	Training   TrainingParams   `yaml:"training"`
	Evaluation EvaluationParams `yaml:"evaluation"`
	Export     ExportParams     `yaml:"export"`
	Release    ReleaseParams    `yaml:"release"`
}

type PreprocessParams struct {
	RawDir       string  `yaml:"raw_dir"`
	ProcessedDir string  `yaml:"processed_dir"`
	ValSplit     float64 `yaml:"val_split"`
	Seed         int     `yaml:"seed"`
}

type TrainingParams struct {
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	LearningRate float64 `yaml:"learning_rate"`
	NumClasses   int     `yaml:"num_classes,omitempty"`
	ImageSize    int     `yaml:"image_size,omitempty"`
	LatentDim    int     `yaml:"latent_dim,omitempty"`
}

type EvaluationParams struct {
	BatchSize int      `yaml:"batch_size"`
	Metrics   []string `yaml:"metrics"`
}

type ExportParams struct {
	OpsetVersion int    `yaml:"opset_version"`
	InputName    string `yaml:"input_name"`
	OutputName   string `yaml:"output_name"`
}

type ReleaseParams struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}
