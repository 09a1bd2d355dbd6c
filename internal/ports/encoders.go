package ports

import "mlscaffold/internal/types"

// ManifestEncoderPort serializes the dependency manifest into the
// structured document the downstream package manager consumes.
type ManifestEncoderPort interface {
	EncodeManifest(manifest types.Manifest) ([]byte, error)
}

// PipelineEncoderPort serializes pipeline graphs and the seeded
// parameter document for the downstream pipeline runner.
type PipelineEncoderPort interface {
	EncodeGraph(graph types.Graph) ([]byte, error)
	EncodeParams(params types.Params) ([]byte, error)
}
