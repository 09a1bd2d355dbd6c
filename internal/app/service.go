package app

import (
	"time"

	"mlscaffold/internal/adapters"
	"mlscaffold/internal/ports"
)

type Service struct {
	Catalog   ports.TemplateSourcePort
	Manifests ports.ManifestEncoderPort
	Pipelines ports.PipelineEncoderPort

	// NewWriter builds the tree writer for a target directory. Tests
	// substitute this to observe or fail writes.
	NewWriter func(root string) ports.TreeWriterPort

	Clock func() time.Time
}

func NewService() Service {
	return Service{
		Catalog:   adapters.NewTemplateCatalogAdapter(),
		Manifests: adapters.NewManifestTOMLAdapter(),
		Pipelines: adapters.NewPipelineYAMLAdapter(),
		NewWriter: func(root string) ports.TreeWriterPort {
			return adapters.NewTreeWriterAdapter(root)
		},
		Clock: time.Now,
	}
}
