package adapters

import (
	"fmt"
	"io/fs"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mlscaffold/internal/ports"
	"mlscaffold/internal/templates"
	"mlscaffold/internal/types"
)

// defaultCatalog maps every template in the embedded catalog to its
// destination in the generated tree. Destinations under src/ and the
// generated test stubs carry the moduleName placeholder so the whole
// tree agrees on the same module segment.
var defaultCatalog = []types.TemplateDescriptor{
	{LogicalPath: "gitignore", Destination: ".gitignore", Mode: types.RenderModeVerbatim},
	{LogicalPath: "Dockerfile", Destination: "Dockerfile", Mode: types.RenderModeSubstitute},
	{LogicalPath: "circleci/config.yml", Destination: ".circleci/config.yml", Mode: types.RenderModeSubstitute},
	{LogicalPath: "dvc/config", Destination: ".dvc/config", Mode: types.RenderModeSubstitute},
	{LogicalPath: "env/example.env", Destination: ".env.example", Mode: types.RenderModeSubstitute},

	{LogicalPath: "src/__init__.py", Destination: "src/{{ moduleName }}/__init__.py", Mode: types.RenderModeSubstitute},
	{LogicalPath: "src/pkg__init__.py", Destination: "src/{{ moduleName }}/data/__init__.py", Mode: types.RenderModeVerbatim},
	{LogicalPath: "src/pkg__init__.py", Destination: "src/{{ moduleName }}/model/__init__.py", Mode: types.RenderModeVerbatim},
	{LogicalPath: "src/pkg__init__.py", Destination: "src/{{ moduleName }}/scripts/__init__.py", Mode: types.RenderModeVerbatim},
	{LogicalPath: "src/config.py", Destination: "src/{{ moduleName }}/config.py", Mode: types.RenderModeSubstitute},
	{LogicalPath: "src/utils.py", Destination: "src/{{ moduleName }}/utils.py", Mode: types.RenderModeSubstitute},
	{LogicalPath: "src/train.py", Destination: "src/{{ moduleName }}/train.py", Mode: types.RenderModeSubstitute},
	{LogicalPath: "src/eval.py", Destination: "src/{{ moduleName }}/eval.py", Mode: types.RenderModeSubstitute},
	{LogicalPath: "src/data/preprocess.py", Destination: "src/{{ moduleName }}/data/preprocess.py", Mode: types.RenderModeSubstitute},
	{LogicalPath: "src/data/datamodule.py", Destination: "src/{{ moduleName }}/data/datamodule.py", Mode: types.RenderModeSubstitute},
	{LogicalPath: "src/scripts/release.py", Destination: "src/{{ moduleName }}/scripts/release.py", Mode: types.RenderModeSubstitute},
	{LogicalPath: "src/scripts/register_model.py", Destination: "src/{{ moduleName }}/scripts/register_model.py", Mode: types.RenderModeSubstitute},
	{LogicalPath: "src/scripts/export_and_benchmark.py", Destination: "src/{{ moduleName }}/scripts/export_and_benchmark.py", Mode: types.RenderModeSubstitute},

	{LogicalPath: "src/model/classification.py", Destination: "src/{{ moduleName }}/model/model.py", Mode: types.RenderModeSubstitute, Tasks: []types.TaskProfile{types.TaskClassification}},
	{LogicalPath: "src/model/detection.py", Destination: "src/{{ moduleName }}/model/model.py", Mode: types.RenderModeSubstitute, Tasks: []types.TaskProfile{types.TaskDetection}},
	{LogicalPath: "src/model/reconstruction.py", Destination: "src/{{ moduleName }}/model/model.py", Mode: types.RenderModeSubstitute, Tasks: []types.TaskProfile{types.TaskReconstruction}},

	{LogicalPath: "tests/test_basic.py", Destination: "tests/test_basic.py", Mode: types.RenderModeSubstitute},
	{LogicalPath: "tests/test_model_classification.py", Destination: "tests/test_model.py", Mode: types.RenderModeSubstitute, Tasks: []types.TaskProfile{types.TaskClassification}},
	{LogicalPath: "tests/test_model_detection.py", Destination: "tests/test_model.py", Mode: types.RenderModeSubstitute, Tasks: []types.TaskProfile{types.TaskDetection}},
	{LogicalPath: "tests/test_model_reconstruction.py", Destination: "tests/test_model.py", Mode: types.RenderModeSubstitute, Tasks: []types.TaskProfile{types.TaskReconstruction}},
}

// TemplateCatalogAdapter serves the embedded template catalog. It is a
// pure catalog: no substitution happens here.
type TemplateCatalogAdapter struct {
	fsys    fs.FS
	entries []types.TemplateDescriptor
}

func NewTemplateCatalogAdapter() TemplateCatalogAdapter {
	return TemplateCatalogAdapter{
		fsys:    templates.Catalog(),
		entries: defaultCatalog,
	}
}

func (a TemplateCatalogAdapter) List() []types.TemplateDescriptor {
	return append([]types.TemplateDescriptor(nil), a.entries...)
}

func (a TemplateCatalogAdapter) Load(logicalPath string) ([]byte, error) {
	data, err := fs.ReadFile(a.fsys, logicalPath)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("template not found: %s", logicalPath)).
			WithCause(err)
	}
	return data, nil
}

var _ ports.TemplateSourcePort = TemplateCatalogAdapter{}
