package adapters

import (
	"bytes"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"mlscaffold/internal/ports"
	"mlscaffold/internal/types"
)

// PipelineYAMLAdapter serializes pipeline graphs and the parameter
// document in the layout the downstream pipeline runner expects:
// a top-level stages mapping with one entry per stage, in declaration
// order.
type PipelineYAMLAdapter struct{}

func NewPipelineYAMLAdapter() PipelineYAMLAdapter {
	return PipelineYAMLAdapter{}
}

type stageDoc struct {
	Cmd    string   `yaml:"cmd"`
	Deps   []string `yaml:"deps,omitempty"`
	Params []string `yaml:"params,omitempty"`
	Outs   []any    `yaml:"outs,omitempty"`
}

type noCacheOut struct {
	Cache bool `yaml:"cache"`
}

func (a PipelineYAMLAdapter) EncodeGraph(graph types.Graph) ([]byte, error) {
	stages := &yaml.Node{Kind: yaml.MappingNode}
	for _, stage := range graph.Stages {
		outs := make([]any, 0, len(stage.Outs)+len(stage.MarkerOuts))
		for _, out := range stage.Outs {
			outs = append(outs, out)
		}
		for _, out := range stage.MarkerOuts {
			outs = append(outs, map[string]noCacheOut{out: {Cache: false}})
		}
		value := &yaml.Node{}
		if err := value.Encode(stageDoc{
			Cmd:    stage.Cmd,
			Deps:   stage.Deps,
			Params: stage.Params,
			Outs:   outs,
		}); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode pipeline stage").
				WithCause(err)
		}
		stages.Content = append(stages.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: stage.Name},
			value,
		)
	}
	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "stages"},
		stages,
	}}
	return encodeYAML(doc)
}

func (a PipelineYAMLAdapter) EncodeParams(params types.Params) ([]byte, error) {
	return encodeYAML(params)
}

func encodeYAML(value any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode yaml document").
			WithCause(err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to finalize yaml document").
			WithCause(err)
	}
	return buf.Bytes(), nil
}

var _ ports.PipelineEncoderPort = PipelineYAMLAdapter{}
