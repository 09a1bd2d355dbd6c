package types

// Stage is one node of a pipeline graph. Deps and Outs are
// target-relative paths; MarkerOuts are outputs excluded from artifact
// caching (version markers and upload receipts). Params lists the
// parameter-document sub-keys the stage command reads.
type Stage struct {
	Name       string
	Cmd        string
	Deps       []string
	Outs       []string
	MarkerOuts []string
	Params     []string
}

// AllOuts returns cached and marker outputs in declaration order.
func (s Stage) AllOuts() []string {
	outs := make([]string, 0, len(s.Outs)+len(s.MarkerOuts))
	outs = append(outs, s.Outs...)
	outs = append(outs, s.MarkerOuts...)
	return outs
}

// Graph is an ordered pipeline: stages are declared in topological
// order, so a stage may only depend on outputs of earlier stages or on
// declared external inputs.
type Graph struct {
	Name   string
	Stages []Stage
}

// Stage returns the named stage, if present.
func (g Graph) Stage(name string) (Stage, bool) {
	for _, stage := range g.Stages {
		if stage.Name == name {
			return stage, true
		}
	}
	return Stage{}, false
}
