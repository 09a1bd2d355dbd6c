package types

// PlanEntry is one file the synthesizer will write: a target-relative
// destination path and its fully rendered content. Mode starts as
// create-if-absent for every entry; an explicit force flag at apply
// time promotes all entries to force-overwrite.
type PlanEntry struct {
	Path    string
	Content []byte
	Mode    WriteMode
}

// Plan is the complete synthesis plan for one run, computed after all
// rendering and validation has succeeded. Nothing outside the plan is
// ever touched by the synthesizer.
type Plan struct {
	Entries []PlanEntry
}

// Entry returns the plan entry for a destination path, if present.
func (p Plan) Entry(path string) (PlanEntry, bool) {
	for _, entry := range p.Entries {
		if entry.Path == path {
			return entry, true
		}
	}
	return PlanEntry{}, false
}

// FileResult records what happened to a single plan entry during apply.
type FileResult struct {
	Path   string
	Action FileAction
}

// Report summarizes one apply run. On a partial failure it lists
// exactly the files written before the error, so a re-run without
// force resumes safely by skipping them.
type Report struct {
	Results []FileResult
}

func (r Report) count(action FileAction) int {
	n := 0
	for _, result := range r.Results {
		if result.Action == action {
			n++
		}
	}
	return n
}

func (r Report) CreatedCount() int  { return r.count(FileActionCreated) }
func (r Report) ReplacedCount() int { return r.count(FileActionReplaced) }
func (r Report) SkippedCount() int  { return r.count(FileActionSkipped) }

// WrittenCount is the number of files whose content was written,
// whether freshly created or force-replaced.
func (r Report) WrittenCount() int {
	return r.CreatedCount() + r.ReplacedCount()
}
