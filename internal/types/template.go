package types

// TemplateDescriptor addresses one template in the catalog. LogicalPath
// is the stable catalog path the repository loads bytes from;
// Destination is the target-tree path the rendered output is written
// to, and may itself contain placeholders (source stubs live under
// src/{{ moduleName }}/). Verbatim templates are copied byte for byte.
type TemplateDescriptor struct {
	LogicalPath string
	Destination string
	Mode        RenderMode

	// Tasks restricts the template to specific task profiles. Empty
	// means the template is part of every generated project.
	Tasks []TaskProfile
}

// AppliesTo reports whether the template is part of the template set
// for the given task profile.
func (d TemplateDescriptor) AppliesTo(task TaskProfile) bool {
	if len(d.Tasks) == 0 {
		return true
	}
	for _, t := range d.Tasks {
		if t == task {
			return true
		}
	}
	return false
}
