package types

type RenderMode string

const (
	RenderModeSubstitute RenderMode = "substitute"
	RenderModeVerbatim   RenderMode = "verbatim"
)

type WriteMode string

const (
	WriteModeCreateIfAbsent WriteMode = "create-if-absent"
	WriteModeForceOverwrite WriteMode = "force-overwrite"
)

type TaskProfile string

const (
	TaskClassification TaskProfile = "classification"
	TaskDetection      TaskProfile = "detection"
	TaskReconstruction TaskProfile = "reconstruction"
)

type FileAction string

const (
	FileActionCreated  FileAction = "created"
	FileActionReplaced FileAction = "replaced"
	FileActionSkipped  FileAction = "skipped"
)
