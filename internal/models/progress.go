package models

// ProgressType identifies a stage of the publish workflow.
type ProgressType string

const (
	ProgressCommitting ProgressType = "committing"
	ProgressPushing    ProgressType = "pushing"
	ProgressFetching   ProgressType = "fetching"
	ProgressRebasing   ProgressType = "rebasing"
	ProgressForcePush  ProgressType = "force_pushing"
	ProgressGenerating ProgressType = "generating"
	ProgressPublishing ProgressType = "publishing"
)

// ProgressEvent is emitted as the workflow advances, so callers can drive
// spinners or other feedback without the service knowing about the console.
type ProgressEvent struct {
	Type   ProgressType
	Branch string
}
