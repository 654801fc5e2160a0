package tasks

// Phase identifies the step a task is currently in.
type Phase string

const (
	PhaseImport      Phase = "import"
	PhaseAnnotations Phase = "annotations"
	PhaseROIs        Phase = "rois"
	PhaseFolders     Phase = "folders"
	PhaseDescription Phase = "description"
	PhaseReconcile   Phase = "reconcile"
	PhaseTagging     Phase = "tagging"
	PhaseDone        Phase = "done"
)

// ProgressUpdate is a point-in-time report emitted while a task runs.
type ProgressUpdate struct {
	Phase     Phase
	Message   string
	Current   int
	Total     int
	ImageID   int64
	Err       error
	Completed bool
}
