package entities

// WorkflowState is one state of the meeting workflow state machine.
// Idle is initial; Saved and Error are terminal for a run.
type WorkflowState int

const (
	StateIdle WorkflowState = iota
	StateRecording
	StateProcessingTranscript
	StateGeneratingSummary
	StateUpdatingWiki
	StateSaved
	StateError
)

func (s WorkflowState) String() string {
	switch s {
	case StateIdle:
		return "Ready"
	case StateRecording:
		return "Recording..."
	case StateProcessingTranscript:
		return "Processing transcript..."
	case StateGeneratingSummary:
		return "Generating summary..."
	case StateUpdatingWiki:
		return "Updating wiki..."
	case StateSaved:
		return "Saved"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state ends a workflow run.
func (s WorkflowState) Terminal() bool {
	return s == StateSaved || s == StateError
}
