package workflow

import (
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// EventKind discriminates workflow events.
type EventKind int

const (
	// EventStateChanged announces a workflow state transition.
	EventStateChanged EventKind = iota
	// EventTranscriptReady carries the transcript text once saved.
	EventTranscriptReady
	// EventSuggestionsReady carries the generated suggestions.
	EventSuggestionsReady
	// EventStageFailed reports the stage error that ended the run.
	EventStageFailed
)

// Event is one observable step of a workflow run. The presenter drains
// these from the service's event channel; the workflow never blocks on a
// slow consumer.
type Event struct {
	Kind      EventKind
	RunID     string
	MeetingID string

	State          entities.WorkflowState
	DisplaySeconds int

	Transcript  string
	Suggestions entities.MeetingSuggestions

	Err error
}
