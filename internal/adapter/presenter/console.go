package presenter

import (
	"context"
	"fmt"
	"io"

	"github.com/johnquangdev/meeting-scribe/internal/usecase/workflow"
)

// Console renders workflow events as human-readable progress lines.
type Console struct {
	out io.Writer
}

// NewConsole constructs a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Pump drains events until the context is cancelled. Run it in its own
// goroutine alongside a workflow run.
func (c *Console) Pump(ctx context.Context, events <-chan workflow.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.render(ev)
		}
	}
}

func (c *Console) render(ev workflow.Event) {
	switch ev.Kind {
	case workflow.EventStateChanged:
		fmt.Fprintf(c.out, "[%s] %s\n", ev.MeetingID, ev.State)
	case workflow.EventTranscriptReady:
		fmt.Fprintf(c.out, "[%s] transcript saved (%d characters)\n", ev.MeetingID, len(ev.Transcript))
	case workflow.EventSuggestionsReady:
		s := ev.Suggestions
		fmt.Fprintf(c.out, "[%s] suggestions ready: %d decisions, %d actions, %d risks, %d open questions\n",
			ev.MeetingID, len(s.Decisions), len(s.Actions), len(s.Risks), len(s.OpenQuestions))
		if s.Recap != "" {
			fmt.Fprintf(c.out, "[%s] recap: %s\n", ev.MeetingID, s.Recap)
		}
	case workflow.EventStageFailed:
		fmt.Fprintf(c.out, "[%s] failed: %v\n", ev.MeetingID, ev.Err)
	}
}
