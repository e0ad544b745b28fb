package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-scribe/internal/adapter/presenter"
)

func newProcessCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "process <project> <meeting-name> <audio-file>",
		Short: "Run the full capture workflow over an existing recording",
		Long: `process adopts an audio file recorded by any external tool and runs the
complete workflow: transcription, structured note extraction, wiki and
journal updates, and the project's search index.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, meetingName, audioPath := args[0], args[1], args[2]
			out := cmd.OutOrStdout()

			if !app.Recorder.Start(audioPath) {
				return fmt.Errorf("audio file not usable: %s", audioPath)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			console := presenter.NewConsole(out)
			pumpDone := make(chan struct{})
			go func() {
				defer close(pumpDone)
				console.Pump(ctx, app.Workflow.Events())
			}()

			record, err := app.Workflow.Run(ctx, project, meetingName)
			cancel()
			<-pumpDone
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Meeting saved: %s\n", record.MeetingID)
			fmt.Fprintf(out, "  Transcript: %s\n", record.TranscriptPath)
			fmt.Fprintf(out, "  Notes: %s\n", record.JSONNotesPath)
			return nil
		},
	}
}
