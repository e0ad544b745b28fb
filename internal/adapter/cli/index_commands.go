package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

func newBuildCommand(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "build <project>",
		Short: "Build or update a project's meeting index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := args[0]
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Building meeting index for project: %s\n", project)
			idx, err := app.Index.BuildProjectIndex(project, force)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Index built successfully")
			fmt.Fprintf(out, "  Project: %s\n", idx.ProjectName)
			fmt.Fprintf(out, "  Total meetings: %d\n", idx.TotalMeetings)
			fmt.Fprintf(out, "  Last updated: %s\n", idx.UpdatedAt)
			if len(idx.Meetings) > 0 {
				fmt.Fprintf(out, "  Latest meeting: %s (%s)\n", idx.Meetings[0].MeetingName, idx.Meetings[0].Date)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "rebuild the entire index instead of updating incrementally")
	return cmd
}

func newSearchCommand(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <project> <query>",
		Short: "Search a project's meetings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, query := args[0], args[1]
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Searching meetings in project %q for: %q\n", project, query)
			fmt.Fprintln(out, strings.Repeat("=", 60))

			results, err := app.Index.Search(project, query, limit)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(out, "No matches found.")
				return nil
			}

			fmt.Fprintf(out, "Found %d matching meetings:\n\n", len(results))
			for i, m := range results {
				fmt.Fprintf(out, "%d. %s\n", i+1, m.MeetingName)
				fmt.Fprintf(out, "   Date: %s\n", m.Date)
				fmt.Fprintf(out, "   Project: %s\n", m.ProjectName)
				fmt.Fprintf(out, "   Words: %d\n", m.WordCount)
				printMatchingItems(out, "Decisions", m.Decisions, query)
				printMatchingItems(out, "Actions", m.ActionItems, query)
				printMatchingItems(out, "Risks", m.Risks, query)
				printTranscriptSnippet(out, m, query)
				fmt.Fprintf(out, "   Files: %s\n", m.JSONFilePath)
				if m.TranscriptFilePath != "" {
					fmt.Fprintf(out, "          %s\n", m.TranscriptFilePath)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	return cmd
}

func newProjectsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects and their index status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Projects with meeting indexes:")
			fmt.Fprintln(out, strings.Repeat("=", 40))

			projects := app.Projects.List()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}

			for _, project := range projects {
				idx, err := app.Indexes.Load(project)
				switch {
				case err != nil:
					fmt.Fprintf(out, "%s (index error: %v)\n", project, err)
				case idx == nil:
					fmt.Fprintf(out, "%s (no index)\n", project)
				default:
					fmt.Fprintf(out, "%s\n", project)
					fmt.Fprintf(out, "  Meetings: %d\n", idx.TotalMeetings)
					fmt.Fprintf(out, "  Updated: %s\n", idx.UpdatedAt)
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}
}

func newShowCommand(app *App) *cobra.Command {
	var showTranscript bool

	cmd := &cobra.Command{
		Use:   "show <project> <meeting-id>",
		Short: "Show one meeting's indexed details",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, meetingID := args[0], args[1]
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Meeting details for %s in project %q:\n", meetingID, project)
			fmt.Fprintln(out, strings.Repeat("=", 60))

			idx, err := app.Indexes.Load(project)
			if err != nil {
				return err
			}
			if idx == nil {
				return fmt.Errorf("%w: %s (run 'scribe build %s' first)", apperrors.ErrIndexNotFound, project, project)
			}

			var meeting *entities.MeetingIndexEntry
			for i := range idx.Meetings {
				if idx.Meetings[i].MeetingID == meetingID {
					meeting = &idx.Meetings[i]
					break
				}
			}
			if meeting == nil {
				return fmt.Errorf("%w: %s in project %q", apperrors.ErrMeetingNotFound, meetingID, project)
			}

			fmt.Fprintf(out, "Meeting: %s\n", meeting.MeetingName)
			fmt.Fprintf(out, "Date: %s\n", meeting.Date)
			fmt.Fprintf(out, "Project: %s\n", meeting.ProjectName)
			fmt.Fprintf(out, "Word count: %d\n", meeting.WordCount)
			keywords := meeting.Keywords
			if len(keywords) > 10 {
				keywords = keywords[:10]
			}
			fmt.Fprintf(out, "Keywords: %s\n\n", strings.Join(keywords, ", "))

			printNumberedList(out, "Decisions", meeting.Decisions)
			printNumberedList(out, "Action Items", meeting.ActionItems)
			printNumberedList(out, "Risks", meeting.Risks)
			printNumberedList(out, "Open Questions", meeting.OpenQuestions)

			fmt.Fprintf(out, "JSON file: %s\n", meeting.JSONFilePath)
			if meeting.TranscriptFilePath != "" {
				fmt.Fprintf(out, "Transcript: %s\n", meeting.TranscriptFilePath)
			}

			if showTranscript && meeting.FullTranscript != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, strings.Repeat("=", 60))
				fmt.Fprintln(out, "FULL TRANSCRIPT:")
				fmt.Fprintln(out, strings.Repeat("=", 60))
				fmt.Fprintln(out, meeting.FullTranscript)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTranscript, "transcript", false, "print the full transcript")
	return cmd
}

func printMatchingItems(out io.Writer, label string, items []string, query string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "   %s: %d\n", label, len(items))
	shown := 0
	for _, it := range items {
		if shown == 2 {
			break
		}
		if strings.Contains(strings.ToLower(it), strings.ToLower(query)) {
			fmt.Fprintf(out, "      - %s\n", truncate(it, 100))
			shown++
		}
	}
}

func printTranscriptSnippet(out io.Writer, m entities.MeetingIndexEntry, query string) {
	lower := strings.ToLower(m.FullTranscript)
	pos := strings.Index(lower, strings.ToLower(query))
	if pos < 0 {
		return
	}
	start := pos - 50
	if start < 0 {
		start = 0
	}
	end := pos + len(query) + 50
	if end > len(m.FullTranscript) {
		end = len(m.FullTranscript)
	}
	fmt.Fprintf(out, "   Transcript: ...%s...\n", m.FullTranscript[start:end])
}

func printNumberedList(out io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "%s (%d):\n", label, len(items))
	for i, it := range items {
		fmt.Fprintf(out, "  %d. %s\n", i+1, it)
	}
	fmt.Fprintln(out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
