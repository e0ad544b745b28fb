package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/recorder"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/index"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/weekly"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/workflow"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// App bundles the wired services the commands operate on.
type App struct {
	Paths    config.Paths
	Projects *storage.ProjectStore
	Indexes  repositories.IndexRepository
	History  repositories.HistoryRepository
	Index    *index.Builder
	Workflow *workflow.Service
	Weekly   *weekly.Service
	Recorder *recorder.FileRecorder
	Logger   *zap.Logger
}

// NewRootCommand builds the scribe command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "scribe",
		Short: "Capture meetings into transcripts, notes, wikis and a searchable index",
		Long: `scribe processes meeting recordings end to end: transcription,
structured note extraction, project wiki sections, a daily journal and a
per-project searchable index.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBuildCommand(app),
		newSearchCommand(app),
		newProjectsCommand(app),
		newShowCommand(app),
		newProcessCommand(app),
		newWeeklyCommand(app),
	)
	return root
}
