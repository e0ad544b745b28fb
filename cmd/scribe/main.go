package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/adapter/cli"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/repository"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/recorder"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/index"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/journal"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/weekly"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/wiki"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/workflow"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	paths := cfg.Paths()
	docs := storage.NewDocumentStore(logger)
	if err := docs.EnsureDirs(paths.All()...); err != nil {
		return err
	}

	projects := storage.NewProjectStore(paths.ProjectsDir, paths.ProjectWikisDir, docs, logger)
	history := repository.NewHistoryRepository(paths.HistoryFile, docs, logger)
	indexes := repository.NewIndexRepository(projects, docs, logger)

	journalPath := filepath.Join(paths.ProjectWikisDir, "Journal_wiki.md")

	wikiSvc := wiki.NewService(docs, logger)
	journalSvc := journal.NewService(journalPath, docs, logger)
	indexBuilder := index.NewBuilder(paths.JSONNotesDir, paths.TranscriptsDir, projects, indexes, docs, logger)
	weeklySvc := weekly.NewService(journalPath, paths.WeeklySummariesDir, docs, logger)
	rec := recorder.NewFileRecorder(logger)

	workflowSvc := workflow.NewService(cfg.Workflow, paths, workflow.Deps{
		Recorder:    rec,
		Transcriber: ai.NewAssemblyAIBackend(&cfg.Assembly, logger),
		Suggester:   ai.NewOpenAIClient(&cfg.OpenAI, logger),
		History:     history,
		Projects:    projects,
		Docs:        docs,
		Wiki:        wikiSvc,
		Journal:     journalSvc,
		Index:       indexBuilder,
	}, logger)

	app := &cli.App{
		Paths:    paths,
		Projects: projects,
		Indexes:  indexes,
		History:  history,
		Index:    indexBuilder,
		Workflow: workflowSvc,
		Weekly:   weeklySvc,
		Recorder: rec,
		Logger:   logger,
	}
	return cli.NewRootCommand(app).Execute()
}
