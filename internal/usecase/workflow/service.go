package workflow

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/index"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/journal"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/wiki"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// Service drives the meeting capture workflow: stop the recorder,
// transcribe, generate suggestions, persist notes, update the wiki,
// journal and index. One run is in flight at a time; a stage failure
// short-circuits the remaining stages but keeps every artifact already
// written.
type Service struct {
	cfg   config.WorkflowConfig
	paths config.Paths

	recorder    repositories.Recorder
	transcriber repositories.TranscriptionBackend
	suggester   repositories.SuggestionBackend
	history     repositories.HistoryRepository

	projects *storage.ProjectStore
	docs     *storage.DocumentStore
	wiki     *wiki.Service
	journal  *journal.Service
	index    *index.Builder

	logger *zap.Logger
	clock  func() time.Time

	mu      sync.Mutex
	running bool
	state   entities.WorkflowState

	events chan Event
}

// Deps bundles the workflow's collaborators.
type Deps struct {
	Recorder    repositories.Recorder
	Transcriber repositories.TranscriptionBackend
	Suggester   repositories.SuggestionBackend
	History     repositories.HistoryRepository
	Projects    *storage.ProjectStore
	Docs        *storage.DocumentStore
	Wiki        *wiki.Service
	Journal     *journal.Service
	Index       *index.Builder
}

// NewService constructs the workflow Service.
func NewService(cfg config.WorkflowConfig, paths config.Paths, deps Deps, logger *zap.Logger) *Service {
	return &Service{
		cfg:         cfg,
		paths:       paths,
		recorder:    deps.Recorder,
		transcriber: deps.Transcriber,
		suggester:   deps.Suggester,
		history:     deps.History,
		projects:    deps.Projects,
		docs:        deps.Docs,
		wiki:        deps.Wiki,
		journal:     deps.Journal,
		index:       deps.Index,
		logger:      logger,
		clock:       time.Now,
		state:       entities.StateIdle,
		events:      make(chan Event, 64),
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Events exposes the run's event stream. The channel is buffered; events
// are dropped rather than blocking the workflow when nothing drains them.
func (s *Service) Events() <-chan Event {
	return s.events
}

// State returns the current workflow state.
func (s *Service) State() entities.WorkflowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run executes the full capture workflow for one meeting and returns its
// history record. A second call while a run is in flight fails with
// ErrWorkflowBusy without touching any state.
func (s *Service) Run(ctx context.Context, projectName, meetingName string) (entities.MeetingRecord, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return entities.MeetingRecord{}, apperrors.ErrWorkflowBusy
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	runID := uuid.NewString()
	now := s.clock()
	meetingID := entities.NewMeetingID(now)
	date := now.Format("2006-01-02")

	if s.logger != nil {
		s.logger.Info("workflow started",
			zap.String("run_id", runID),
			zap.String("meeting_id", meetingID),
			zap.String("project", projectName),
			zap.String("meeting", meetingName),
		)
	}

	// Stage 1: stop the recorder and claim the audio file.
	if !s.recorder.Stop() {
		return s.fail(runID, meetingID, apperrors.ErrRecordingStopFailed(apperrors.ErrRecorderStop))
	}
	audioPath := s.recorder.OutputPath()
	if audioPath == "" {
		return s.fail(runID, meetingID, apperrors.ErrRecordingStopFailed(apperrors.ErrNoRecording))
	}

	// Stage 2: transcribe.
	s.setState(runID, meetingID, entities.StateProcessingTranscript, 0)
	transcript, err := s.transcribe(ctx, audioPath)
	if err != nil {
		return s.fail(runID, meetingID, apperrors.ErrTranscriptionFailed(err))
	}

	transcriptPath := filepath.Join(s.paths.TranscriptsDir, meetingID+".txt")
	if err := s.docs.Write(transcriptPath, transcript); err != nil {
		return s.fail(runID, meetingID, apperrors.ErrTranscriptionFailed(err))
	}

	record := entities.MeetingRecord{
		MeetingID:      meetingID,
		Name:           meetingName,
		Date:           date,
		ProjectName:    projectName,
		TranscriptPath: transcriptPath,
		FullAudioPath:  audioPath,
	}
	if err := s.history.AddOrUpdate(record); err != nil {
		return s.fail(runID, meetingID, apperrors.ErrTranscriptionFailed(err))
	}
	s.emit(Event{Kind: EventTranscriptReady, RunID: runID, MeetingID: meetingID, Transcript: transcript})

	// Stage 3: suggestions.
	s.setState(runID, meetingID, entities.StateGeneratingSummary, 0)
	sugg, err := s.suggest(ctx, transcript)
	if err != nil {
		return s.fail(runID, meetingID, apperrors.ErrSuggestionFailed(err))
	}
	s.emit(Event{Kind: EventSuggestionsReady, RunID: runID, MeetingID: meetingID, Suggestions: sugg})

	// Stage 4: persist JSON notes.
	notesPath, err := s.saveNotes(projectName, meetingID, sugg)
	if err != nil {
		return s.fail(runID, meetingID, apperrors.ErrNotesSaveFailed(err))
	}
	record.JSONNotesPath = notesPath
	if err := s.history.AddOrUpdate(record); err != nil {
		return s.fail(runID, meetingID, apperrors.ErrNotesSaveFailed(err))
	}

	// Stage 5: wiki and journal.
	s.setState(runID, meetingID, entities.StateUpdatingWiki, 0)
	wikiPath, err := s.projects.ResolveWikiPath(projectName)
	if err != nil {
		return s.fail(runID, meetingID, apperrors.ErrWikiUpdateFailed(err))
	}
	if _, err := s.wiki.UpsertMeetingSection(wikiPath, date, meetingName, meetingID, sugg); err != nil {
		return s.fail(runID, meetingID, err)
	}
	if err := s.journal.AppendMeetingEntry(projectName, meetingName, sugg); err != nil {
		return s.fail(runID, meetingID, err)
	}

	// Stage 6: search index. Best effort: the meeting is already saved,
	// and the index can be rebuilt from disk at any time.
	if err := s.index.UpdateIndexWithMeeting(projectName, meetingID, notesPath, transcriptPath); err != nil {
		if s.logger != nil {
			s.logger.Warn("index update failed; meeting saved without it",
				zap.String("meeting_id", meetingID),
				zap.Error(err),
			)
		}
	}

	s.setState(runID, meetingID, entities.StateSaved, s.cfg.SavedDisplaySeconds)
	if s.logger != nil {
		s.logger.Info("workflow finished", zap.String("run_id", runID), zap.String("meeting_id", meetingID))
	}
	return record, nil
}

func (s *Service) transcribe(ctx context.Context, audioPath string) (string, error) {
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}
	return s.transcriber.Transcribe(ctx, audioPath)
}

func (s *Service) suggest(ctx context.Context, transcript string) (entities.MeetingSuggestions, error) {
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}
	return s.suggester.Generate(ctx, transcript)
}

// saveNotes writes the structured notes JSON to the shared notes folder
// and, when the project has the per-project layout, alongside the
// project's meetings. The project-scoped path wins for downstream
// consumers when both exist.
func (s *Service) saveNotes(projectName, meetingID string, sugg entities.MeetingSuggestions) (string, error) {
	payload, err := json.MarshalIndent(sugg.Notes(), "", "  ")
	if err != nil {
		return "", err
	}
	content := string(payload) + "\n"

	sharedPath := filepath.Join(s.paths.JSONNotesDir, meetingID+"_notes.json")
	if err := s.docs.Write(sharedPath, content); err != nil {
		return "", err
	}

	notesPath := sharedPath
	if s.projects.Exists(projectName) {
		projectPath := filepath.Join(s.projects.MeetingsDir(projectName), meetingID+"_notes.json")
		if err := s.docs.Write(projectPath, content); err != nil {
			return "", err
		}
		notesPath = projectPath
	}
	return notesPath, nil
}

func (s *Service) setState(runID, meetingID string, state entities.WorkflowState, displaySeconds int) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.emit(Event{
		Kind:           EventStateChanged,
		RunID:          runID,
		MeetingID:      meetingID,
		State:          state,
		DisplaySeconds: displaySeconds,
	})
}

func (s *Service) fail(runID, meetingID string, stageErr error) (entities.MeetingRecord, error) {
	if s.logger != nil {
		s.logger.Error("workflow stage failed",
			zap.String("run_id", runID),
			zap.String("meeting_id", meetingID),
			zap.Error(stageErr),
		)
	}
	s.emit(Event{Kind: EventStageFailed, RunID: runID, MeetingID: meetingID, Err: stageErr})
	s.setState(runID, meetingID, entities.StateError, s.cfg.ErrorDisplaySeconds)
	return entities.MeetingRecord{}, stageErr
}

func (s *Service) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		if s.logger != nil {
			s.logger.Warn("event dropped; no consumer draining", zap.String("run_id", ev.RunID))
		}
	}
}
