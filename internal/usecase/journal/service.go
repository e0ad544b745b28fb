package journal

import (
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
)

// Service appends meeting entries to the cross-project journal file.
type Service struct {
	path   string
	docs   *storage.DocumentStore
	clock  func() time.Time
	logger *zap.Logger
}

// NewService constructs a journal Service writing to journalPath.
func NewService(journalPath string, docs *storage.DocumentStore, logger *zap.Logger) *Service {
	return &Service{path: journalPath, docs: docs, clock: time.Now, logger: logger}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// AppendMeetingEntry records one finished meeting under today's date
// section. The entry is always appended, even when an identical one exists:
// reprocessing a meeting leaves a visible audit trail rather than silently
// collapsing runs.
func (s *Service) AppendMeetingEntry(projectName, meetingName string, sugg entities.MeetingSuggestions) error {
	now := s.clock()
	date := now.Format("2006-01-02")

	recap := strings.TrimSpace(sugg.Recap)
	if recap == "" {
		recap = meetingName
	}

	entry := Entry{
		Time:    now.Format("15:04"),
		Project: projectName,
		Meeting: meetingName,
		Recap:   recap,
		Details: detailBullets(sugg),
	}

	content, ok, err := s.docs.ReadIfExists(s.path)
	if err != nil {
		return apperrors.ErrJournalUpdateFailed(err).WithDetail("path", s.path)
	}
	if !ok {
		content = JournalTitle + "\n\n"
	}

	updated := AppendEntry(content, date, entry)
	if err := s.docs.Write(s.path, updated); err != nil {
		return apperrors.ErrJournalUpdateFailed(err).WithDetail("path", s.path)
	}
	if s.logger != nil {
		s.logger.Info("journal entry appended",
			zap.String("date", date),
			zap.String("project", projectName),
			zap.String("meeting", meetingName),
		)
	}
	return nil
}

// detailBullets expands suggestions into the entry's indented bullets:
// one "Topic:" line per recap line, then actions and decisions.
func detailBullets(sugg entities.MeetingSuggestions) []string {
	var details []string
	for _, line := range strings.Split(sugg.Recap, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			details = append(details, "Topic: "+t)
		}
	}
	for _, a := range sugg.Actions {
		details = append(details, "To Do: "+a)
	}
	for _, d := range sugg.Decisions {
		details = append(details, "Accomplished: "+d)
	}
	return details
}
