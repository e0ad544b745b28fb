package weekly

import (
	"path/filepath"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
)

// Service generates weekly summaries from the journal file.
type Service struct {
	journalPath string
	weeklyDir   string
	docs        *storage.DocumentStore
	clock       func() time.Time
	logger      *zap.Logger
}

// NewService constructs a weekly Service.
func NewService(journalPath, weeklyDir string, docs *storage.DocumentStore, logger *zap.Logger) *Service {
	return &Service{
		journalPath: journalPath,
		weeklyDir:   weeklyDir,
		docs:        docs,
		clock:       time.Now,
		logger:      logger,
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Generate writes the markdown summary for target's ISO week (zero target
// means now) and returns the output path. An existing file for the same
// week is overwritten.
func (s *Service) Generate(target time.Time) (string, error) {
	selected, err := s.selectSections(target)
	if err != nil {
		return "", err
	}
	if target.IsZero() {
		target = s.clock()
	}

	outPath := filepath.Join(s.weeklyDir, weeklyFileName(target))
	if err := s.docs.Write(outPath, renderWeekly(selected, target)); err != nil {
		return "", err
	}
	if s.logger != nil {
		s.logger.Info("weekly summary generated", zap.String("path", outPath), zap.Int("days", len(selected)))
	}
	return outPath, nil
}

// Rollup builds the structured summary for target's ISO week without
// writing any files.
func (s *Service) Rollup(target time.Time) (Summary, error) {
	selected, err := s.selectSections(target)
	if err != nil {
		return Summary{}, err
	}
	return rollup(selected), nil
}

func (s *Service) selectSections(target time.Time) ([]DateSection, error) {
	if target.IsZero() {
		target = s.clock()
	}

	content, _, err := s.docs.ReadIfExists(s.journalPath)
	if err != nil {
		return nil, err
	}
	sections := ParseJournalSections(content)
	if len(sections) == 0 {
		return nil, apperrors.ErrNoJournalEntries
	}
	return selectWeek(sections, target), nil
}
