package wiki

import (
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
)

// Service applies meeting section upserts to wiki files on disk.
type Service struct {
	docs   *storage.DocumentStore
	logger *zap.Logger
}

// NewService constructs a wiki Service.
func NewService(docs *storage.DocumentStore, logger *zap.Logger) *Service {
	return &Service{docs: docs, logger: logger}
}

// UpsertMeetingSection reads the wiki at wikiPath, upserts the meeting's
// section, and writes the file back only when content changed. A missing
// file is treated as empty. Returns whether the file was modified.
func (s *Service) UpsertMeetingSection(wikiPath, date, meetingName, meetingID string, sugg entities.MeetingSuggestions) (bool, error) {
	content, _, err := s.docs.ReadIfExists(wikiPath)
	if err != nil {
		return false, apperrors.ErrWikiUpdateFailed(err).WithDetail("path", wikiPath)
	}

	updated, changed := UpsertSection(content, date, meetingName, meetingID, sugg)
	if !changed {
		if s.logger != nil {
			s.logger.Debug("wiki unchanged", zap.String("path", wikiPath), zap.String("meeting_id", meetingID))
		}
		return false, nil
	}

	if err := s.docs.Write(wikiPath, updated); err != nil {
		return false, apperrors.ErrWikiUpdateFailed(err).WithDetail("path", wikiPath)
	}
	if s.logger != nil {
		s.logger.Info("wiki section upserted",
			zap.String("path", wikiPath),
			zap.String("meeting_id", meetingID),
		)
	}
	return true, nil
}
