package repositories

import "github.com/johnquangdev/meeting-scribe/internal/domain/entities"

// HistoryRepository defines persistence for the meeting history file.
type HistoryRepository interface {
	// Records returns all loadable history rows in file order.
	Records() []entities.MeetingRecord

	// Find retrieves a record by meeting id.
	Find(meetingID string) (entities.MeetingRecord, bool)

	// AddOrUpdate inserts the record, or updates the existing row with the
	// same meeting id, and persists the whole collection.
	AddOrUpdate(rec entities.MeetingRecord) error
}

// IndexRepository defines persistence for a project's meeting index file.
type IndexRepository interface {
	// Load reads the index for a project. Returns nil when no index file
	// exists yet.
	Load(projectName string) (*entities.MeetingIndex, error)

	// Save writes the whole index back for a project.
	Save(projectName string, index *entities.MeetingIndex) error

	// Exists reports whether an index file is present for the project.
	Exists(projectName string) bool
}
