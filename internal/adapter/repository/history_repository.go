package repository

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
)

// historyRow tolerates legacy key spellings when loading history files.
type historyRow struct {
	MeetingID      string `json:"meeting_id"`
	Name           string `json:"name"`
	Date           string `json:"date"`
	ProjectName    string `json:"project_name"`
	Project        string `json:"project"` // legacy key
	TranscriptPath string `json:"transcript_path"`
	SummaryPath    string `json:"summary_path"`
	FullAudioPath  string `json:"full_audio_path"`
	JSONNotesPath  string `json:"json_notes_path"`
}

// HistoryRepository persists MeetingRecords as a single JSON array file.
// Rows missing meeting_id or date are skipped on load, not fatal.
type HistoryRepository struct {
	mu      sync.Mutex
	path    string
	docs    *storage.DocumentStore
	logger  *zap.Logger
	records []entities.MeetingRecord
}

// NewHistoryRepository loads the history file at path (a missing or
// unreadable file starts an empty history).
func NewHistoryRepository(path string, docs *storage.DocumentStore, logger *zap.Logger) *HistoryRepository {
	r := &HistoryRepository{path: path, docs: docs, logger: logger}
	r.load()
	return r
}

func (r *HistoryRepository) load() {
	content, ok, err := r.docs.ReadIfExists(r.path)
	if err != nil || !ok {
		if err != nil && r.logger != nil {
			r.logger.Warn("failed to read meeting history; starting fresh", zap.Error(err))
		}
		r.records = nil
		return
	}

	var rows []historyRow
	if err := json.Unmarshal([]byte(content), &rows); err != nil {
		if r.logger != nil {
			r.logger.Warn("failed to parse meeting history; starting fresh", zap.Error(err))
		}
		r.records = nil
		return
	}

	records := make([]entities.MeetingRecord, 0, len(rows))
	for _, row := range rows {
		project := row.ProjectName
		if project == "" {
			project = row.Project
		}
		rec := entities.MeetingRecord{
			MeetingID:      row.MeetingID,
			Name:           row.Name,
			Date:           row.Date,
			ProjectName:    project,
			TranscriptPath: row.TranscriptPath,
			SummaryPath:    row.SummaryPath,
			FullAudioPath:  row.FullAudioPath,
			JSONNotesPath:  row.JSONNotesPath,
		}
		rec.Normalize()
		if !rec.Valid() {
			if r.logger != nil {
				r.logger.Warn("skipping malformed history row (missing id/date)",
					zap.String("meeting_id", row.MeetingID),
					zap.String("date", row.Date),
				)
			}
			continue
		}
		records = append(records, rec)
	}
	r.records = records
}

// Records returns a copy of all loadable history rows in file order.
func (r *HistoryRepository) Records() []entities.MeetingRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.MeetingRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Find retrieves a record by meeting id.
func (r *HistoryRepository) Find(meetingID string) (entities.MeetingRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.MeetingID == meetingID {
			return rec, true
		}
	}
	return entities.MeetingRecord{}, false
}

// AddOrUpdate inserts the record or updates the existing row with the same
// meeting id, then persists the whole collection. An existing row's notes
// path is preserved unless the incoming record carries one.
func (r *HistoryRepository) AddOrUpdate(rec entities.MeetingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.Normalize()
	updated := false
	for i := range r.records {
		if r.records[i].MeetingID == rec.MeetingID {
			notesPath := r.records[i].JSONNotesPath
			r.records[i] = rec
			if rec.JSONNotesPath == "" {
				r.records[i].JSONNotesPath = notesPath
			}
			updated = true
			break
		}
	}
	if !updated {
		r.records = append(r.records, rec)
	}
	return r.save()
}

func (r *HistoryRepository) save() error {
	payload, err := json.MarshalIndent(r.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize meeting history: %w", err)
	}
	if err := r.docs.Write(r.path, string(payload)+"\n"); err != nil {
		return err
	}
	if r.logger != nil {
		r.logger.Info("saved meeting history", zap.String("path", r.path), zap.Int("records", len(r.records)))
	}
	return nil
}
