package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
)

func newHistory(t *testing.T, initial string) (*HistoryRepository, string, *storage.DocumentStore) {
	t.Helper()
	docs := storage.NewDocumentStore(nil)
	path := filepath.Join(t.TempDir(), "meeting_history.json")
	if initial != "" {
		require.NoError(t, docs.Write(path, initial))
	}
	return NewHistoryRepository(path, docs, nil), path, docs
}

func TestHistoryLoadSkipsMalformedRows(t *testing.T) {
	initial := `[
  {"meeting_id": "meeting_1", "name": "Good", "date": "2026-08-28 09:00", "project_name": "Aiba"},
  {"name": "missing id", "date": "2026-08-28 10:00"},
  {"meeting_id": "meeting_3", "name": "missing date"},
  {"meeting_id": "meeting_4", "name": "Legacy", "date": "2026-08-28 11:00", "project": "OldKey"}
]`
	repo, _, _ := newHistory(t, initial)

	records := repo.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "meeting_1", records[0].MeetingID)
	assert.Equal(t, "meeting_4", records[1].MeetingID)
	assert.Equal(t, "OldKey", records[1].ProjectName, "legacy project key should be honored")
}

func TestHistoryLoadToleratesGarbageFile(t *testing.T) {
	repo, _, _ := newHistory(t, "{broken")
	assert.Empty(t, repo.Records())
}

func TestHistoryNormalizesBackslashPaths(t *testing.T) {
	initial := `[{"meeting_id": "meeting_1", "date": "2026-08-28", "transcript_path": "data\\transcripts\\meeting_1.txt"}]`
	repo, _, _ := newHistory(t, initial)

	rec, ok := repo.Find("meeting_1")
	require.True(t, ok)
	assert.Equal(t, "data/transcripts/meeting_1.txt", rec.TranscriptPath)
}

func TestHistoryAddOrUpdatePreservesNotesPath(t *testing.T) {
	repo, path, docs := newHistory(t, "")

	first := entities.MeetingRecord{
		MeetingID:     "meeting_1",
		Name:          "Sync",
		Date:          "2026-08-28 09:00",
		JSONNotesPath: "json_notes/meeting_1_notes.json",
	}
	require.NoError(t, repo.AddOrUpdate(first))

	// a later update without a notes path keeps the stored one
	update := first
	update.Name = "Sync (renamed)"
	update.JSONNotesPath = ""
	require.NoError(t, repo.AddOrUpdate(update))

	rec, ok := repo.Find("meeting_1")
	require.True(t, ok)
	assert.Equal(t, "Sync (renamed)", rec.Name)
	assert.Equal(t, "json_notes/meeting_1_notes.json", rec.JSONNotesPath)

	// persisted and reloadable
	content, err := docs.Read(path)
	require.NoError(t, err)
	assert.Contains(t, content, "meeting_1_notes.json")

	reloaded := NewHistoryRepository(path, docs, nil)
	assert.Len(t, reloaded.Records(), 1)
}

func TestHistoryAddOrUpdateAppendsNewRecords(t *testing.T) {
	repo, _, _ := newHistory(t, "")
	require.NoError(t, repo.AddOrUpdate(entities.MeetingRecord{MeetingID: "meeting_1", Date: "2026-08-28"}))
	require.NoError(t, repo.AddOrUpdate(entities.MeetingRecord{MeetingID: "meeting_2", Date: "2026-08-28"}))
	assert.Len(t, repo.Records(), 2)
}
