package index

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
)

// Search relevance weights per field. A phrase hit scores ten times the
// field weight; each matching query word adds the weight once.
const (
	weightName          = 3.0
	weightDecisions     = 2.5
	weightActions       = 2.5
	weightRisks         = 2.0
	weightOpenQuestions = 2.0
	weightKeywords      = 1.5
	weightTranscript    = 1.0
)

// Builder maintains per-project searchable meeting indexes from the flat
// notes and transcript directories.
type Builder struct {
	jsonNotesDir   string
	transcriptsDir string
	projects       *storage.ProjectStore
	indexes        repositories.IndexRepository
	docs           *storage.DocumentStore
	clock          func() time.Time
	logger         *zap.Logger
}

// NewBuilder constructs an index Builder.
func NewBuilder(jsonNotesDir, transcriptsDir string, projects *storage.ProjectStore, indexes repositories.IndexRepository, docs *storage.DocumentStore, logger *zap.Logger) *Builder {
	return &Builder{
		jsonNotesDir:   jsonNotesDir,
		transcriptsDir: transcriptsDir,
		projects:       projects,
		indexes:        indexes,
		docs:           docs,
		clock:          time.Now,
		logger:         logger,
	}
}

// WithClock overrides the time source, for tests.
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// BuildProjectIndex scans the notes directory and (re)builds a project's
// index. Without forceRebuild, meetings already indexed are kept as-is and
// only new notes files are processed.
func (b *Builder) BuildProjectIndex(projectName string, forceRebuild bool) (*entities.MeetingIndex, error) {
	if b.logger != nil {
		b.logger.Info("building meeting index", zap.String("project", projectName), zap.Bool("force", forceRebuild))
	}

	if _, err := b.projects.EnsureStructure(projectName); err != nil {
		return nil, apperrors.ErrIndexUpdateFailed(err)
	}

	var existing *entities.MeetingIndex
	if !forceRebuild {
		loaded, err := b.indexes.Load(projectName)
		if err != nil {
			if b.logger != nil {
				b.logger.Warn("failed to load existing index; rebuilding", zap.Error(err))
			}
		} else {
			existing = loaded
		}
	}

	meetings := []entities.MeetingIndexEntry{}
	indexed := make(map[string]bool)
	if existing != nil {
		meetings = append(meetings, existing.Meetings...)
		for _, m := range existing.Meetings {
			indexed[m.MeetingID] = true
		}
	}

	added := 0
	for meetingID, jsonPath := range b.scanNotesFiles() {
		if indexed[meetingID] {
			continue
		}
		meetings = append(meetings, b.buildEntry(meetingID, projectName, jsonPath, b.findTranscriptPath(meetingID)))
		added++
	}

	sort.SliceStable(meetings, func(i, j int) bool { return meetings[i].Timestamp > meetings[j].Timestamp })

	now := b.clock().Format(time.RFC3339)
	createdAt := now
	if existing != nil && existing.CreatedAt != "" {
		createdAt = existing.CreatedAt
	}

	index := &entities.MeetingIndex{
		ProjectName:   projectName,
		CreatedAt:     createdAt,
		UpdatedAt:     now,
		TotalMeetings: len(meetings),
		Meetings:      meetings,
	}
	if err := b.indexes.Save(projectName, index); err != nil {
		return nil, apperrors.ErrIndexUpdateFailed(err)
	}

	if b.logger != nil {
		b.logger.Info("meeting index saved",
			zap.String("project", projectName),
			zap.Int("added", added),
			zap.Int("total", len(meetings)),
		)
	}
	return index, nil
}

// UpdateIndexWithMeeting replaces (or adds) one meeting's entry in the
// project index and persists it. A missing or unreadable index starts a
// fresh one rather than failing.
func (b *Builder) UpdateIndexWithMeeting(projectName, meetingID, jsonPath, transcriptPath string) error {
	index, err := b.indexes.Load(projectName)
	if err != nil {
		if b.logger != nil {
			b.logger.Warn("failed to load existing index; starting fresh", zap.Error(err))
		}
		index = nil
	}

	now := b.clock().Format(time.RFC3339)
	if index == nil {
		index = &entities.MeetingIndex{
			ProjectName: projectName,
			CreatedAt:   now,
			Meetings:    []entities.MeetingIndexEntry{},
		}
	}

	kept := index.Meetings[:0]
	for _, m := range index.Meetings {
		if m.MeetingID != meetingID {
			kept = append(kept, m)
		}
	}
	index.Meetings = append(kept, b.buildEntry(meetingID, projectName, jsonPath, transcriptPath))

	sort.SliceStable(index.Meetings, func(i, j int) bool { return index.Meetings[i].Timestamp > index.Meetings[j].Timestamp })
	index.TotalMeetings = len(index.Meetings)
	index.UpdatedAt = now

	if err := b.indexes.Save(projectName, index); err != nil {
		return apperrors.ErrIndexUpdateFailed(err)
	}
	if b.logger != nil {
		b.logger.Info("index updated with meeting",
			zap.String("project", projectName),
			zap.String("meeting_id", meetingID),
		)
	}
	return nil
}

// Search scores every indexed meeting against the query and returns the
// strongest matches, best first, at most maxResults. Meetings with a zero
// score are excluded.
func (b *Builder) Search(projectName, query string, maxResults int) ([]entities.MeetingIndexEntry, error) {
	if !b.indexes.Exists(projectName) {
		return nil, apperrors.ErrIndexNotFound
	}
	index, err := b.indexes.Load(projectName)
	if err != nil {
		return nil, apperrors.ErrIndexUpdateFailed(err)
	}

	queryLower := strings.ToLower(query)
	queryWords := strings.Fields(queryLower)

	type scored struct {
		entry entities.MeetingIndexEntry
		score float64
	}
	var results []scored
	for _, m := range index.Meetings {
		if score := relevanceScore(m, queryLower, queryWords); score > 0 {
			results = append(results, scored{entry: m, score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	out := make([]entities.MeetingIndexEntry, len(results))
	for i, r := range results {
		out[i] = r.entry
	}
	return out, nil
}

func relevanceScore(m entities.MeetingIndexEntry, queryLower string, queryWords []string) float64 {
	fields := []struct {
		text   string
		weight float64
	}{
		{strings.ToLower(m.MeetingName), weightName},
		{strings.ToLower(strings.Join(m.Decisions, " ")), weightDecisions},
		{strings.ToLower(strings.Join(m.ActionItems, " ")), weightActions},
		{strings.ToLower(strings.Join(m.Risks, " ")), weightRisks},
		{strings.ToLower(strings.Join(m.OpenQuestions, " ")), weightOpenQuestions},
		{strings.ToLower(strings.Join(m.Keywords, " ")), weightKeywords},
		{strings.ToLower(m.FullTranscript), weightTranscript},
	}

	score := 0.0
	for _, f := range fields {
		if f.text == "" {
			continue
		}
		if strings.Contains(f.text, queryLower) {
			score += f.weight * 10
		}
		for _, w := range queryWords {
			if strings.Contains(f.text, w) {
				score += f.weight
			}
		}
	}
	return score
}

// scanNotesFiles maps meeting ids (file stems) to their notes file paths.
func (b *Builder) scanNotesFiles() map[string]string {
	files := make(map[string]string)
	matches, err := filepath.Glob(filepath.Join(b.jsonNotesDir, "meeting_*_notes.json"))
	if err != nil {
		return files
	}
	for _, path := range matches {
		meetingID := strings.TrimSuffix(filepath.Base(path), ".json")
		files[meetingID] = path
	}
	return files
}

// findTranscriptPath resolves a meeting's transcript file, or "" when none
// was saved.
func (b *Builder) findTranscriptPath(meetingID string) string {
	baseID := strings.TrimSuffix(meetingID, "_notes")
	path := filepath.Join(b.transcriptsDir, baseID+".txt")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
