package index

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// notesPayload covers both notes file shapes: the normal structured form
// and the error envelope older runs produced, where the model's fenced
// JSON answer survives only inside raw_output.
type notesPayload struct {
	Error     json.RawMessage `json:"error"`
	RawOutput string          `json:"raw_output"`

	Decisions     []string `json:"decisions"`
	ActionItems   []string `json:"action_items"`
	Risks         []string `json:"risks"`
	OpenQuestions []string `json:"open_questions"`
}

var fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n```")

// meetingTimestamp derives the unix timestamp encoded in a meeting id of
// the form meeting_<unix>[_notes]. Unparsable ids yield 0.
func meetingTimestamp(meetingID string) int64 {
	s := strings.TrimPrefix(meetingID, "meeting_")
	s = strings.TrimSuffix(s, "_notes")
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ts < 0 {
		return 0
	}
	return ts
}

// buildEntry assembles a searchable index entry from a meeting's notes
// file and optional transcript. Unreadable or malformed inputs degrade to
// empty fields rather than failing the whole build.
func (b *Builder) buildEntry(meetingID, projectName, jsonPath, transcriptPath string) entities.MeetingIndexEntry {
	ts := meetingTimestamp(meetingID)

	date := "unknown"
	meetingName := "Meeting " + meetingID
	if ts > 0 {
		t := time.Unix(ts, 0)
		date = t.Format("2006-01-02")
		meetingName = "Meeting " + t.Format("2006-01-02 15:04")
	}

	notes := b.loadNotes(jsonPath)

	var transcript string
	if transcriptPath != "" {
		content, ok, err := b.docs.ReadIfExists(transcriptPath)
		if err != nil && b.logger != nil {
			b.logger.Warn("failed to read transcript", zap.String("path", transcriptPath), zap.Error(err))
		}
		if ok {
			transcript = strings.TrimSpace(content)
		}
	}

	allText := strings.Join([]string{
		meetingName,
		strings.Join(notes.Decisions, " "),
		strings.Join(notes.ActionItems, " "),
		strings.Join(notes.Risks, " "),
		strings.Join(notes.OpenQuestions, " "),
		transcript,
	}, " ")

	return entities.MeetingIndexEntry{
		MeetingID:          meetingID,
		Timestamp:          ts,
		Date:               date,
		MeetingName:        meetingName,
		ProjectName:        projectName,
		Decisions:          notes.Decisions,
		ActionItems:        notes.ActionItems,
		Risks:              notes.Risks,
		OpenQuestions:      notes.OpenQuestions,
		FullTranscript:     transcript,
		JSONFilePath:       jsonPath,
		TranscriptFilePath: transcriptPath,
		WordCount:          len(strings.Fields(allText)),
		Keywords:           ExtractKeywords(allText),
	}
}

func (b *Builder) loadNotes(jsonPath string) notesPayload {
	var payload notesPayload

	content, ok, err := b.docs.ReadIfExists(jsonPath)
	if err != nil || !ok {
		if err != nil && b.logger != nil {
			b.logger.Warn("failed to read meeting notes", zap.String("path", jsonPath), zap.Error(err))
		}
		return payload
	}

	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		if b.logger != nil {
			b.logger.Warn("failed to parse meeting notes", zap.String("path", jsonPath), zap.Error(err))
		}
		return notesPayload{}
	}

	if len(payload.Error) > 0 && payload.RawOutput != "" {
		recovered := notesPayload{}
		if m := fencedJSONPattern.FindStringSubmatch(payload.RawOutput); m != nil {
			if err := json.Unmarshal([]byte(m[1]), &recovered); err != nil && b.logger != nil {
				b.logger.Warn("failed to recover notes from error envelope", zap.String("path", jsonPath), zap.Error(err))
			}
		}
		return recovered
	}
	return payload
}
