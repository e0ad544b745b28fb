package entities

// MeetingIndexEntry is one meeting's searchable projection in the per
// project index. Rebuilt deterministically from the JSON-notes file plus
// the transcript, never hand-edited.
type MeetingIndexEntry struct {
	MeetingID       string `json:"meeting_id"`
	Timestamp       int64  `json:"timestamp"`
	Date            string `json:"date"` // YYYY-MM-DD
	MeetingName     string `json:"meeting_name"`
	DurationMinutes *int   `json:"duration_minutes"`
	ProjectName     string `json:"project_name"`

	// Content for searching
	Decisions      []string `json:"decisions"`
	ActionItems    []string `json:"action_items"`
	Risks          []string `json:"risks"`
	OpenQuestions  []string `json:"open_questions"`
	FullTranscript string   `json:"full_transcript"`

	// File paths
	JSONFilePath       string `json:"json_file_path"`
	TranscriptFilePath string `json:"transcript_file_path"`

	// Search metadata
	WordCount int      `json:"word_count"`
	Keywords  []string `json:"keywords"`
}

// MeetingIndex is the complete searchable catalog for one project,
// sorted by timestamp descending.
type MeetingIndex struct {
	ProjectName   string              `json:"project_name"`
	CreatedAt     string              `json:"created_at"`
	UpdatedAt     string              `json:"updated_at"`
	TotalMeetings int                 `json:"total_meetings"`
	Meetings      []MeetingIndexEntry `json:"meetings"`
}
