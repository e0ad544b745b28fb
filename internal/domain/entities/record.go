package entities

import (
	"fmt"
	"strings"
	"time"
)

// MeetingRecord is one row of the meeting history file. Created when a
// transcript is first saved, then updated in place (matched by MeetingID)
// as later stages complete.
type MeetingRecord struct {
	MeetingID      string `json:"meeting_id"`
	Name           string `json:"name"`
	Date           string `json:"date"` // YYYY-MM-DD; legacy rows may carry HH:MM too
	ProjectName    string `json:"project_name"`
	TranscriptPath string `json:"transcript_path"`
	SummaryPath    string `json:"summary_path,omitempty"`
	FullAudioPath  string `json:"full_audio_path,omitempty"`
	JSONNotesPath  string `json:"json_notes_path,omitempty"`
}

// NewMeetingID derives a stable, time-based meeting identifier.
func NewMeetingID(now time.Time) string {
	return fmt.Sprintf("meeting_%d", now.Unix())
}

// Valid reports whether the record carries the minimum fields required to
// be loadable. Invalid rows are skipped, not fatal.
func (r MeetingRecord) Valid() bool {
	return r.MeetingID != "" && r.Date != ""
}

// Normalize rewrites stored paths to forward slashes for a stable on-disk
// representation across platforms.
func (r *MeetingRecord) Normalize() {
	r.TranscriptPath = toSlash(r.TranscriptPath)
	r.SummaryPath = toSlash(r.SummaryPath)
	r.FullAudioPath = toSlash(r.FullAudioPath)
	r.JSONNotesPath = toSlash(r.JSONNotesPath)
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
