package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// TranscriptionBackend converts a recorded audio file into text.
type TranscriptionBackend interface {
	// Transcribe transcribes the audio file at audioPath.
	// Returns errors.ErrTranscriptionUnavailable when no credential is
	// configured, without attempting the network.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// SuggestionBackend extracts structured meeting notes from a transcript.
type SuggestionBackend interface {
	// Generate produces MeetingSuggestions from transcript text.
	// Empty input yields all-empty suggestions without invoking the network.
	// Returns errors.ErrSuggestionUnavailable when no credential is configured.
	Generate(ctx context.Context, transcript string) (entities.MeetingSuggestions, error)
}

// Recorder captures audio into a single output file.
type Recorder interface {
	// Start begins capturing to outputPath. Returns true if started.
	Start(outputPath string) bool

	// Stop ends the capture. Returns true if stopped cleanly.
	Stop() bool

	// IsRecording reports whether a capture is active.
	IsRecording() bool

	// OutputPath is the output file for the current/last recording,
	// or "" when none.
	OutputPath() string
}
