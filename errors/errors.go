package errors

import (
	"errors"
	"fmt"
	"time"
)

// Service availability errors. Signalled before any network attempt so
// callers can short-circuit a stage without retrying.
var (
	ErrTranscriptionUnavailable = errors.New("transcription service unavailable: no API key configured")
	ErrSuggestionUnavailable    = errors.New("suggestion service unavailable: no API key configured")
)

// Workflow errors
var (
	ErrWorkflowBusy      = errors.New("a workflow run is already in flight")
	ErrRecorderStop      = errors.New("recorder failed to stop")
	ErrNoRecording       = errors.New("no recording available")
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrNoJournalEntries  = errors.New("no journal entries found")
	ErrIndexNotFound     = errors.New("no meeting index found for project")
	ErrMalformedResponse = errors.New("malformed provider response")
)

// ErrorCode identifies a failure category for user-visible reporting.
type ErrorCode int

const (
	ErrorCode_INTERNAL ErrorCode = iota
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_RECORDING_STOP_FAILED
	ErrorCode_TRANSCRIPTION_FAILED
	ErrorCode_SUGGESTION_FAILED
	ErrorCode_NOTES_SAVE_FAILED
	ErrorCode_WIKI_UPDATE_FAILED
	ErrorCode_JOURNAL_UPDATE_FAILED
	ErrorCode_INDEX_UPDATE_FAILED
	ErrorCode_IO_FAILED
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_RECORDING_STOP_FAILED:
		return "RECORDING_STOP_FAILED"
	case ErrorCode_TRANSCRIPTION_FAILED:
		return "TRANSCRIPTION_FAILED"
	case ErrorCode_SUGGESTION_FAILED:
		return "SUGGESTION_FAILED"
	case ErrorCode_NOTES_SAVE_FAILED:
		return "NOTES_SAVE_FAILED"
	case ErrorCode_WIKI_UPDATE_FAILED:
		return "WIKI_UPDATE_FAILED"
	case ErrorCode_JOURNAL_UPDATE_FAILED:
		return "JOURNAL_UPDATE_FAILED"
	case ErrorCode_INDEX_UPDATE_FAILED:
		return "INDEX_UPDATE_FAILED"
	case ErrorCode_IO_FAILED:
		return "IO_FAILED"
	default:
		return "INTERNAL"
	}
}

// AppError is the custom error type for the application.
type AppError struct {
	Raw       error
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal error",
		Timestamp: time.Now(),
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		Code:      ErrorCode_NOT_FOUND,
		Message:   fmt.Sprintf("%s not found", resource),
		Timestamp: time.Now(),
	}
}

// Workflow stage errors

func ErrRecordingStopFailed(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_RECORDING_STOP_FAILED,
		Message:   "Failed to stop recording",
		Timestamp: time.Now(),
	}
}

func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_TRANSCRIPTION_FAILED,
		Message:   "Failed to transcribe audio",
		Timestamp: time.Now(),
	}
}

func ErrSuggestionFailed(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_SUGGESTION_FAILED,
		Message:   "Failed to generate meeting suggestions",
		Timestamp: time.Now(),
	}
}

func ErrNotesSaveFailed(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_NOTES_SAVE_FAILED,
		Message:   "Failed to save meeting notes",
		Timestamp: time.Now(),
	}
}

func ErrWikiUpdateFailed(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_WIKI_UPDATE_FAILED,
		Message:   "Failed to update project wiki",
		Timestamp: time.Now(),
	}
}

func ErrJournalUpdateFailed(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_JOURNAL_UPDATE_FAILED,
		Message:   "Failed to update journal",
		Timestamp: time.Now(),
	}
}

func ErrIndexUpdateFailed(err error) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_INDEX_UPDATE_FAILED,
		Message:   "Failed to update meeting index",
		Timestamp: time.Now(),
	}
}

func ErrIO(err error, path string) AppError {
	return AppError{
		Raw:       err,
		Code:      ErrorCode_IO_FAILED,
		Message:   "File operation failed",
		Timestamp: time.Now(),
	}.WithDetail("path", path)
}
