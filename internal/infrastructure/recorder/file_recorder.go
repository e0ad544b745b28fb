package recorder

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// FileRecorder is a Recorder backed by an audio file that already exists
// on disk. Start adopts the file as the active recording; Stop releases
// it for processing. The CLI uses this to run the capture workflow over
// recordings made by external tools.
type FileRecorder struct {
	mu         sync.Mutex
	recording  bool
	outputPath string
	logger     *zap.Logger
}

// NewFileRecorder constructs a FileRecorder.
func NewFileRecorder(logger *zap.Logger) *FileRecorder {
	return &FileRecorder{logger: logger}
}

// Start adopts the audio file at outputPath. Returns false when the file
// does not exist or a recording is already active.
func (r *FileRecorder) Start(outputPath string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return false
	}
	info, err := os.Stat(outputPath)
	if err != nil || info.IsDir() {
		if r.logger != nil {
			r.logger.Warn("audio file not found", zap.String("path", outputPath), zap.Error(err))
		}
		return false
	}
	r.recording = true
	r.outputPath = outputPath
	if r.logger != nil {
		r.logger.Info("recording adopted", zap.String("path", outputPath), zap.Int64("bytes", info.Size()))
	}
	return true
}

// Stop ends the active recording. Returns false when none is active.
func (r *FileRecorder) Stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return false
	}
	r.recording = false
	return true
}

// IsRecording reports whether a recording is active.
func (r *FileRecorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// OutputPath returns the most recently adopted audio file.
func (r *FileRecorder) OutputPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outputPath
}
