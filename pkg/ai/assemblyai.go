package ai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// AssemblyAIBackend transcribes local audio files through AssemblyAI using
// the official SDK: the file is uploaded, then the SDK polls until the
// transcript completes.
type AssemblyAIBackend struct {
	apiKey string
	client *aai.Client
	logger *zap.Logger
}

// NewAssemblyAIBackend creates a transcription backend using the provided
// config. Pass a nil config to fall back to environment variables.
func NewAssemblyAIBackend(cfg *config.AssemblyAIConfig, logger *zap.Logger) *AssemblyAIBackend {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}

	b := &AssemblyAIBackend{apiKey: apiKey, logger: logger}
	if apiKey != "" {
		b.client = aai.NewClient(apiKey)
	} else if logger != nil {
		logger.Warn("ASSEMBLYAI_API_KEY missing; transcription unavailable")
	}
	return b
}

// Transcribe uploads the audio file and returns the finished transcript
// text. Transient submission failures are retried with exponential backoff;
// a provider-side "error" transcript status is not retried.
func (b *AssemblyAIBackend) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if b.apiKey == "" {
		return "", apperrors.ErrTranscriptionUnavailable
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return "", fmt.Errorf("audio file not found: %s: %w", audioPath, err)
	}
	if b.logger != nil {
		b.logger.Info("transcription request",
			zap.String("file", audioPath),
			zap.Int64("size_bytes", info.Size()),
		)
	}

	var text string
	submitFn := func() error {
		f, err := os.Open(audioPath)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to open audio file: %w", err))
		}
		defer f.Close()

		start := time.Now()
		transcript, err := b.client.Transcripts.TranscribeFromReader(ctx, f, &aai.TranscriptOptionalParams{
			SpeakerLabels:     aai.Bool(true),
			LanguageDetection: aai.Bool(true),
		})
		if err != nil {
			return err
		}
		if transcript.Status == aai.TranscriptStatusError {
			msg := "unknown provider error"
			if transcript.Error != nil {
				msg = *transcript.Error
			}
			return backoff.Permanent(fmt.Errorf("assemblyai rejected transcript: %s", msg))
		}
		if transcript.Text != nil {
			text = strings.TrimSpace(*transcript.Text)
		}
		if b.logger != nil {
			b.logger.Info("transcription completed",
				zap.Duration("elapsed", time.Since(start)),
				zap.Int("chars", len(text)),
			)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 2 * time.Minute

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		if b.logger != nil {
			b.logger.Error("transcription failed after retries", zap.Error(err))
		}
		return "", err
	}
	return text, nil
}
