package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

const suggestionPrompt = "Extract a one-line recap and detailed structured lists from the meeting transcript. " +
	"Return strict JSON with keys: recap (string), decisions (array of strings), " +
	"actions (array of strings), risks (array of strings), open_questions (array of strings). " +
	"Guidelines: " +
	"- Recap: 1-2 sentences capturing overall scope and key themes. " +
	"- For every list item, be specific and include available context: what/why, who/owner, dates or deadlines, key numbers. " +
	"- Split multi-part ideas into separate bullets; avoid merging unrelated points. " +
	"- Prefer completeness over brevity; include all significant items, even minor ones. " +
	"- Keep each string under ~250 characters; do not include markdown or extra commentary."

// OpenAIClient is a minimal client for OpenAI-compatible chat completion
// APIs used for suggestion generation.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewOpenAIClient creates a suggestion backend using values from the
// provided config. Pass a nil config to fall back to environment variables.
func NewOpenAIClient(cfg *config.OpenAIConfig, logger *zap.Logger) *OpenAIClient {
	var apiKey, base, model string
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		model = cfg.Model
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if base == "" {
		base = os.Getenv("OPENAI_API_BASE")
		if base == "" {
			base = "https://api.openai.com"
		}
	}
	if model == "" {
		model = "gpt-4o"
	}

	if apiKey == "" && logger != nil {
		logger.Warn("OPENAI_API_KEY missing; suggestions unavailable")
	}

	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
		logger:  logger,
	}
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// ChatMessage is a single chat turn
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the transcript to the LLM and parses its strict-JSON
// answer into MeetingSuggestions. Empty input returns empty suggestions
// without a network call. Server-class failures are retried with backoff;
// client-class failures and unparsable responses are not.
func (g *OpenAIClient) Generate(ctx context.Context, transcript string) (entities.MeetingSuggestions, error) {
	if g.apiKey == "" {
		return entities.MeetingSuggestions{}, apperrors.ErrSuggestionUnavailable
	}
	if strings.TrimSpace(transcript) == "" {
		return entities.EmptySuggestions(), nil
	}

	reqBody := ChatRequest{
		Model: g.model,
		Messages: []ChatMessage{
			{Role: "system", Content: "You extract structured meeting notes with detailed, specific bullets and comprehensive coverage while preserving a strict JSON output."},
			{Role: "user", Content: fmt.Sprintf("%s\n\nTranscript:\n%s", suggestionPrompt, transcript)},
		},
		Temperature: 0.2,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return entities.MeetingSuggestions{}, err
	}

	endpoint := g.baseURL + "/v1/chat/completions"

	var content string
	callFn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
		req.Header.Set("Content-Type", "application/json")

		start := time.Now()
		resp, err := g.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if g.logger != nil {
			g.logger.Info("suggestion request finished",
				zap.Int("status", resp.StatusCode),
				zap.Duration("elapsed", time.Since(start)),
			)
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("suggestion server error %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("suggestion request failed (client error %d)", resp.StatusCode))
		}

		var cr ChatResponse
		if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err))
		}
		if len(cr.Choices) == 0 {
			return backoff.Permanent(fmt.Errorf("%w: empty choices", apperrors.ErrMalformedResponse))
		}
		content = cr.Choices[0].Message.Content
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 10 * time.Second

	if err := backoff.Retry(callFn, backoff.WithContext(bo, ctx)); err != nil {
		if g.logger != nil {
			g.logger.Error("suggestion generation failed", zap.Error(err))
		}
		return entities.MeetingSuggestions{}, err
	}

	suggestions, err := ParseSuggestionsJSON(content)
	if err != nil {
		if g.logger != nil {
			g.logger.Error("failed to parse suggestion JSON", zap.Error(err))
		}
		return entities.MeetingSuggestions{}, err
	}

	if g.logger != nil {
		g.logger.Info("suggestions generated",
			zap.Int("decisions", len(suggestions.Decisions)),
			zap.Int("actions", len(suggestions.Actions)),
			zap.Int("risks", len(suggestions.Risks)),
			zap.Int("open_questions", len(suggestions.OpenQuestions)),
		)
	}
	return suggestions, nil
}
