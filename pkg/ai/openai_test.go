package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

func chatCompletion(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
}

func newTestClient(baseURL string) *OpenAIClient {
	return NewOpenAIClient(&config.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
	}, nil)
}

func TestGenerate_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("expected 2 messages got %d", len(req.Messages))
		}
		answer := "```json\n{\"recap\": \"Short recap.\", \"decisions\": [\"d1\"], \"actions\": [\"a1\"], \"risks\": [], \"open_questions\": [\"q1\"]}\n```"
		json.NewEncoder(w).Encode(chatCompletion(answer))
	}))
	defer ts.Close()

	sugg, err := newTestClient(ts.URL).Generate(context.Background(), "some transcript")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sugg.Recap != "Short recap." {
		t.Errorf("unexpected recap %q", sugg.Recap)
	}
	if len(sugg.Decisions) != 1 || sugg.Decisions[0] != "d1" {
		t.Errorf("unexpected decisions %v", sugg.Decisions)
	}
	if len(sugg.OpenQuestions) != 1 {
		t.Errorf("unexpected open questions %v", sugg.OpenQuestions)
	}
}

func TestGenerate_RetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(chatCompletion(`{"recap": "ok", "decisions": [], "actions": [], "risks": [], "open_questions": []}`))
	}))
	defer ts.Close()

	sugg, err := newTestClient(ts.URL).Generate(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sugg.Recap != "ok" {
		t.Errorf("unexpected recap %q", sugg.Recap)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected 2 calls got %d", got)
	}
}

func TestGenerate_ClientErrorDoesNotRetry(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	if _, err := newTestClient(ts.URL).Generate(context.Background(), "transcript"); err == nil {
		t.Fatal("expected error for client-class status")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected exactly 1 call got %d", got)
	}
}

func TestGenerate_MalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).Generate(context.Background(), "transcript")
	if !errors.Is(err, apperrors.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse got %v", err)
	}
}

func TestGenerate_WithoutAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	client := NewOpenAIClient(&config.OpenAIConfig{BaseURL: "http://localhost:0"}, nil)

	_, err := client.Generate(context.Background(), "transcript")
	if !errors.Is(err, apperrors.ErrSuggestionUnavailable) {
		t.Fatalf("expected ErrSuggestionUnavailable got %v", err)
	}
}

func TestGenerate_EmptyTranscriptSkipsNetwork(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	sugg, err := newTestClient(ts.URL).Generate(context.Background(), "   \n  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sugg.IsEmpty() {
		t.Errorf("expected empty suggestions got %+v", sugg)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("expected no network call for empty transcript")
	}
}
