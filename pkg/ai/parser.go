package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// suggestionPayload mirrors the strict-JSON shape the prompt demands.
type suggestionPayload struct {
	Recap         string   `json:"recap"`
	Decisions     []string `json:"decisions"`
	Actions       []string `json:"actions"`
	Risks         []string `json:"risks"`
	OpenQuestions []string `json:"open_questions"`
}

// ParseSuggestionsJSON parses the LLM answer into MeetingSuggestions.
// The model may wrap its JSON in a markdown code fence; that is stripped
// before parsing.
func ParseSuggestionsJSON(jsonString string) (entities.MeetingSuggestions, error) {
	jsonString = ExtractJSON(jsonString)

	var payload suggestionPayload
	if err := json.Unmarshal([]byte(jsonString), &payload); err != nil {
		return entities.MeetingSuggestions{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return entities.MeetingSuggestions{
		Recap:         strings.TrimSpace(payload.Recap),
		Decisions:     cleanList(payload.Decisions),
		Actions:       cleanList(payload.Actions),
		Risks:         cleanList(payload.Risks),
		OpenQuestions: cleanList(payload.OpenQuestions),
	}, nil
}

// ExtractJSON extracts JSON content from markdown code blocks or plain text
func ExtractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}
