package ai

import (
	"testing"
)

func TestParseSuggestionsJSON(t *testing.T) {
	raw := `{"recap": "  Recap line.  ", "decisions": ["d1", "  ", "d2"], "actions": ["a1"], "risks": [], "open_questions": null}`

	sugg, err := ParseSuggestionsJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sugg.Recap != "Recap line." {
		t.Errorf("recap not trimmed: %q", sugg.Recap)
	}
	if len(sugg.Decisions) != 2 {
		t.Errorf("blank list items should be dropped, got %v", sugg.Decisions)
	}
	if len(sugg.OpenQuestions) != 0 {
		t.Errorf("nil list should become empty, got %v", sugg.OpenQuestions)
	}
}

func TestParseSuggestionsJSON_Invalid(t *testing.T) {
	if _, err := ParseSuggestionsJSON("definitely not json"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with padding", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.content); got != tc.want {
				t.Errorf("got %q want %q", got, tc.want)
			}
		})
	}
}
