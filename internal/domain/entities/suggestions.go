package entities

// MeetingSuggestions is the structured output of suggestion generation:
// a short recap plus the extracted note lists. Immutable once produced.
type MeetingSuggestions struct {
	Recap         string   `json:"recap"`
	Decisions     []string `json:"decisions"`
	Actions       []string `json:"actions"`
	Risks         []string `json:"risks"`
	OpenQuestions []string `json:"open_questions"`
}

// EmptySuggestions returns a MeetingSuggestions with all fields empty.
func EmptySuggestions() MeetingSuggestions {
	return MeetingSuggestions{
		Decisions:     []string{},
		Actions:       []string{},
		Risks:         []string{},
		OpenQuestions: []string{},
	}
}

// IsEmpty reports whether the suggestions carry no content at all.
func (s MeetingSuggestions) IsEmpty() bool {
	return s.Recap == "" &&
		len(s.Decisions) == 0 &&
		len(s.Actions) == 0 &&
		len(s.Risks) == 0 &&
		len(s.OpenQuestions) == 0
}

// Notes projects the suggestions into the persisted JSON-notes shape.
func (s MeetingSuggestions) Notes() MeetingNotes {
	return MeetingNotes{
		Decisions:     s.Decisions,
		ActionItems:   s.Actions,
		Risks:         s.Risks,
		OpenQuestions: s.OpenQuestions,
	}
}

// MeetingNotes is the per-meeting JSON notes file payload.
type MeetingNotes struct {
	Decisions     []string `json:"decisions"`
	ActionItems   []string `json:"action_items"`
	Risks         []string `json:"risks"`
	OpenQuestions []string `json:"open_questions"`
}
