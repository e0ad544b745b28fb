package weekly

import (
	"fmt"
	"strings"
)

const (
	maxTopics       = 10
	maxAccomplished = 20
	maxNextWeek     = 20
)

// Summary is a structured rollup of one week of journal entries.
type Summary struct {
	Dates        []string `json:"dates"`
	Accomplished []string `json:"accomplished"`
	NextWeek     []string `json:"next_week"`
	Topics       []string `json:"topics"`
	ExecSummary  string   `json:"exec_summary"`
}

// rollup folds the selected sections into a Summary by reading the
// journal's line shapes: headline bullets carry the recap after ": ",
// detail bullets carry Topic/To Do/Accomplished prefixes.
func rollup(selected []DateSection) Summary {
	var topics, accomplished, nextWeek []string

	for _, section := range selected {
		for _, raw := range section.Lines {
			ln := strings.TrimSpace(raw)
			switch {
			case strings.HasPrefix(ln, "- ") && strings.Contains(ln, " — "):
				// headline: - [HH:MM] Project — Meeting: recap
				if _, recap, ok := strings.Cut(ln, ": "); ok {
					if recap = strings.TrimSpace(recap); recap != "" {
						topics = append(topics, recap)
					}
				}
			case strings.HasPrefix(ln, "-"):
				text := strings.TrimLeft(ln, "- ")
				lower := strings.ToLower(text)
				switch {
				case strings.HasPrefix(lower, "accomplished:"):
					accomplished = append(accomplished, afterColon(text))
				case strings.HasPrefix(lower, "to do:"):
					nextWeek = append(nextWeek, afterColon(text))
				case strings.HasPrefix(lower, "topic:"):
					topics = append(topics, afterColon(text))
				}
			}
		}
	}

	dates := make([]string, len(selected))
	for i, s := range selected {
		dates[i] = s.Date
	}

	topics = head(unique(topics), maxTopics)
	accomplished = head(unique(accomplished), maxAccomplished)
	nextWeek = head(unique(nextWeek), maxNextWeek)

	return Summary{
		Dates:        dates,
		Accomplished: accomplished,
		NextWeek:     nextWeek,
		Topics:       topics,
		ExecSummary:  execSummary(dates, topics, accomplished, nextWeek),
	}
}

func afterColon(s string) string {
	_, rest, _ := strings.Cut(s, ":")
	return strings.TrimSpace(rest)
}

// unique drops blank and case-insensitive duplicate entries, keeping
// first-seen order.
func unique(items []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, it := range items {
		it = strings.TrimSpace(it)
		key := strings.ToLower(it)
		if it == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

// execSummary composes a three-to-five sentence narrative from the
// rolled-up lists.
func execSummary(dates, topics, accomplished, nextWeek []string) string {
	var sentences []string
	if len(dates) > 0 {
		sentences = append(sentences, fmt.Sprintf("This week covered %d day(s): %s.", len(dates), strings.Join(dates, ", ")))
	}
	if len(topics) > 0 {
		sentences = append(sentences, "Key topics included "+strings.Join(head(topics, 3), ", ")+".")
	}
	if len(accomplished) > 0 {
		sentences = append(sentences, fmt.Sprintf("We completed %d item(s), highlighting %s.", len(accomplished), strings.Join(head(accomplished, 3), ", ")))
	}
	if len(nextWeek) > 0 {
		sentences = append(sentences, "Next week we plan to focus on "+strings.Join(head(nextWeek, 3), ", ")+".")
	}
	if len(sentences) < 3 {
		sentences = append(sentences, "Progress continued across projects with ongoing coordination and planning.")
	}
	if len(sentences) > 5 {
		sentences = sentences[:5]
	}
	return strings.Join(sentences, " ")
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
