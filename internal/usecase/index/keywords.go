package index

import (
	"regexp"
	"sort"
	"strings"
)

const maxKeywords = 20

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// stopWords are filler words excluded from keyword extraction. The set
// skews conversational since the source text is meeting transcripts.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true, "not": true,
	"you": true, "all": true, "can": true, "had": true, "her": true, "was": true,
	"one": true, "our": true, "out": true, "day": true, "get": true, "has": true,
	"him": true, "his": true, "how": true, "its": true, "may": true, "new": true,
	"now": true, "old": true, "see": true, "two": true, "who": true, "boy": true,
	"did": true, "man": true, "way": true, "she": true, "been": true, "call": true,
	"come": true, "each": true, "find": true, "give": true, "hand": true, "have": true,
	"here": true, "keep": true, "last": true, "left": true, "life": true, "live": true,
	"look": true, "made": true, "make": true, "most": true, "move": true, "must": true,
	"name": true, "need": true, "open": true, "over": true, "part": true, "play": true,
	"put": true, "said": true, "same": true, "seem": true, "show": true, "side": true,
	"take": true, "tell": true, "turn": true, "want": true, "well": true, "went": true,
	"were": true, "what": true, "when": true, "will": true, "with": true, "word": true,
	"work": true, "year": true, "think": true, "know": true, "time": true, "would": true,
	"there": true, "could": true, "should": true, "going": true, "like": true, "that": true,
	"this": true, "they": true, "just": true, "about": true, "really": true, "actually": true,
	"yeah": true, "okay": true, "right": true, "thing": true, "things": true,
}

// ExtractKeywords pulls the most frequent non-stop-word terms from text,
// lowercased, at most twenty, most frequent first. Ties keep first-seen
// order so extraction is deterministic.
func ExtractKeywords(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	freq := make(map[string]int)
	var order []string
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}

	sort.SliceStable(order, func(i, j int) bool { return freq[order[i]] > freq[order[j]] })
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}
