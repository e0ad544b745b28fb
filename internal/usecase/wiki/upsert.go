package wiki

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

const maxRecapTopics = 12

// subsection binds a rendered "### " title to the suggestion field that
// feeds it. Order here is the order new sections are rendered in.
type subsection struct {
	Title string
	Items func(s entities.MeetingSuggestions) []string
}

func meetingSubsections() []subsection {
	return []subsection{
		{Title: "Topics Discussed", Items: func(s entities.MeetingSuggestions) []string { return RecapTopics(s.Recap) }},
		{Title: "To Do", Items: func(s entities.MeetingSuggestions) []string { return s.Actions }},
		{Title: "Accomplished", Items: func(s entities.MeetingSuggestions) []string { return s.Decisions }},
	}
}

// UpsertSection inserts or merges one meeting's section into wiki content.
// Section identity is the meeting id marker embedded in the header, so a
// renamed meeting merges into its existing section without rewriting the
// header. Returns the updated content and whether anything changed; empty
// suggestions are a no-op.
func UpsertSection(content, date, meetingName, meetingID string, s entities.MeetingSuggestions) (string, bool) {
	if s.IsEmpty() {
		return content, false
	}

	doc := Parse(content)
	start, _, found := doc.FindSectionByID(meetingID)
	if !found {
		block := renderSectionBlock(date, meetingName, meetingID, s)
		if len(block) == 0 {
			return content, false
		}
		insertAt := sectionInsertIndex(doc)
		block = padBlock(doc, insertAt, block)
		doc.Insert(insertAt, block)
		return doc.Serialize(), true
	}

	changed := false
	for _, sub := range meetingSubsections() {
		items := sub.Items(s)
		if len(items) == 0 {
			continue
		}
		if mergeSubsection(doc, start, sub.Title, items) {
			changed = true
		}
		// inserts shift line indexes; re-resolve the section start
		start, _, _ = doc.FindSectionByID(meetingID)
	}
	if !changed {
		return content, false
	}
	return doc.Serialize(), true
}

// renderSectionBlock renders a brand-new meeting section: header, then one
// "### " group per non-empty suggestion list, blank-line separated.
func renderSectionBlock(date, meetingName, meetingID string, s entities.MeetingSuggestions) []Line {
	header := SectionHeader(date, meetingName, meetingID)
	block := []Line{{Kind: LineSection, Raw: header}, {Kind: LineBlank, Raw: ""}}
	rendered := false
	for _, sub := range meetingSubsections() {
		items := sub.Items(s)
		if len(items) == 0 {
			continue
		}
		rendered = true
		block = append(block, Line{Kind: LineSubsection, Raw: "### " + sub.Title})
		for _, it := range items {
			block = append(block, Line{Kind: LineBullet, Raw: "- " + it})
		}
		block = append(block, Line{Kind: LineBlank, Raw: ""})
	}
	if !rendered {
		return nil
	}
	return block
}

// sectionInsertIndex finds where a new meeting section belongs: after the
// document's top-level "# " heading and any blank lines that follow it, or
// at the very top when there is no heading.
func sectionInsertIndex(doc *Document) int {
	if len(doc.Lines) == 0 || doc.Lines[0].Kind != LineTitle {
		return 0
	}
	i := 1
	for i < len(doc.Lines) && doc.Lines[i].Kind == LineBlank {
		i++
	}
	return i
}

// padBlock guarantees one blank line between the new block and whatever
// surrounds it at the insertion point. The rendered block already ends
// with a blank line.
func padBlock(doc *Document, insertAt int, block []Line) []Line {
	if insertAt > 0 && doc.Lines[insertAt-1].Kind != LineBlank {
		block = append([]Line{{Kind: LineBlank, Raw: ""}}, block...)
	}
	if insertAt < len(doc.Lines) && doc.Lines[insertAt].Kind == LineBlank {
		block = block[:len(block)-1]
	}
	return block
}

// mergeSubsection merges candidate bullets into a "### <title>" group of
// the section starting at secStart. Existing bullets keep their order and
// exact text; candidates already present (by trimmed text) are dropped and
// new ones are appended after the last existing bullet. A missing group is
// appended at the end of the section.
func mergeSubsection(doc *Document, secStart int, title string, items []string) bool {
	secEnd := doc.sectionEnd(secStart)
	subStart, subEnd, found := doc.FindSubsection(secStart+1, secEnd, title)
	if !found {
		block := []Line{{Kind: LineSubsection, Raw: "### " + title}}
		for _, it := range items {
			block = append(block, Line{Kind: LineBullet, Raw: "- " + it})
		}
		block = append(block, Line{Kind: LineBlank, Raw: ""})
		insertAt := secEnd
		if insertAt > secStart+1 && doc.Lines[insertAt-1].Kind != LineBlank {
			block = append([]Line{{Kind: LineBlank, Raw: ""}}, block...)
		}
		doc.Insert(insertAt, block)
		return true
	}

	existing := make(map[string]bool)
	lastBullet := subStart
	for i := subStart + 1; i < subEnd; i++ {
		if text := BulletText(doc.Lines[i].Raw); text != "" {
			existing[text] = true
			lastBullet = i
		}
	}

	var fresh []Line
	for _, it := range items {
		text := strings.TrimSpace(it)
		if text == "" || existing[text] {
			continue
		}
		existing[text] = true
		fresh = append(fresh, Line{Kind: LineBullet, Raw: "- " + text})
	}
	if len(fresh) == 0 {
		return false
	}
	doc.Insert(lastBullet+1, fresh)
	return true
}

// RecapTopics splits a free-text recap into short topic bullets: one per
// line or sentence, bullet prefixes stripped, fragments under three
// characters dropped, deduplicated in first-seen order, at most twelve.
func RecapTopics(recap string) []string {
	recap = strings.TrimSpace(recap)
	if recap == "" {
		return nil
	}

	seen := make(map[string]bool)
	var topics []string
	for _, frag := range splitRecapFragments(recap) {
		topic := strings.Trim(frag, " -•\t")
		if utf8.RuneCountInString(topic) < 3 {
			continue
		}
		if seen[topic] {
			continue
		}
		seen[topic] = true
		topics = append(topics, topic)
		if len(topics) == maxRecapTopics {
			break
		}
	}
	return topics
}

// splitRecapFragments cuts text on newlines and on sentence-ending
// punctuation followed by whitespace.
func splitRecapFragments(text string) []string {
	var frags []string
	var cur strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' || r == '\r' {
			frags = append(frags, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			frags = append(frags, cur.String())
			cur.Reset()
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) && runes[i+1] != '\n' && runes[i+1] != '\r' {
				i++
			}
		}
	}
	if cur.Len() > 0 {
		frags = append(frags, cur.String())
	}
	return frags
}
