package journal

import (
	"strings"

	"github.com/johnquangdev/meeting-scribe/internal/usecase/wiki"
)

// JournalTitle is the top-level heading written to a fresh journal file.
const JournalTitle = "# Journal"

// Entry is one journal line group for a meeting: a headline bullet plus
// indented detail bullets.
type Entry struct {
	Time    string // HH:MM
	Project string
	Meeting string
	Recap   string
	Details []string
}

// Headline renders the entry's top bullet.
func (e Entry) Headline() string {
	return "- [" + e.Time + "] " + e.Project + " — " + e.Meeting + ": " + e.Recap
}

// EnsureDateSection appends a "## YYYY-MM-DD" header (plus a blank line)
// when the journal has none for that date. Calling it again for the same
// date is a no-op.
func EnsureDateSection(content, date string) (string, bool) {
	header := "## " + date
	doc := wiki.Parse(content)
	if _, _, found := doc.FindSectionByHeader(header); found {
		return content, false
	}
	if len(doc.Lines) > 0 && doc.Lines[len(doc.Lines)-1].Kind != wiki.LineBlank {
		doc.Lines = append(doc.Lines, wiki.Line{Kind: wiki.LineBlank, Raw: ""})
	}
	doc.Lines = append(doc.Lines,
		wiki.Line{Kind: wiki.LineSection, Raw: header},
		wiki.Line{Kind: wiki.LineBlank, Raw: ""},
	)
	return doc.Serialize(), true
}

// AppendEntry inserts the entry at the top of the date's section, right
// after the date header and any blank lines that follow it, so the newest
// entry reads first within a day. Entries are never deduplicated; the
// journal is an append-only log.
func AppendEntry(content, date string, e Entry) string {
	content, _ = EnsureDateSection(content, date)
	doc := wiki.Parse(content)
	start, end, _ := doc.FindSectionByHeader("## " + date)

	insertAt := start + 1
	for insertAt < end && doc.Lines[insertAt].Kind == wiki.LineBlank {
		insertAt++
	}

	block := []wiki.Line{{Kind: wiki.LineBullet, Raw: e.Headline()}}
	for _, d := range e.Details {
		if s := strings.TrimSpace(d); s != "" {
			block = append(block, wiki.Line{Kind: wiki.LineText, Raw: "  - " + s})
		}
	}
	block = append(block, wiki.Line{Kind: wiki.LineBlank, Raw: ""})
	doc.Insert(insertAt, block)
	return doc.Serialize()
}
