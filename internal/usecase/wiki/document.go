package wiki

import (
	"regexp"
	"strings"
)

// LineKind classifies one line of a Markdown document.
type LineKind int

const (
	LineText LineKind = iota
	LineBlank
	LineTitle      // "# ..." top-level heading
	LineSection    // "## ..." meeting or date section header
	LineSubsection // "### ..." named bullet group
	LineBullet     // "- ..." bullet item
)

// Line is one document line with its classification. Raw holds the exact
// text without the trailing newline, so untouched lines serialize back
// verbatim.
type Line struct {
	Kind LineKind
	Raw  string
}

// Document is an ordered sequence of typed lines. Mutations operate on the
// typed slice; Serialize writes the whole document back.
type Document struct {
	Lines []Line
}

// sectionIDPattern matches the identity marker embedded in generated
// meeting section headers: <!-- id:meeting_123 -->
var sectionIDPattern = regexp.MustCompile(`<!--\s*id:(\S+)\s*-->`)

// Classify determines the kind of a raw line.
func Classify(raw string) LineKind {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return LineBlank
	case strings.HasPrefix(raw, "### "):
		return LineSubsection
	case strings.HasPrefix(raw, "## "):
		return LineSection
	case strings.HasPrefix(raw, "# "):
		return LineTitle
	case strings.HasPrefix(trimmed, "- "):
		return LineBullet
	default:
		return LineText
	}
}

// Parse builds a Document from file content. A missing trailing newline is
// tolerated; Serialize always emits one per line.
func Parse(content string) *Document {
	if content == "" {
		return &Document{}
	}
	content = strings.TrimSuffix(content, "\n")
	rawLines := strings.Split(content, "\n")
	lines := make([]Line, len(rawLines))
	for i, raw := range rawLines {
		lines[i] = Line{Kind: Classify(raw), Raw: raw}
	}
	return &Document{Lines: lines}
}

// Serialize renders the document back to file content.
func (d *Document) Serialize() string {
	if len(d.Lines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, ln := range d.Lines {
		b.WriteString(ln.Raw)
		b.WriteByte('\n')
	}
	return b.String()
}

// Insert splices the given lines in at index i.
func (d *Document) Insert(i int, lines []Line) {
	d.Lines = append(d.Lines[:i], append(append([]Line{}, lines...), d.Lines[i:]...)...)
}

// SectionHeader derives the canonical meeting section header from the
// meeting's date, name and id. The embedded id comment is the section's
// identity key.
func SectionHeader(date, meetingName, meetingID string) string {
	return "## [" + date + "] " + meetingName + "  <!-- id:" + meetingID + " -->"
}

// SectionID extracts the meeting id marker from a section header line, or
// "" when the line carries none.
func SectionID(raw string) string {
	m := sectionIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// FindSectionByID locates the section whose header carries the given
// meeting id. The returned range is [start, end): start is the header line
// index, end is the next "## " line or end-of-document.
func (d *Document) FindSectionByID(meetingID string) (start, end int, ok bool) {
	for i, ln := range d.Lines {
		if ln.Kind == LineSection && SectionID(ln.Raw) == meetingID {
			return i, d.sectionEnd(i), true
		}
	}
	return 0, 0, false
}

// FindSectionByHeader locates a section by exact header line match.
func (d *Document) FindSectionByHeader(header string) (start, end int, ok bool) {
	for i, ln := range d.Lines {
		if ln.Kind == LineSection && strings.TrimSpace(ln.Raw) == strings.TrimSpace(header) {
			return i, d.sectionEnd(i), true
		}
	}
	return 0, 0, false
}

func (d *Document) sectionEnd(start int) int {
	for j := start + 1; j < len(d.Lines); j++ {
		if d.Lines[j].Kind == LineSection {
			return j
		}
	}
	return len(d.Lines)
}

// FindSubsection locates a "### <title>" block within [secStart, secEnd).
// The returned range is [start, end): start is the subsection header line,
// end is the next subsection/section header or secEnd.
func (d *Document) FindSubsection(secStart, secEnd int, title string) (start, end int, ok bool) {
	prefix := "### " + title
	for i := secStart; i < secEnd; i++ {
		if d.Lines[i].Kind == LineSubsection && strings.HasPrefix(d.Lines[i].Raw, prefix) {
			end = secEnd
			for j := i + 1; j < secEnd; j++ {
				if d.Lines[j].Kind == LineSubsection || d.Lines[j].Kind == LineSection {
					end = j
					break
				}
			}
			return i, end, true
		}
	}
	return 0, 0, false
}

// BulletText returns the text of a bullet line without its "- " prefix,
// trimmed. Non-bullet lines return "".
func BulletText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "- ") {
		return ""
	}
	return strings.TrimSpace(trimmed[2:])
}
