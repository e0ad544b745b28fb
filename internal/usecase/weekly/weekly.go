package weekly

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var dateHeaderPattern = regexp.MustCompile(`^##\s+(\d{4}-\d{2}-\d{2})\s*$`)

// DateSection is one journal date heading with the raw lines beneath it,
// in file order.
type DateSection struct {
	Date  string
	Lines []string
}

// ParseJournalSections splits journal content into its date sections,
// preserving appearance order. Lines under a repeated date heading merge
// into the first occurrence.
func ParseJournalSections(content string) []DateSection {
	var sections []DateSection
	byDate := make(map[string]int)

	current := -1
	for _, raw := range strings.Split(content, "\n") {
		if m := dateHeaderPattern.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
			date := m[1]
			if i, ok := byDate[date]; ok {
				current = i
			} else {
				byDate[date] = len(sections)
				current = len(sections)
				sections = append(sections, DateSection{Date: date})
			}
			continue
		}
		if current >= 0 {
			sections[current].Lines = append(sections[current].Lines, raw)
		}
	}
	return sections
}

// datesInISOWeek lists the YYYY-MM-DD dates of target's ISO week.
func datesInISOWeek(target time.Time) []string {
	isoYear, isoWeek := target.ISOWeek()
	monday := target.AddDate(0, 0, -int((target.Weekday()+6)%7))

	var dates []string
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		if y, w := d.ISOWeek(); y == isoYear && w == isoWeek {
			dates = append(dates, d.Format("2006-01-02"))
		}
	}
	return dates
}

// selectWeek picks the sections belonging to target's ISO week, falling
// back to the journal's last seven date sections when the week has none.
func selectWeek(sections []DateSection, target time.Time) []DateSection {
	want := make(map[string]bool)
	for _, d := range datesInISOWeek(target) {
		want[d] = true
	}

	var selected []DateSection
	for _, s := range sections {
		if want[s.Date] {
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		start := len(sections) - 7
		if start < 0 {
			start = 0
		}
		selected = sections[start:]
	}
	return selected
}

// weeklyFileName derives the output file name for target's ISO week.
func weeklyFileName(target time.Time) string {
	isoYear, isoWeek := target.ISOWeek()
	return fmt.Sprintf("weekly_%d-%02d.md", isoYear, isoWeek)
}

// renderWeekly builds the weekly markdown: a title plus each selected date
// section verbatim.
func renderWeekly(selected []DateSection, target time.Time) string {
	isoYear, isoWeek := target.ISOWeek()

	var b strings.Builder
	fmt.Fprintf(&b, "# Weekly Summary %d-W%02d\n\n", isoYear, isoWeek)
	for _, s := range selected {
		b.WriteString("## " + s.Date + "\n")
		content := strings.TrimRight(strings.Join(s.Lines, "\n"), "\n")
		if content != "" {
			b.WriteString(content + "\n\n")
		} else {
			b.WriteString("\n")
		}
	}
	return b.String()
}
