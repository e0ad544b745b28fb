package weekly

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
)

const sampleJournal = `# Journal

## 2026-08-24

- [09:00] Aiba — Standup: sprint kicked off
  - Topic: sprint kicked off
  - To Do: groom the backlog

## 2026-08-26

- [14:00] Aiba — Review: demoed search
  - Topic: demoed search
  - Accomplished: shipped the index builder

## 2026-08-28

- [10:00] Aiba — Planning: cutover planning
  - Topic: cutover planning
  - To Do: schedule the cutover
  - Accomplished: runbook approved
`

func TestParseJournalSections(t *testing.T) {
	sections := ParseJournalSections(sampleJournal)
	require.Len(t, sections, 3)
	assert.Equal(t, "2026-08-24", sections[0].Date)
	assert.Equal(t, "2026-08-28", sections[2].Date)
	assert.Contains(t, strings.Join(sections[1].Lines, "\n"), "demoed search")
}

func TestParseJournalSectionsMergesRepeatedDates(t *testing.T) {
	content := "## 2026-08-24\n- a\n## 2026-08-25\n- b\n## 2026-08-24\n- c\n"
	sections := ParseJournalSections(content)
	require.Len(t, sections, 2)
	joined := strings.Join(sections[0].Lines, "\n")
	assert.Contains(t, joined, "- a")
	assert.Contains(t, joined, "- c")
}

func TestSelectWeekPicksISOWeekDates(t *testing.T) {
	sections := ParseJournalSections(sampleJournal)
	// 2026-08-28 is a Friday; its ISO week spans 08-24 through 08-30
	target := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	selected := selectWeek(sections, target)
	require.Len(t, selected, 3)
}

func TestSelectWeekFallsBackToLastSeven(t *testing.T) {
	sections := ParseJournalSections(sampleJournal)
	// a week with no journal entries at all
	target := time.Date(2026, 12, 7, 0, 0, 0, 0, time.UTC)
	selected := selectWeek(sections, target)
	require.Len(t, selected, 3, "all sections fit within the last-seven fallback")

	var many []DateSection
	for day := 1; day <= 10; day++ {
		many = append(many, DateSection{Date: time.Date(2026, 7, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")})
	}
	selected = selectWeek(many, target)
	assert.Len(t, selected, 7)
	assert.Equal(t, "2026-07-04", selected[0].Date)
}

func TestGenerateWritesWeeklyFile(t *testing.T) {
	dir := t.TempDir()
	docs := storage.NewDocumentStore(nil)
	journalPath := filepath.Join(dir, "Journal_wiki.md")
	weeklyDir := filepath.Join(dir, "weekly")
	require.NoError(t, docs.Write(journalPath, sampleJournal))

	svc := NewService(journalPath, weeklyDir, docs, nil)
	target := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	path, err := svc.Generate(target)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(weeklyDir, "weekly_2026-35.md"), path)

	content, err := docs.Read(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content, "# Weekly Summary 2026-W35\n"))
	assert.Contains(t, content, "## 2026-08-24")
	assert.Contains(t, content, "## 2026-08-28")
	assert.Contains(t, content, "cutover planning")

	// regeneration overwrites
	path2, err := svc.Generate(target)
	require.NoError(t, err)
	assert.Equal(t, path, path2)
}

func TestGenerateWithoutJournalFails(t *testing.T) {
	dir := t.TempDir()
	docs := storage.NewDocumentStore(nil)
	svc := NewService(filepath.Join(dir, "Journal_wiki.md"), filepath.Join(dir, "weekly"), docs, nil)

	_, err := svc.Generate(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, apperrors.ErrNoJournalEntries)
}

func TestRollupCollectsPrefixedBullets(t *testing.T) {
	sections := ParseJournalSections(sampleJournal)
	summary := rollup(sections)

	assert.Equal(t, []string{"2026-08-24", "2026-08-26", "2026-08-28"}, summary.Dates)
	assert.Contains(t, summary.NextWeek, "groom the backlog")
	assert.Contains(t, summary.NextWeek, "schedule the cutover")
	assert.Contains(t, summary.Accomplished, "shipped the index builder")
	assert.Contains(t, summary.Accomplished, "runbook approved")
	assert.Contains(t, summary.Topics, "sprint kicked off")
	assert.NotEmpty(t, summary.ExecSummary)
}

func TestRollupDeduplicatesCaseInsensitively(t *testing.T) {
	content := "## 2026-08-24\n  - To Do: Ship It\n  - To Do: ship it\n  - To Do: ship it\n"
	summary := rollup(ParseJournalSections(content))
	assert.Equal(t, []string{"Ship It"}, summary.NextWeek)
}

func TestRollupCapsLists(t *testing.T) {
	var b strings.Builder
	b.WriteString("## 2026-08-24\n")
	for i := 0; i < 30; i++ {
		b.WriteString("  - Topic: topic number ")
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString("\n")
	}
	summary := rollup(ParseJournalSections(b.String()))
	assert.Len(t, summary.Topics, 10)
}

func TestExecSummaryStaysWithinFiveSentences(t *testing.T) {
	sections := ParseJournalSections(sampleJournal)
	summary := rollup(sections)
	assert.LessOrEqual(t, strings.Count(summary.ExecSummary, ". "), 5)
}
