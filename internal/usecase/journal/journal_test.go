package journal

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
)

func TestEnsureDateSectionIsIdempotent(t *testing.T) {
	content := "# Journal\n\n"

	once, changed := EnsureDateSection(content, "2026-08-28")
	require.True(t, changed)
	assert.Contains(t, once, "## 2026-08-28")

	twice, changed := EnsureDateSection(once, "2026-08-28")
	assert.False(t, changed)
	assert.Equal(t, once, twice)
}

func TestAppendEntryNewestFirstWithinDay(t *testing.T) {
	content := "# Journal\n\n"
	content = AppendEntry(content, "2026-08-28", Entry{Time: "09:00", Project: "Aiba", Meeting: "Standup", Recap: "morning sync"})
	content = AppendEntry(content, "2026-08-28", Entry{Time: "14:00", Project: "Aiba", Meeting: "Review", Recap: "afternoon review"})

	first := strings.Index(content, "afternoon review")
	second := strings.Index(content, "morning sync")
	require.Greater(t, first, 0)
	require.Greater(t, second, 0)
	assert.Less(t, first, second, "newer entry should appear before older one")
	assert.Equal(t, 1, strings.Count(content, "## 2026-08-28"))
}

func TestAppendEntryNeverDeduplicates(t *testing.T) {
	e := Entry{Time: "09:00", Project: "Aiba", Meeting: "Standup", Recap: "same recap"}
	content := AppendEntry("# Journal\n\n", "2026-08-28", e)
	content = AppendEntry(content, "2026-08-28", e)
	assert.Equal(t, 2, strings.Count(content, "same recap"))
}

func TestAppendEntryRendersDetails(t *testing.T) {
	e := Entry{
		Time:    "10:30",
		Project: "Aiba",
		Meeting: "Planning",
		Recap:   "planned the sprint",
		Details: []string{"Topic: sprint goals", "To Do: groom backlog", "Accomplished: closed epic"},
	}
	content := AppendEntry("# Journal\n\n", "2026-08-28", e)

	assert.Contains(t, content, "- [10:30] Aiba — Planning: planned the sprint")
	assert.Contains(t, content, "  - Topic: sprint goals")
	assert.Contains(t, content, "  - To Do: groom backlog")
	assert.Contains(t, content, "  - Accomplished: closed epic")
}

func TestAppendEntryKeepsOtherDateSections(t *testing.T) {
	content := "# Journal\n\n## 2026-08-27\n\n- [16:00] Aiba — Retro: retro notes\n\n"
	content = AppendEntry(content, "2026-08-28", Entry{Time: "09:00", Project: "Aiba", Meeting: "Standup", Recap: "today"})

	assert.Contains(t, content, "## 2026-08-27")
	assert.Contains(t, content, "retro notes")
	assert.Contains(t, content, "## 2026-08-28")
	// the older day's content stays under its own header
	assert.Less(t, strings.Index(content, "retro notes"), strings.Index(content, "## 2026-08-28"))
}

func TestServiceCreatesJournalFile(t *testing.T) {
	dir := t.TempDir()
	docs := storage.NewDocumentStore(nil)
	path := filepath.Join(dir, "Journal_wiki.md")

	fixed := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	svc := NewService(path, docs, nil).WithClock(func() time.Time { return fixed })

	sugg := entities.MeetingSuggestions{
		Recap:   "kickoff recap",
		Actions: []string{"write the plan"},
	}
	require.NoError(t, svc.AppendMeetingEntry("Aiba", "Kickoff", sugg))

	content, err := docs.Read(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content, "# Journal\n"))
	assert.Contains(t, content, "## 2026-08-28")
	assert.Contains(t, content, "- [09:30] Aiba — Kickoff: kickoff recap")
	assert.Contains(t, content, "  - Topic: kickoff recap")
	assert.Contains(t, content, "  - To Do: write the plan")
}

func TestServiceFallsBackToMeetingNameWhenRecapEmpty(t *testing.T) {
	dir := t.TempDir()
	docs := storage.NewDocumentStore(nil)
	path := filepath.Join(dir, "Journal_wiki.md")

	fixed := time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)
	svc := NewService(path, docs, nil).WithClock(func() time.Time { return fixed })

	require.NoError(t, svc.AppendMeetingEntry("Aiba", "Quiet Meeting", entities.MeetingSuggestions{}))

	content, err := docs.Read(path)
	require.NoError(t, err)
	assert.Contains(t, content, "- [11:00] Aiba — Quiet Meeting: Quiet Meeting")
}
