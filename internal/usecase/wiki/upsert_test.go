package wiki

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

func sampleSuggestions() entities.MeetingSuggestions {
	return entities.MeetingSuggestions{
		Recap:     "Reviewed the Q3 roadmap. Discussed database migration plan.",
		Decisions: []string{"Adopt Postgres 16 for the new cluster"},
		Actions:   []string{"Alice drafts the migration runbook by Friday"},
	}
}

func TestUpsertSectionCreatesNewSection(t *testing.T) {
	content := "# Demo Wiki\n\nSome intro text.\n"
	updated, changed := UpsertSection(content, "2026-08-28", "Planning Sync", "meeting_100", sampleSuggestions())

	require.True(t, changed)
	assert.Contains(t, updated, "## [2026-08-28] Planning Sync  <!-- id:meeting_100 -->")
	assert.Contains(t, updated, "### Topics Discussed")
	assert.Contains(t, updated, "- Reviewed the Q3 roadmap.")
	assert.Contains(t, updated, "- Discussed database migration plan.")
	assert.Contains(t, updated, "### To Do\n- Alice drafts the migration runbook by Friday")
	assert.Contains(t, updated, "### Accomplished\n- Adopt Postgres 16 for the new cluster")

	// new section lands right after the title, before prior body text
	headerAt := strings.Index(updated, "## [2026-08-28]")
	introAt := strings.Index(updated, "Some intro text.")
	assert.Less(t, headerAt, introAt)
}

func TestUpsertSectionEmptyFileGetsSectionAtTop(t *testing.T) {
	updated, changed := UpsertSection("", "2026-08-28", "Kickoff", "meeting_1", sampleSuggestions())
	require.True(t, changed)
	assert.True(t, strings.HasPrefix(updated, "## [2026-08-28] Kickoff  <!-- id:meeting_1 -->"))
}

func TestUpsertSectionEmptySuggestionsIsByteIdenticalNoOp(t *testing.T) {
	content := "# Demo Wiki\n\n## [2026-01-01] Old  <!-- id:meeting_9 -->\n\n### To Do\n- keep me\n"
	updated, changed := UpsertSection(content, "2026-08-28", "Anything", "meeting_9", entities.EmptySuggestions())
	assert.False(t, changed)
	assert.Equal(t, content, updated)
}

func TestUpsertSectionIsIdempotent(t *testing.T) {
	sugg := sampleSuggestions()
	first, changed := UpsertSection("# Wiki\n", "2026-08-28", "Sync", "meeting_5", sugg)
	require.True(t, changed)

	second, changed := UpsertSection(first, "2026-08-28", "Sync", "meeting_5", sugg)
	assert.False(t, changed)
	assert.Equal(t, first, second)
}

func TestUpsertSectionPreservesManualEdits(t *testing.T) {
	sugg := sampleSuggestions()
	content, _ := UpsertSection("# Wiki\n", "2026-08-28", "Sync", "meeting_5", sugg)

	// user reorders and rewrites a bullet, and adds a note line
	edited := strings.Replace(content, "- Adopt Postgres 16 for the new cluster",
		"- Adopt Postgres 16 for the new cluster (confirmed by infra)", 1)
	edited = strings.Replace(edited, "### To Do", "Manual note.\n\n### To Do", 1)

	more := sugg
	more.Decisions = append([]string{}, sugg.Decisions...)
	more.Decisions = append(more.Decisions, "Freeze schema changes during migration")

	updated, changed := UpsertSection(edited, "2026-08-28", "Sync", "meeting_5", more)
	require.True(t, changed)
	assert.Contains(t, updated, "- Adopt Postgres 16 for the new cluster (confirmed by infra)")
	assert.Contains(t, updated, "Manual note.")
	assert.Contains(t, updated, "- Freeze schema changes during migration")
	// rewritten bullet no longer matches, so the original text comes back
	// as a new bullet; both coexist rather than clobbering the edit
	assert.Contains(t, updated, "- Adopt Postgres 16 for the new cluster\n")
}

func TestUpsertSectionRenamedMeetingMergesIntoExistingSection(t *testing.T) {
	sugg := sampleSuggestions()
	content, _ := UpsertSection("# Wiki\n", "2026-08-28", "Old Name", "meeting_7", sugg)

	more := sugg
	more.Actions = []string{"Bob schedules the cutover window"}
	updated, changed := UpsertSection(content, "2026-08-28", "New Name", "meeting_7", more)

	require.True(t, changed)
	// header keeps the original name; identity is the id marker
	assert.Contains(t, updated, "## [2026-08-28] Old Name  <!-- id:meeting_7 -->")
	assert.NotContains(t, updated, "New Name")
	assert.Contains(t, updated, "- Bob schedules the cutover window")
	assert.Equal(t, 1, strings.Count(updated, "<!-- id:meeting_7 -->"))
}

func TestUpsertSectionAppendsNewBulletsAfterExisting(t *testing.T) {
	content := "# Wiki\n\n## [2026-08-28] Sync  <!-- id:meeting_3 -->\n\n### To Do\n- first task\n- second task\n\n## [2026-08-01] Other  <!-- id:meeting_2 -->\n"
	sugg := entities.MeetingSuggestions{Actions: []string{"second task", "third task"}}

	updated, changed := UpsertSection(content, "2026-08-28", "Sync", "meeting_3", sugg)
	require.True(t, changed)

	todoAt := strings.Index(updated, "### To Do")
	section := updated[todoAt:strings.Index(updated, "## [2026-08-01]")]
	require.Equal(t, 1, strings.Count(section, "- second task"))
	first := strings.Index(section, "- first task")
	second := strings.Index(section, "- second task")
	third := strings.Index(section, "- third task")
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestUpsertSectionAddsMissingSubsection(t *testing.T) {
	content := "# Wiki\n\n## [2026-08-28] Sync  <!-- id:meeting_3 -->\n\n### To Do\n- a task\n"
	sugg := entities.MeetingSuggestions{Risks: []string{"ignored"}, Decisions: []string{"shipped the fix"}}

	updated, changed := UpsertSection(content, "2026-08-28", "Sync", "meeting_3", sugg)
	require.True(t, changed)
	assert.Contains(t, updated, "### Accomplished\n- shipped the fix")
	// risks have no subsection in the wiki layout
	assert.NotContains(t, updated, "ignored")
}

func TestUpsertSectionLeavesOtherSectionsUntouched(t *testing.T) {
	content := "# Wiki\n\n## [2026-08-01] Other  <!-- id:meeting_2 -->\n\n### To Do\n- other task\n"
	updated, changed := UpsertSection(content, "2026-08-28", "Sync", "meeting_3", sampleSuggestions())
	require.True(t, changed)
	assert.Contains(t, updated, "## [2026-08-01] Other  <!-- id:meeting_2 -->\n\n### To Do\n- other task")
}

func TestRecapTopics(t *testing.T) {
	t.Run("splits sentences and lines", func(t *testing.T) {
		topics := RecapTopics("First point. Second point!\n- Third bullet\nno")
		assert.Equal(t, []string{"First point.", "Second point!", "Third bullet"}, topics)
	})

	t.Run("dedupes preserving order", func(t *testing.T) {
		topics := RecapTopics("Same thing. Same thing. Different thing.")
		assert.Equal(t, []string{"Same thing.", "Different thing."}, topics)
	})

	t.Run("caps at twelve", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 20; i++ {
			b.WriteString("Topic number ")
			b.WriteString(strings.Repeat("x", i+1))
			b.WriteString(". ")
		}
		assert.Len(t, RecapTopics(b.String()), 12)
	})

	t.Run("empty recap yields nothing", func(t *testing.T) {
		assert.Empty(t, RecapTopics("   "))
	})
}
