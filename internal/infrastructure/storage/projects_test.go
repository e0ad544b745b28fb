package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectStore(t *testing.T) (*ProjectStore, *DocumentStore) {
	t.Helper()
	base := t.TempDir()
	docs := NewDocumentStore(nil)
	return NewProjectStore(filepath.Join(base, "projects"), filepath.Join(base, "project_wikis"), docs, nil), docs
}

func TestEnsureStructureCreatesLayout(t *testing.T) {
	store, docs := newProjectStore(t)

	dir, err := store.EnsureStructure("Aiba")
	require.NoError(t, err)

	assert.True(t, docs.Exists(filepath.Join(dir, "wiki.md")))
	content, err := docs.Read(filepath.Join(dir, "wiki.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(content, "# Aiba Project Wiki\n"))

	// second call leaves the existing wiki alone
	require.NoError(t, docs.Write(store.WikiPath("Aiba"), "edited"))
	_, err = store.EnsureStructure("Aiba")
	require.NoError(t, err)
	content, err = docs.Read(store.WikiPath("Aiba"))
	require.NoError(t, err)
	assert.Equal(t, "edited", content)
}

func TestSanitizeProjectName(t *testing.T) {
	cases := map[string]string{
		`web/api:v2`:   "web_api_v2",
		`  spaced  `:   "spaced",
		`...`:          "Project",
		"Normal Name":  "Normal Name",
		`bad<>|chars?`: "bad___chars_",
	}
	for input, want := range cases {
		if got := sanitizeProjectName(input); got != want {
			t.Errorf("sanitizeProjectName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestListReturnsInitializedProjectsSorted(t *testing.T) {
	store, _ := newProjectStore(t)
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := store.EnsureStructure(name)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, store.List())
}

func TestResolveWikiPath(t *testing.T) {
	store, docs := newProjectStore(t)

	// unknown project falls back to the legacy shared location
	legacy, err := store.ResolveWikiPath("Legacy")
	require.NoError(t, err)
	assert.Contains(t, legacy, "Legacy_wiki.md")
	content, err := docs.Read(legacy)
	require.NoError(t, err)
	assert.Equal(t, "# Legacy Wiki\n\n", content)

	// initialized project resolves to its own wiki.md
	_, err = store.EnsureStructure("Modern")
	require.NoError(t, err)
	modern, err := store.ResolveWikiPath("Modern")
	require.NoError(t, err)
	assert.Equal(t, store.WikiPath("Modern"), modern)
}
