package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	wikiFileName  = "wiki.md"
	indexFileName = "meetings_index.json"
)

// ProjectStore manages the per-project folder layout:
//
//	projects/<Name>/wiki.md
//	projects/<Name>/meetings/
//	projects/<Name>/meetings_index.json
//
// plus the legacy shared-wiki location project_wikis/<Name>_wiki.md used
// for projects that predate the per-project layout.
type ProjectStore struct {
	projectsDir     string
	projectWikisDir string
	docs            *DocumentStore
	logger          *zap.Logger
}

// NewProjectStore constructs a ProjectStore rooted at projectsDir.
func NewProjectStore(projectsDir, projectWikisDir string, docs *DocumentStore, logger *zap.Logger) *ProjectStore {
	return &ProjectStore{
		projectsDir:     projectsDir,
		projectWikisDir: projectWikisDir,
		docs:            docs,
		logger:          logger,
	}
}

// EnsureStructure creates the project directory, its meetings subdirectory
// and an initial wiki.md when absent. Returns the project directory.
func (p *ProjectStore) EnsureStructure(projectName string) (string, error) {
	projectDir := p.ProjectDir(projectName)
	if err := os.MkdirAll(filepath.Join(projectDir, "meetings"), 0o755); err != nil {
		return "", fmt.Errorf("failed to create project structure for %s: %w", projectName, err)
	}

	wikiPath := filepath.Join(projectDir, wikiFileName)
	if !p.docs.Exists(wikiPath) {
		template := fmt.Sprintf("# %s Project Wiki\n\n## Meeting History\n\n---\n", projectName)
		if err := p.docs.Write(wikiPath, template); err != nil {
			return "", err
		}
		if p.logger != nil {
			p.logger.Info("created project wiki", zap.String("path", wikiPath))
		}
	}
	return projectDir, nil
}

// ProjectDir returns the directory for a project.
func (p *ProjectStore) ProjectDir(projectName string) string {
	return filepath.Join(p.projectsDir, sanitizeProjectName(projectName))
}

// WikiPath returns the project's wiki.md path.
func (p *ProjectStore) WikiPath(projectName string) string {
	return filepath.Join(p.ProjectDir(projectName), wikiFileName)
}

// MeetingsDir returns the project's meetings directory.
func (p *ProjectStore) MeetingsDir(projectName string) string {
	return filepath.Join(p.ProjectDir(projectName), "meetings")
}

// IndexPath returns the project's meeting index file path.
func (p *ProjectStore) IndexPath(projectName string) string {
	return filepath.Join(p.ProjectDir(projectName), indexFileName)
}

// Exists reports whether the project has been initialized (directory plus
// wiki.md present).
func (p *ProjectStore) Exists(projectName string) bool {
	return p.docs.Exists(p.WikiPath(projectName))
}

// List returns all initialized project names, sorted.
func (p *ProjectStore) List() []string {
	entries, err := os.ReadDir(p.projectsDir)
	if err != nil {
		return nil
	}
	var projects []string
	for _, e := range entries {
		if e.IsDir() && p.docs.Exists(filepath.Join(p.projectsDir, e.Name(), wikiFileName)) {
			projects = append(projects, e.Name())
		}
	}
	sort.Strings(projects)
	return projects
}

// EnsureLegacyWiki creates (if needed) and returns the legacy shared-wiki
// path project_wikis/<Name>_wiki.md for projects without the per-project
// layout.
func (p *ProjectStore) EnsureLegacyWiki(projectName string) (string, error) {
	if err := os.MkdirAll(p.projectWikisDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create project wikis dir: %w", err)
	}
	wikiPath := filepath.Join(p.projectWikisDir, projectName+"_wiki.md")
	if !p.docs.Exists(wikiPath) {
		if err := p.docs.Write(wikiPath, fmt.Sprintf("# %s Wiki\n\n", projectName)); err != nil {
			return "", err
		}
		if p.logger != nil {
			p.logger.Info("created legacy project wiki", zap.String("path", wikiPath))
		}
	}
	return wikiPath, nil
}

// ResolveWikiPath returns the wiki file for a project: the per-project
// wiki.md when the project is initialized, otherwise the legacy shared
// location, created on demand.
func (p *ProjectStore) ResolveWikiPath(projectName string) (string, error) {
	if p.Exists(projectName) {
		return p.WikiPath(projectName), nil
	}
	return p.EnsureLegacyWiki(projectName)
}

// sanitizeProjectName makes a project name safe for use as a directory
// name. Empty results fall back to "Project".
func sanitizeProjectName(name string) string {
	sanitized := name
	for _, c := range `<>:"/\|?*` {
		sanitized = strings.ReplaceAll(sanitized, string(c), "_")
	}
	sanitized = strings.Trim(sanitized, ". ")
	if sanitized == "" {
		sanitized = "Project"
	}
	return sanitized
}
