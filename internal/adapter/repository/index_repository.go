package repository

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
)

// IndexRepository persists per-project meeting indexes as JSON files under
// each project's directory.
type IndexRepository struct {
	projects *storage.ProjectStore
	docs     *storage.DocumentStore
	logger   *zap.Logger
}

// NewIndexRepository constructs an IndexRepository.
func NewIndexRepository(projects *storage.ProjectStore, docs *storage.DocumentStore, logger *zap.Logger) *IndexRepository {
	return &IndexRepository{projects: projects, docs: docs, logger: logger}
}

// Load reads a project's index file. Returns nil when no index exists yet.
func (r *IndexRepository) Load(projectName string) (*entities.MeetingIndex, error) {
	content, ok, err := r.docs.ReadIfExists(r.projects.IndexPath(projectName))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var index entities.MeetingIndex
	if err := json.Unmarshal([]byte(content), &index); err != nil {
		return nil, fmt.Errorf("failed to parse index for %s: %w", projectName, err)
	}
	return &index, nil
}

// Save writes the whole index back for a project, creating the project
// structure when needed.
func (r *IndexRepository) Save(projectName string, index *entities.MeetingIndex) error {
	if _, err := r.projects.EnsureStructure(projectName); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize index for %s: %w", projectName, err)
	}
	path := r.projects.IndexPath(projectName)
	if err := r.docs.Write(path, string(payload)+"\n"); err != nil {
		return err
	}
	if r.logger != nil {
		r.logger.Debug("saved meeting index", zap.String("path", path), zap.Int("meetings", index.TotalMeetings))
	}
	return nil
}

// Exists reports whether an index file is present for the project.
func (r *IndexRepository) Exists(projectName string) bool {
	return r.docs.Exists(r.projects.IndexPath(projectName))
}
