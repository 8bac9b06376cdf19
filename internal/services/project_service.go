package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dconn.dev/folio/internal/models"
)

// ErrNotFound is returned when no project has the requested slug
var ErrNotFound = errors.New("project not found")

// ProjectService holds the loaded project list for the API and detail pages
type ProjectService struct {
	mu       sync.RWMutex
	fetcher  Fetcher
	projects []models.Project
}

// NewProjectService creates a ProjectService backed by fetcher
func NewProjectService(fetcher Fetcher) *ProjectService {
	return &ProjectService{fetcher: fetcher}
}

// Reload fetches the list again and swaps it in.
// On failure the previous list is kept.
func (s *ProjectService) Reload(ctx context.Context) error {
	projects, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload projects: %w", err)
	}

	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
	return nil
}

// GetAll returns all projects in authored order
func (s *ProjectService) GetAll() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// GetBySlug returns a specific project by slug
func (s *ProjectService) GetBySlug(slug string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.projects {
		if string(s.projects[i].Slug) == slug {
			p := s.projects[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
}
