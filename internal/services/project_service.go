package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/gateway"
	"github.com/taskflow/taskflow-go/internal/models"
)

type projectServiceImpl struct {
	broadcaster

	logger  zerolog.Logger
	gateway ProjectGateway
	expired SessionExpiredHandler

	mu       sync.RWMutex
	projects []models.Project
	loading  bool
	err      error
}

func NewProjectService(
	logger zerolog.Logger,
	gw ProjectGateway,
	expired SessionExpiredHandler,
) ProjectsService {
	return &projectServiceImpl{
		logger:  logger,
		gateway: gw,
		expired: expired,
	}
}

func (s *projectServiceImpl) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

func (s *projectServiceImpl) fail(err error, msg string) {
	s.logger.Error().
		Err(err).
		Msg(msg)

	s.mu.Lock()
	s.loading = false
	if !errors.Is(err, gateway.ErrSessionExpired) {
		s.err = err
	}
	s.mu.Unlock()
	s.notify()

	if errors.Is(err, gateway.ErrSessionExpired) && s.expired != nil {
		s.expired()
	}
}

func (s *projectServiceImpl) LoadProjects(ctx context.Context) error {
	s.begin()

	projects, err := s.gateway.ListProjects(ctx)
	if err != nil {
		s.fail(err, "failed to load projects")
		return err
	}

	s.mu.Lock()
	s.projects = projects
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Int("count", len(projects)).
		Msg("loaded projects")
	return nil
}

func (s *projectServiceImpl) CreateProject(ctx context.Context, params gateway.CreateProjectParams) (*models.Project, error) {
	s.begin()

	project, err := s.gateway.CreateProject(ctx, params)
	if err != nil {
		s.fail(err, "failed to create project")
		return nil, err
	}

	s.mu.Lock()
	next := make([]models.Project, 0, len(s.projects)+1)
	next = append(next, s.projects...)
	next = append(next, *project)
	s.projects = next
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Str("project_id", project.ID).
		Msg("created project")
	return project, nil
}

func (s *projectServiceImpl) UpdateProject(ctx context.Context, projectID string, params gateway.UpdateProjectParams) (*models.Project, error) {
	s.begin()

	project, err := s.gateway.UpdateProject(ctx, projectID, params)
	if err != nil {
		s.fail(err, "failed to update project")
		return nil, err
	}

	s.mu.Lock()
	next := make([]models.Project, len(s.projects))
	for i := range s.projects {
		if s.projects[i].ID == project.ID {
			next[i] = *project
		} else {
			next[i] = s.projects[i]
		}
	}
	s.projects = next
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Str("project_id", project.ID).
		Msg("updated project")
	return project, nil
}

func (s *projectServiceImpl) ArchiveProject(ctx context.Context, projectID string, archived bool) (*models.Project, error) {
	return s.UpdateProject(ctx, projectID, gateway.UpdateProjectParams{
		IsArchived: &archived,
	})
}

func (s *projectServiceImpl) DeleteProject(ctx context.Context, projectID string) error {
	s.begin()

	err := s.gateway.DeleteProject(ctx, projectID)
	if err != nil {
		s.fail(err, "failed to delete project")
		return err
	}

	s.mu.Lock()
	next := make([]models.Project, 0, len(s.projects))
	for i := range s.projects {
		if s.projects[i].ID != projectID {
			next = append(next, s.projects[i])
		}
	}
	s.projects = next
	s.loading = false
	s.mu.Unlock()
	s.notify()

	s.logger.Info().
		Str("project_id", projectID).
		Msg("deleted project")
	return nil
}

func (s *projectServiceImpl) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects
}

func (s *projectServiceImpl) ActiveProjects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]models.Project, 0, len(s.projects))
	for i := range s.projects {
		if !s.projects[i].IsArchived {
			active = append(active, s.projects[i])
		}
	}
	return active
}

func (s *projectServiceImpl) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *projectServiceImpl) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *projectServiceImpl) Reset() {
	s.mu.Lock()
	s.projects = nil
	s.loading = false
	s.err = nil
	s.mu.Unlock()
	s.notify()
}
