package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

type projectRepository interface {
	ListByOwner(ctx context.Context, userID string) ([]models.Project, error)
	FindByID(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
}

// CreateProjectRequest is the payload for starting a project.
type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"omitempty"`
}

// UpdateProjectRequest carries a partial project update.
type UpdateProjectRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty"`
	Status      *string `json:"status" validate:"omitempty,oneof=active completed archived"`
}

// ProjectService manages user-owned projects. Every read and write is scoped
// to the acting user; touching another user's project is forbidden, not
// merely hidden.
type ProjectService struct {
	repo      projectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProjectService constructs a ProjectService instance.
func NewProjectService(repo projectRepository, validate *validator.Validate, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ProjectService{repo: repo, validator: validate, logger: logger}
}

// List returns the actor's projects.
func (s *ProjectService) List(ctx context.Context, actor *models.JWTClaims) ([]models.Project, error) {
	projects, err := s.repo.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list projects")
	}
	return projects, nil
}

// Get returns one of the actor's projects.
func (s *ProjectService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Project, error) {
	return s.findOwned(ctx, id, actor)
}

// Create starts a new active project owned by the actor.
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest, actor *models.JWTClaims) (*models.Project, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   actor.UserID,
		Status:      models.ProjectActive,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create project")
	}
	return project, nil
}

// Update applies a partial update to one of the actor's projects.
func (s *ProjectService) Update(ctx context.Context, id string, req UpdateProjectRequest, actor *models.JWTClaims) (*models.Project, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	project, err := s.findOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = models.ProjectStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update project")
	}
	return project, nil
}

// Delete removes one of the actor's projects.
func (s *ProjectService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if _, err := s.findOwned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete project")
	}
	return nil
}

func (s *ProjectService) findOwned(ctx context.Context, id string, actor *models.JWTClaims) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch project")
	}
	if project.CreatedBy != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you do not own this project")
	}
	return project, nil
}
