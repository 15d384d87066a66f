package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

type taskRepository interface {
	ListByAssignee(ctx context.Context, userID string) ([]models.Task, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}

type projectFinder interface {
	FindByID(ctx context.Context, id string) (*models.Project, error)
}

// CreateTaskRequest is the payload for adding a task to a project.
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=120"`
	Description string     `json:"description" validate:"omitempty"`
	ProjectID   string     `json:"project_id" validate:"required"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date" validate:"omitempty"`
}

// UpdateTaskRequest carries a partial task update.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=120"`
	Description *string    `json:"description" validate:"omitempty"`
	Status      *string    `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date" validate:"omitempty"`
}

// TaskService manages tasks inside user-owned projects. Tasks are assigned
// to their creator and only the assignee may read or mutate them.
type TaskService struct {
	repo      taskRepository
	projects  projectFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaskService constructs a TaskService instance.
func NewTaskService(repo taskRepository, projects projectFinder, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TaskService{repo: repo, projects: projects, validator: validate, logger: logger}
}

// List returns the actor's tasks with their project titles joined in.
func (s *TaskService) List(ctx context.Context, actor *models.JWTClaims) ([]models.Task, error) {
	tasks, err := s.repo.ListByAssignee(ctx, actor.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}
	return tasks, nil
}

// Get returns one of the actor's tasks.
func (s *TaskService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Task, error) {
	return s.findAssigned(ctx, id, actor)
}

// Create adds a task to a project the actor owns.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest, actor *models.JWTClaims) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	project, err := s.projects.FindByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch project")
	}
	if project.CreatedBy != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you do not own this project")
	}

	priority := models.TaskPriority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssignedTo:  actor.UserID,
		Status:      models.TaskTodo,
		Priority:    priority,
		DueDate:     req.DueDate,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}
	return task, nil
}

// Update applies a partial update to one of the actor's tasks.
func (s *TaskService) Update(ctx context.Context, id string, req UpdateTaskRequest, actor *models.JWTClaims) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	task, err := s.findAssigned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = models.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task")
	}
	return task, nil
}

// Delete removes one of the actor's tasks.
func (s *TaskService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if _, err := s.findAssigned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	return nil
}

func (s *TaskService) findAssigned(ctx context.Context, id string, actor *models.JWTClaims) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch task")
	}
	if task.AssignedTo != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you are not assigned to this task")
	}
	return task, nil
}
