package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

type fakeProjectRepo struct {
	byID map[string]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{byID: map[string]*models.Project{}}
}

func (f *fakeProjectRepo) ListByOwner(_ context.Context, userID string) ([]models.Project, error) {
	var projects []models.Project
	for _, p := range f.byID {
		if p.CreatedBy == userID {
			projects = append(projects, *p)
		}
	}
	return projects, nil
}

func (f *fakeProjectRepo) FindByID(_ context.Context, id string) (*models.Project, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	project.ID = "p-created"
	f.byID[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	f.byID[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func TestProjectCreateStartsActive(t *testing.T) {
	svc := NewProjectService(newFakeProjectRepo(), validator.New(), zap.NewNop())

	project, err := svc.Create(context.Background(), CreateProjectRequest{Title: "Fest Prep"}, studentClaims())
	require.NoError(t, err)
	assert.Equal(t, models.ProjectActive, project.Status)
	assert.Equal(t, "student-1", project.CreatedBy)
}

func TestProjectAccessByNonOwnerIsForbidden(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.byID["p1"] = &models.Project{ID: "p1", CreatedBy: "someone-else"}
	svc := NewProjectService(repo, validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), "p1", studentClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	err = svc.Delete(context.Background(), "p1", studentClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestProjectMissingIsNotFound(t *testing.T) {
	svc := NewProjectService(newFakeProjectRepo(), validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), "ghost", studentClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTaskCreateRequiresOwnedProject(t *testing.T) {
	projects := newFakeProjectRepo()
	projects.byID["p1"] = &models.Project{ID: "p1", CreatedBy: "someone-else"}

	svc := NewTaskService(&fakeTaskRepo{byID: map[string]*models.Task{}}, projects, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateTaskRequest{Title: "Book venue", ProjectID: "p1"}, studentClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestTaskCreateDefaultsStatusAndPriority(t *testing.T) {
	projects := newFakeProjectRepo()
	projects.byID["p1"] = &models.Project{ID: "p1", CreatedBy: "student-1"}

	svc := NewTaskService(&fakeTaskRepo{byID: map[string]*models.Task{}}, projects, validator.New(), zap.NewNop())

	task, err := svc.Create(context.Background(), CreateTaskRequest{Title: "Book venue", ProjectID: "p1"}, studentClaims())
	require.NoError(t, err)
	assert.Equal(t, models.TaskTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, "student-1", task.AssignedTo)
}

type fakeTaskRepo struct {
	byID map[string]*models.Task
}

func (f *fakeTaskRepo) ListByAssignee(_ context.Context, userID string) ([]models.Task, error) {
	var tasks []models.Task
	for _, task := range f.byID {
		if task.AssignedTo == userID {
			tasks = append(tasks, *task)
		}
	}
	return tasks, nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id string) (*models.Task, error) {
	if task, ok := f.byID[id]; ok {
		return task, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	task.ID = "t-created"
	f.byID[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	f.byID[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}
