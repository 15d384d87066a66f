package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuseventhub/campus-event-hub/internal/models"
)

const taskColumns = `t.id, t.title, t.description, t.project_id, t.assigned_to, t.status, t.priority, t.due_date, t.created_at, t.updated_at, p.title AS project_title`

// TaskRepository provides database access for project tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByAssignee returns the tasks assigned to a user.
func (r *TaskRepository) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks t LEFT JOIN projects p ON p.id = t.project_id WHERE t.assigned_to = $1 ORDER BY t.created_at DESC"
	tasks := []models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID returns a task with its project title joined.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks t LEFT JOIN projects p ON p.id = t.project_id WHERE t.id = $1 LIMIT 1"
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find task by id: %w", err)
	}
	return &task, nil
}

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	const query = `INSERT INTO tasks (id, title, description, project_id, assigned_to, status, priority, due_date, created_at, updated_at) VALUES (:id, :title, :description, :project_id, :assigned_to, :status, :priority, :due_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of a task.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tasks SET title = :title, description = :description, status = :status, priority = :priority, due_date = :due_date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes a task row.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
