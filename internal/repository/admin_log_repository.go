package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuseventhub/campus-event-hub/internal/models"
)

// AdminLogRepository provides append-only access to the audit trail.
type AdminLogRepository struct {
	db *sqlx.DB
}

// NewAdminLogRepository creates a new instance of AdminLogRepository.
func NewAdminLogRepository(db *sqlx.DB) *AdminLogRepository {
	return &AdminLogRepository{db: db}
}

// Create appends an audit entry. The timestamp is always server-assigned.
func (r *AdminLogRepository) Create(ctx context.Context, log *models.AdminLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	log.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO admin_logs (id, action, user_id, created_at) VALUES (:id, :action, :user_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create admin log: %w", err)
	}
	return nil
}

// List returns the audit trail with the acting user denormalised, newest first.
func (r *AdminLogRepository) List(ctx context.Context) ([]models.AdminLog, error) {
	const query = `SELECT l.id, l.action, l.user_id, l.created_at, u.name AS user_name, u.role AS user_role, u.college AS user_college FROM admin_logs l LEFT JOIN users u ON u.id = l.user_id ORDER BY l.created_at DESC`
	logs := []models.AdminLog{}
	if err := r.db.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("list admin logs: %w", err)
	}
	return logs, nil
}
