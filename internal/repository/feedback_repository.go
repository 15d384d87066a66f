package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuseventhub/campus-event-hub/internal/models"
)

// FeedbackRepository provides database access for event feedback.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new instance of FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a feedback entry.
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO feedback (id, event_id, user_id, rating, comment, created_at) VALUES (:id, :event_id, :user_id, :rating, :comment, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fb); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// ListByEvent returns all feedback for an event with author names joined.
func (r *FeedbackRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Feedback, error) {
	const query = `SELECT f.id, f.event_id, f.user_id, f.rating, f.comment, f.created_at, u.name AS user_name FROM feedback f LEFT JOIN users u ON u.id = f.user_id WHERE f.event_id = $1 ORDER BY f.created_at DESC`
	items := []models.Feedback{}
	if err := r.db.SelectContext(ctx, &items, query, eventID); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}
