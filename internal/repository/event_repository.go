package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	"github.com/campuseventhub/campus-event-hub/internal/query"
)

// Event reads always join the owning admin so listings carry the college
// name without a second round trip.
const eventColumns = `e.id, e.title, e.description, e.category, e.location, e.start_date, e.end_date, e.college_id, e.created_at, u.name AS college_name, u.college AS college_label`

// EventRepository provides database access for published events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List executes a structured event query and returns the full result set.
func (r *EventRepository) List(ctx context.Context, q *query.EventQuery) ([]models.Event, error) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(eventColumns)
	sb.WriteString(" FROM events e LEFT JOIN users u ON u.id = e.college_id WHERE 1=1")

	var args []interface{}
	for _, cond := range q.Conditions {
		sb.WriteString(fmt.Sprintf(" AND e.%s %s $%d", cond.Column, cond.Op.SQL(), len(args)+1))
		args = append(args, cond.Value)
	}

	if q.Search != "" {
		idx := len(args) + 1
		sb.WriteString(fmt.Sprintf(" AND (e.title ILIKE $%d OR e.description ILIKE $%d OR e.category ILIKE $%d)", idx, idx, idx))
		args = append(args, "%"+q.Search+"%")
	}

	orders := make([]string, 0, len(q.Sort))
	for _, key := range q.Sort {
		direction := "ASC"
		if key.Desc {
			direction = "DESC"
		}
		orders = append(orders, fmt.Sprintf("e.%s %s", key.Column, direction))
	}
	if len(orders) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(orders, ", "))
	}

	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// FindByID returns a single event with its owner denormalised.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events e LEFT JOIN users u ON u.id = e.college_id WHERE e.id = $1 LIMIT 1"
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find event by id: %w", err)
	}
	return &event, nil
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO events (id, title, description, category, location, start_date, end_date, college_id, created_at) VALUES (:id, :title, :description, :category, :location, :start_date, :end_date, :college_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of an event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	const query = `UPDATE events SET title = :title, description = :description, category = :category, location = :location, start_date = :start_date, end_date = :end_date WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event row.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM events WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
