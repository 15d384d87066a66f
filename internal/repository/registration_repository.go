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

const registrationColumns = `r.id, r.event_id, r.user_id, r.status, r.created_at, e.title AS event_title, u.name AS user_name, u.email AS user_email`

// RegistrationRepository provides database access for event registrations.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository creates a new instance of RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// FindByID returns a registration by identifier.
func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registrations r JOIN events e ON e.id = r.event_id JOIN users u ON u.id = r.user_id WHERE r.id = $1 LIMIT 1"
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find registration by id: %w", err)
	}
	return &reg, nil
}

// FindByEventAndUser returns the registration for an (event, user) pair.
func (r *RegistrationRepository) FindByEventAndUser(ctx context.Context, eventID, userID string) (*models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registrations r JOIN events e ON e.id = r.event_id JOIN users u ON u.id = r.user_id WHERE r.event_id = $1 AND r.user_id = $2 LIMIT 1"
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, query, eventID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find registration by event and user: %w", err)
	}
	return &reg, nil
}

// ListByUser returns a student's registrations, newest first.
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registrations r JOIN events e ON e.id = r.event_id JOIN users u ON u.id = r.user_id WHERE r.user_id = $1 ORDER BY r.created_at DESC"
	regs := []models.Registration{}
	if err := r.db.SelectContext(ctx, &regs, query, userID); err != nil {
		return nil, fmt.Errorf("list registrations by user: %w", err)
	}
	return regs, nil
}

// ListByEvent returns every registration for an event.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registrations r JOIN events e ON e.id = r.event_id JOIN users u ON u.id = r.user_id WHERE r.event_id = $1 ORDER BY r.created_at ASC"
	regs := []models.Registration{}
	if err := r.db.SelectContext(ctx, &regs, query, eventID); err != nil {
		return nil, fmt.Errorf("list registrations by event: %w", err)
	}
	return regs, nil
}

// ListAll returns every registration, newest first.
func (r *RegistrationRepository) ListAll(ctx context.Context) ([]models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registrations r JOIN events e ON e.id = r.event_id JOIN users u ON u.id = r.user_id ORDER BY r.created_at DESC"
	regs := []models.Registration{}
	if err := r.db.SelectContext(ctx, &regs, query); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// Create inserts a new registration.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	if reg.Status == "" {
		reg.Status = models.RegistrationPending
	}
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO registrations (id, event_id, user_id, status, created_at) VALUES (:id, :event_id, :user_id, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reg); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// UpdateStatus transitions a registration's review state.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error {
	const query = `UPDATE registrations SET status = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status); err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	return nil
}
