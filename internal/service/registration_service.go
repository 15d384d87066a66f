package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

type registrationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	FindByEventAndUser(ctx context.Context, eventID, userID string) (*models.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]models.Registration, error)
	ListAll(ctx context.Context) ([]models.Registration, error)
	Create(ctx context.Context, reg *models.Registration) error
	UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) error
}

type eventFinder interface {
	FindByID(ctx context.Context, id string) (*models.Event, error)
}

// RegistrationService handles student sign-ups and the admin review flow.
type RegistrationService struct {
	repo   registrationRepository
	events eventFinder
	logs   adminLogWriter
	logger *zap.Logger
}

// NewRegistrationService constructs a RegistrationService instance.
func NewRegistrationService(repo registrationRepository, events eventFinder, logs adminLogWriter, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{repo: repo, events: events, logs: logs, logger: logger}
}

// Register signs the acting user up for an event. Registering twice for the
// same event is not an error; the existing row comes back and the second
// return value reports false.
func (s *RegistrationService) Register(ctx context.Context, eventID string, actor *models.JWTClaims) (*models.Registration, bool, error) {
	if eventID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "event_id is required")
	}

	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch event")
	}

	existing, err := s.repo.FindByEventAndUser(ctx, eventID, actor.UserID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing registration")
	}

	reg := &models.Registration{EventID: eventID, UserID: actor.UserID}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create registration")
	}
	return reg, true, nil
}

// List returns the registrations visible to the actor. Students see only
// their own rows; admins see everything.
func (s *RegistrationService) List(ctx context.Context, actor *models.JWTClaims) ([]models.Registration, error) {
	var (
		regs []models.Registration
		err  error
	)
	if actor.Role == models.RoleStudent {
		regs, err = s.repo.ListByUser(ctx, actor.UserID)
	} else {
		regs, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return regs, nil
}

// UpdateStatus moves a registration through the admin review workflow.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus, actor *models.JWTClaims) (*models.Registration, error) {
	switch status {
	case models.RegistrationPending, models.RegistrationApproved, models.RegistrationRejected:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be one of: pending, approved, rejected")
	}

	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch registration")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update registration status")
	}
	reg.Status = status

	if s.logs != nil && actor != nil {
		entry := &models.AdminLog{Action: "Updated registration " + id + " status to " + string(status), UserID: actor.UserID}
		if err := s.logs.Create(ctx, entry); err != nil {
			s.logger.Warn("admin log write failed", zap.String("registration_id", id), zap.Error(err))
		}
	}
	return reg, nil
}
