package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

type adminLogRepository interface {
	Create(ctx context.Context, log *models.AdminLog) error
	List(ctx context.Context) ([]models.AdminLog, error)
}

// AdminLogService exposes the audit trail of admin actions.
type AdminLogService struct {
	repo   adminLogRepository
	logger *zap.Logger
}

// NewAdminLogService constructs an AdminLogService instance.
func NewAdminLogService(repo adminLogRepository, logger *zap.Logger) *AdminLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminLogService{repo: repo, logger: logger}
}

// List returns the audit trail, newest first, with the acting user joined in.
func (s *AdminLogService) List(ctx context.Context) ([]models.AdminLog, error) {
	logs, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list admin logs")
	}
	return logs, nil
}

// Record appends an entry directly. The action text is stored verbatim and
// the timestamp is always server-assigned.
func (s *AdminLogService) Record(ctx context.Context, action string, actor *models.JWTClaims) (*models.AdminLog, error) {
	if action == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "action is required")
	}
	entry := &models.AdminLog{Action: action, UserID: actor.UserID}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record admin log")
	}
	return entry, nil
}
