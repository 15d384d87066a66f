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

type feedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	ListByEvent(ctx context.Context, eventID string) ([]models.Feedback, error)
}

// CreateFeedbackRequest is a student's rating of an event.
type CreateFeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// FeedbackService collects event ratings from attendees.
type FeedbackService struct {
	repo      feedbackRepository
	events    eventFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeedbackService constructs a FeedbackService instance.
func NewFeedbackService(repo feedbackRepository, events eventFinder, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{repo: repo, events: events, validator: validate, logger: logger}
}

// Create stores a rating for an event.
func (s *FeedbackService) Create(ctx context.Context, eventID string, req CreateFeedbackRequest, actor *models.JWTClaims) (*models.Feedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}

	fb := &models.Feedback{
		EventID: eventID,
		UserID:  actor.UserID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create feedback")
	}
	return fb, nil
}

// ListByEvent returns all feedback left on an event.
func (s *FeedbackService) ListByEvent(ctx context.Context, eventID string) ([]models.Feedback, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	feedback, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return feedback, nil
}

func (s *FeedbackService) ensureEvent(ctx context.Context, eventID string) error {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch event")
	}
	return nil
}
