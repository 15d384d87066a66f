package service

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	"github.com/campuseventhub/campus-event-hub/internal/query"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

const eventCachePattern = "events:*"

type eventRepository interface {
	List(ctx context.Context, q *query.EventQuery) ([]models.Event, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

type adminLogWriter interface {
	Create(ctx context.Context, log *models.AdminLog) error
}

// CreateEventRequest is the payload for publishing an event.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=120"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category" validate:"required,oneof=hackathon cultural sports workshop"`
	Location    string    `json:"location" validate:"required"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required"`
	CollegeID   string    `json:"collegeId" validate:"omitempty"`
}

// UpdateEventRequest carries a partial event update. Nil fields are left
// untouched.
type UpdateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=120"`
	Description *string    `json:"description" validate:"omitempty"`
	Category    *string    `json:"category" validate:"omitempty,oneof=hackathon cultural sports workshop"`
	Location    *string    `json:"location" validate:"omitempty"`
	StartDate   *time.Time `json:"startDate" validate:"omitempty"`
	EndDate     *time.Time `json:"endDate" validate:"omitempty"`
}

// EventService implements event listing with the filter grammar plus the
// admin-only write path. Writes append to the audit trail and flush cached
// listings.
type EventService struct {
	repo      eventRepository
	logs      adminLogWriter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs an EventService instance.
func NewEventService(repo eventRepository, logs adminLogWriter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EventService{repo: repo, logs: logs, cache: cache, validator: validate, logger: logger}
}

// List parses the raw query string into a structured event query and serves
// the result through the cache. The cache key is the canonical encoding of
// the incoming parameters so every distinct filter set caches separately.
func (s *EventService) List(ctx context.Context, values url.Values) ([]models.Event, error) {
	q, err := query.ParseEvents(values)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	cacheKey := "events:list:" + values.Encode()

	var events []models.Event
	if s.cache.Get(ctx, cacheKey, &events) {
		return events, nil
	}

	events, err = s.repo.List(ctx, q)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}

	s.cache.Set(ctx, cacheKey, events)
	return events, nil
}

// Get returns a single event by id.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch event")
	}
	return event, nil
}

// Create publishes a new event owned by the acting admin unless an explicit
// college id is supplied.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest, actor *models.JWTClaims) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}

	collegeID := req.CollegeID
	if collegeID == "" {
		collegeID = actor.UserID
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    models.EventCategory(req.Category),
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CollegeID:   collegeID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}

	s.audit(ctx, actor, "Created new event: "+event.Title)
	s.cache.Invalidate(ctx, eventCachePattern)
	return event, nil
}

// Update applies a partial update to an existing event.
func (s *EventService) Update(ctx context.Context, id string, req UpdateEventRequest, actor *models.JWTClaims) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Category != nil {
		event.Category = models.EventCategory(*req.Category)
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if event.EndDate.Before(event.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}

	s.audit(ctx, actor, "Updated event: "+event.Title)
	s.cache.Invalidate(ctx, eventCachePattern)
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}

	s.audit(ctx, actor, "Deleted event: "+event.Title)
	s.cache.Invalidate(ctx, eventCachePattern)
	return nil
}

// audit appends an admin-log entry. A failed audit write never fails the
// request it describes.
func (s *EventService) audit(ctx context.Context, actor *models.JWTClaims, action string) {
	if s.logs == nil || actor == nil {
		return
	}
	entry := &models.AdminLog{Action: action, UserID: actor.UserID}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.Warn("admin log write failed", zap.String("action", action), zap.Error(err))
	}
}
