package service

import (
	"context"
	"database/sql"
	"net/url"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	"github.com/campuseventhub/campus-event-hub/internal/query"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

type fakeEventRepo struct {
	events   map[string]*models.Event
	listed   []models.Event
	lastQ    *query.EventQuery
	listHits int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*models.Event{}}
}

func (f *fakeEventRepo) List(_ context.Context, q *query.EventQuery) ([]models.Event, error) {
	f.lastQ = q
	f.listHits++
	return f.listed, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id string) (*models.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	event.ID = "e-created"
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	delete(f.events, id)
	return nil
}

type fakeAdminLog struct {
	entries []*models.AdminLog
	err     error
}

func (f *fakeAdminLog) Create(_ context.Context, log *models.AdminLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, log)
	return nil
}

type memoryCache struct {
	store map[string][]byte
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	if _, ok := m.store[key]; !ok {
		return appErrors.ErrCacheMiss
	}
	// value shape is irrelevant for these tests; a hit just short-circuits
	return nil
}

func (m *memoryCache) Set(_ context.Context, key string, _ interface{}, _ time.Duration) error {
	m.store[key] = []byte("x")
	return nil
}

func (m *memoryCache) DeleteByPattern(_ context.Context, _ string) error {
	m.store = map[string][]byte{}
	return nil
}

func newTestEventService(repo *fakeEventRepo, logs *fakeAdminLog, cache CacheRepository) *EventService {
	var cs *CacheService
	if cache != nil {
		cs = NewCacheService(cache, nil, time.Minute, zap.NewNop(), true)
	}
	return NewEventService(repo, logs, cs, validator.New(), zap.NewNop())
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "admin-1", Role: models.RoleCollegeAdmin}
}

func TestEventListPassesParsedQuery(t *testing.T) {
	repo := newFakeEventRepo()
	repo.listed = []models.Event{{ID: "e1", Title: "Tech Fest"}}
	svc := newTestEventService(repo, &fakeAdminLog{}, nil)

	values := url.Values{}
	values.Set("category", "workshop")
	values.Set("sort", "-createdAt")

	events, err := svc.List(context.Background(), values)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	require.NotNil(t, repo.lastQ)
	require.Len(t, repo.lastQ.Conditions, 1)
	assert.Equal(t, "category", repo.lastQ.Conditions[0].Column)
	require.Len(t, repo.lastQ.Sort, 1)
	assert.Equal(t, "created_at", repo.lastQ.Sort[0].Column)
	assert.True(t, repo.lastQ.Sort[0].Desc)
}

func TestEventListRejectsBadOperator(t *testing.T) {
	svc := newTestEventService(newFakeEventRepo(), &fakeAdminLog{}, nil)

	values := url.Values{}
	values.Set("startDate[like]", "2026")

	_, err := svc.List(context.Background(), values)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventListCachesPerQueryString(t *testing.T) {
	repo := newFakeEventRepo()
	cache := &memoryCache{store: map[string][]byte{}}
	svc := newTestEventService(repo, &fakeAdminLog{}, cache)

	values := url.Values{}
	values.Set("category", "sports")

	_, err := svc.List(context.Background(), values)
	require.NoError(t, err)
	_, err = svc.List(context.Background(), values)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listHits)

	other := url.Values{}
	other.Set("category", "cultural")
	_, err = svc.List(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listHits)
}

func TestEventCreateDefaultsCollegeToActorAndAudits(t *testing.T) {
	repo := newFakeEventRepo()
	logs := &fakeAdminLog{}
	svc := newTestEventService(repo, logs, nil)

	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	event, err := svc.Create(context.Background(), CreateEventRequest{
		Title:       "Tech Fest",
		Description: "Annual hackathon",
		Category:    "hackathon",
		Location:    "Main Hall",
		StartDate:   start,
		EndDate:     start.Add(8 * time.Hour),
	}, adminClaims())
	require.NoError(t, err)
	assert.Equal(t, "admin-1", event.CollegeID)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, "Created new event: Tech Fest", logs.entries[0].Action)
	assert.Equal(t, "admin-1", logs.entries[0].UserID)
}

func TestEventCreateRejectsEndBeforeStart(t *testing.T) {
	svc := newTestEventService(newFakeEventRepo(), &fakeAdminLog{}, nil)

	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateEventRequest{
		Title:       "Tech Fest",
		Description: "Annual hackathon",
		Category:    "hackathon",
		Location:    "Main Hall",
		StartDate:   start,
		EndDate:     start.Add(-time.Hour),
	}, adminClaims())
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, typed.Code)
	assert.Equal(t, "endDate must not be before startDate", typed.Message)
}

func TestEventCreateSurvivesAuditFailure(t *testing.T) {
	repo := newFakeEventRepo()
	logs := &fakeAdminLog{err: sql.ErrConnDone}
	svc := newTestEventService(repo, logs, nil)

	start := time.Now().UTC()
	event, err := svc.Create(context.Background(), CreateEventRequest{
		Title:       "Tech Fest",
		Description: "Annual hackathon",
		Category:    "hackathon",
		Location:    "Main Hall",
		StartDate:   start,
		EndDate:     start.Add(time.Hour),
	}, adminClaims())
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
}

func TestEventUpdateMissingIsNotFound(t *testing.T) {
	svc := newTestEventService(newFakeEventRepo(), &fakeAdminLog{}, nil)

	title := "New Title"
	_, err := svc.Update(context.Background(), "ghost", UpdateEventRequest{Title: &title}, adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventDeleteInvalidatesCache(t *testing.T) {
	repo := newFakeEventRepo()
	cache := &memoryCache{store: map[string][]byte{}}
	svc := newTestEventService(repo, &fakeAdminLog{}, cache)

	values := url.Values{}
	_, err := svc.List(context.Background(), values)
	require.NoError(t, err)
	require.NotEmpty(t, cache.store)

	repo.events["e1"] = &models.Event{ID: "e1", Title: "Tech Fest"}
	require.NoError(t, svc.Delete(context.Background(), "e1", adminClaims()))
	assert.Empty(t, cache.store)
}
