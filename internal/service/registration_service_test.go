package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

type fakeRegistrationRepo struct {
	byID      map[string]*models.Registration
	byPair    map[string]*models.Registration
	created   []*models.Registration
	statusSet map[string]models.RegistrationStatus
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		byID:      map[string]*models.Registration{},
		byPair:    map[string]*models.Registration{},
		statusSet: map[string]models.RegistrationStatus{},
	}
}

func (f *fakeRegistrationRepo) FindByID(_ context.Context, id string) (*models.Registration, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRegistrationRepo) FindByEventAndUser(_ context.Context, eventID, userID string) (*models.Registration, error) {
	if r, ok := f.byPair[eventID+"/"+userID]; ok {
		return r, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRegistrationRepo) ListByUser(_ context.Context, userID string) ([]models.Registration, error) {
	var regs []models.Registration
	for _, r := range f.byID {
		if r.UserID == userID {
			regs = append(regs, *r)
		}
	}
	return regs, nil
}

func (f *fakeRegistrationRepo) ListAll(_ context.Context) ([]models.Registration, error) {
	regs := make([]models.Registration, 0, len(f.byID))
	for _, r := range f.byID {
		regs = append(regs, *r)
	}
	return regs, nil
}

func (f *fakeRegistrationRepo) Create(_ context.Context, reg *models.Registration) error {
	reg.ID = "r-created"
	reg.Status = models.RegistrationPending
	f.created = append(f.created, reg)
	f.byID[reg.ID] = reg
	f.byPair[reg.EventID+"/"+reg.UserID] = reg
	return nil
}

func (f *fakeRegistrationRepo) UpdateStatus(_ context.Context, id string, status models.RegistrationStatus) error {
	f.statusSet[id] = status
	return nil
}

func studentClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "student-1", Role: models.RoleStudent}
}

func newTestRegistrationService(repo *fakeRegistrationRepo, events *fakeEventRepo, logs *fakeAdminLog) *RegistrationService {
	return NewRegistrationService(repo, events, logs, zap.NewNop())
}

func TestRegisterCreatesPendingRow(t *testing.T) {
	events := newFakeEventRepo()
	events.events["e1"] = &models.Event{ID: "e1", Title: "Tech Fest"}
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo, events, &fakeAdminLog{})

	reg, created, err := svc.Register(context.Background(), "e1", studentClaims())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RegistrationPending, reg.Status)
	assert.Equal(t, "student-1", reg.UserID)
}

func TestRegisterTwiceReturnsExistingRow(t *testing.T) {
	events := newFakeEventRepo()
	events.events["e1"] = &models.Event{ID: "e1", Title: "Tech Fest"}
	repo := newFakeRegistrationRepo()
	svc := newTestRegistrationService(repo, events, &fakeAdminLog{})

	first, created, err := svc.Register(context.Background(), "e1", studentClaims())
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.Register(context.Background(), "e1", studentClaims())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.created, 1)
}

func TestRegisterUnknownEventIsNotFound(t *testing.T) {
	svc := newTestRegistrationService(newFakeRegistrationRepo(), newFakeEventRepo(), &fakeAdminLog{})

	_, _, err := svc.Register(context.Background(), "ghost", studentClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListScopesStudentsToTheirOwnRows(t *testing.T) {
	repo := newFakeRegistrationRepo()
	repo.byID["r1"] = &models.Registration{ID: "r1", UserID: "student-1"}
	repo.byID["r2"] = &models.Registration{ID: "r2", UserID: "student-2"}
	svc := newTestRegistrationService(repo, newFakeEventRepo(), &fakeAdminLog{})

	own, err := svc.List(context.Background(), studentClaims())
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "r1", own[0].ID)

	all, err := svc.List(context.Background(), adminClaims())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateStatusApprovesAndAudits(t *testing.T) {
	repo := newFakeRegistrationRepo()
	repo.byID["r1"] = &models.Registration{ID: "r1", UserID: "student-1", Status: models.RegistrationPending}
	logs := &fakeAdminLog{}
	svc := newTestRegistrationService(repo, newFakeEventRepo(), logs)

	reg, err := svc.UpdateStatus(context.Background(), "r1", models.RegistrationApproved, adminClaims())
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, reg.Status)
	assert.Equal(t, models.RegistrationApproved, repo.statusSet["r1"])

	require.Len(t, logs.entries, 1)
	assert.Equal(t, "Updated registration r1 status to approved", logs.entries[0].Action)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestRegistrationService(newFakeRegistrationRepo(), newFakeEventRepo(), &fakeAdminLog{})

	_, err := svc.UpdateStatus(context.Background(), "r1", models.RegistrationStatus("archived"), adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateStatusMissingRowIsNotFound(t *testing.T) {
	svc := newTestRegistrationService(newFakeRegistrationRepo(), newFakeEventRepo(), &fakeAdminLog{})

	_, err := svc.UpdateStatus(context.Background(), "ghost", models.RegistrationApproved, adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
