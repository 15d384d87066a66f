package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuseventhub/campus-event-hub/internal/models"
)

func registrationRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "event_id", "user_id", "status", "created_at",
		"event_title", "user_name", "user_email",
	}).AddRow("r1", "e1", "u1", string(models.RegistrationPending), now, "Tech Fest", "Jo Doe", "jo@x.edu")
}

func TestRegistrationFindByEventAndUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.event_id = $1 AND r.user_id = $2 LIMIT 1")).
		WithArgs("e1", "u1").
		WillReturnRows(registrationRows(time.Now()))

	reg, err := repo.FindByEventAndUser(context.Background(), "e1", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPending, reg.Status)
	require.NotNil(t, reg.EventTitle)
	assert.Equal(t, "Tech Fest", *reg.EventTitle)
}

func TestRegistrationFindByEventAndUserNoRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery("WHERE r.event_id").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEventAndUser(context.Background(), "e1", "u1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRegistrationCreateDefaultsStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectExec("INSERT INTO registrations").WillReturnResult(sqlmock.NewResult(1, 1))

	reg := &models.Registration{EventID: "e1", UserID: "u1"}
	require.NoError(t, repo.Create(context.Background(), reg))
	assert.Equal(t, models.RegistrationPending, reg.Status)
	assert.NotEmpty(t, reg.ID)
}

func TestRegistrationUpdateStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE registrations SET status = $2 WHERE id = $1")).
		WithArgs("r1", string(models.RegistrationApproved)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "r1", models.RegistrationApproved))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationListByEvent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.event_id = $1 ORDER BY r.created_at ASC")).
		WithArgs("e1").
		WillReturnRows(registrationRows(time.Now()))

	regs, err := repo.ListByEvent(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "e1", regs[0].EventID)
}
