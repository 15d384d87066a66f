package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
	created []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = "u-created"
	f.created = append(f.created, user)
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, *u)
	}
	return users, nil
}

func newTestAuthService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "campus-event-hub",
	})
}

func TestSignupIssuesTokenAndDefaultsRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	resp, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:            "Jo Doe",
		Email:           "Jo@X.edu",
		Password:        "password123",
		PasswordConfirm: "password123",
		College:         "X U",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.Equal(t, "jo@x.edu", resp.User.Email)

	require.Len(t, repo.created, 1)
	assert.NotEqual(t, "password123", repo.created[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created[0].PasswordHash), []byte("password123")))
}

func TestSignupDuplicateEmailFailsValidation(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byEmail["jo@x.edu"] = &models.User{ID: "u1", Email: "jo@x.edu"}
	svc := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:            "Jo Doe",
		Email:           "jo@x.edu",
		Password:        "password123",
		PasswordConfirm: "password123",
		College:         "X U",
	})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, typed.Code)
	assert.Equal(t, "email already in use", typed.Message)
}

func TestSignupPasswordMismatch(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:            "Jo Doe",
		Email:           "jo@x.edu",
		Password:        "password123",
		PasswordConfirm: "different456",
		College:         "X U",
	})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, typed.Code)
	assert.Equal(t, "passwords do not match", typed.Message)
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	repo := newFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.byEmail["jo@x.edu"] = &models.User{ID: "u1", Email: "jo@x.edu", PasswordHash: string(hash)}
	svc := newTestAuthService(repo)

	_, wrongPass := svc.Login(context.Background(), models.LoginRequest{Email: "jo@x.edu", Password: "nope-nope"})
	_, unknown := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@x.edu", Password: "password123"})

	require.Error(t, wrongPass)
	require.Error(t, unknown)
	assert.Equal(t, appErrors.FromError(wrongPass).Message, appErrors.FromError(unknown).Message)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(wrongPass).Code)
}

func TestLoginSucceedsAndTokenRoundTrips(t *testing.T) {
	repo := newFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.byEmail["jo@x.edu"] = &models.User{ID: "u1", Email: "jo@x.edu", PasswordHash: string(hash), Role: models.RoleCollegeAdmin}
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "jo@x.edu", Password: "password123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleCollegeAdmin, claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	other := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{Secret: "other-secret", Expiration: time.Hour})

	token, err := other.IssueToken(&models.User{ID: "u1", Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}

func TestCurrentUserGoneAccountIsUnauthenticated(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.CurrentUser(context.Background(), &models.JWTClaims{UserID: "gone"})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, typed.Code)
	assert.Equal(t, "the user belonging to this token no longer exists", typed.Message)
}
