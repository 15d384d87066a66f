package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuseventhub/campus-event-hub/internal/middleware"
	"github.com/campuseventhub/campus-event-hub/internal/models"
	"github.com/campuseventhub/campus-event-hub/internal/service"
)

type memUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = "u-new"
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *memUserRepo) List(_ context.Context) ([]models.User, error) { return nil, nil }

func newAuthRouter(repo *memUserRepo) (*gin.Engine, *service.AuthService) {
	gin.SetMode(gin.TestMode)

	authService := service.NewAuthService(repo, nil, nil, service.AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
	})
	h := NewAuthHandler(authService, CookieSettings{Name: "jwt", MaxAge: time.Hour})

	router := gin.New()
	router.POST("/users/signup", h.Signup)
	router.POST("/users/login", h.Login)
	router.GET("/users/me", middleware.Authenticate(authService, "jwt"), h.Me)
	return router, authService
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSignupEndpointReturnsTokenAndCookie(t *testing.T) {
	router, _ := newAuthRouter(newMemUserRepo())

	w := postJSON(router, "/users/signup", gin.H{
		"name":            "Jo Doe",
		"email":           "jo@x.edu",
		"password":        "password123",
		"passwordConfirm": "password123",
		"college":         "X U",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Token string       `json:"token"`
			User  *models.User `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.NotEmpty(t, body.Data.Token)
	assert.Equal(t, models.RoleStudent, body.Data.User.Role)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, body.Data.Token, cookies[0].Value)

	// password material never leaves the API
	assert.NotContains(t, w.Body.String(), "password")
}

func TestSignupEndpointRejectsDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	repo.byEmail["jo@x.edu"] = &models.User{ID: "u1", Email: "jo@x.edu"}
	router, _ := newAuthRouter(repo)

	w := postJSON(router, "/users/signup", gin.H{
		"name":            "Jo Doe",
		"email":           "jo@x.edu",
		"password":        "password123",
		"passwordConfirm": "password123",
		"college":         "X U",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"fail"`)
	assert.Contains(t, w.Body.String(), "email already in use")
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	repo := newMemUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.byEmail["jo@x.edu"] = &models.User{ID: "u1", Email: "jo@x.edu", PasswordHash: string(hash)}
	router, _ := newAuthRouter(repo)

	w := postJSON(router, "/users/login", gin.H{"email": "jo@x.edu", "password": "wrong-pass"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "incorrect email or password")
}

func TestMeEndpointReturnsLiveAccount(t *testing.T) {
	repo := newMemUserRepo()
	user := &models.User{ID: "u1", Name: "Jo Doe", Email: "jo@x.edu", Role: models.RoleStudent}
	repo.byID["u1"] = user
	router, authService := newAuthRouter(repo)

	token, err := authService.IssueToken(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"jo@x.edu"`)
}
