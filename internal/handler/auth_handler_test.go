package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/campus-timetable-api/internal/middleware"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/internal/service"
)

type fakeUserStore struct {
	user *models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.user != nil && f.user.Email == email {
		clone := *f.user
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		clone := *f.user
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) UpdatePassword(context.Context, string, string, time.Time) error {
	return nil
}

type envelope struct {
	Data  map[string]interface{} `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newAuthHandlerFixture(t *testing.T) *AuthHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &fakeUserStore{user: &models.User{
		ID:           "user-1",
		Email:        "admin@example.edu",
		PasswordHash: string(hash),
		FullName:     "Site Admin",
		Role:         models.RoleAdmin,
		Active:       true,
	}}
	svc := service.NewAuthService(store, nil, nil, service.AuthConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "campus-timetable-api",
	})
	return NewAuthHandler(svc)
}

func postJSON(rec *httptest.ResponseRecorder, path, body string) *gin.Context {
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandlerFixture(t)

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/auth/login", `{"email":"admin@example.edu","password":"correct-horse-battery"}`)

	handler.Login(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.NotEmpty(t, env.Data["access_token"])
	assert.Equal(t, "Bearer", env.Data["token_type"])
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandlerFixture(t)

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/auth/login", `{"email":"admin@example.edu","password":"not-the-password"}`)

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerLoginMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandlerFixture(t)

	rec := httptest.NewRecorder()
	c := postJSON(rec, "/auth/login", `{"email":`)

	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerMeWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandlerFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	handler.Me(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerMeReturnsClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandlerFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{
		UserID: "user-1",
		Email:  "admin@example.edu",
		Role:   models.RoleAdmin,
	})

	handler.Me(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "admin@example.edu", env.Data["email"])
	assert.Equal(t, models.RoleAdmin, env.Data["role"])
}
