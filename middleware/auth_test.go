package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldpav/models"
)

func withUsers(t *testing.T, users ...*models.User) {
	t.Helper()
	SetJWTSecret("test-secret")
	prev := loadUser
	loadUser = func(id uuid.UUID) (*models.User, error) {
		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}
		return nil, errors.New("record not found")
	}
	t.Cleanup(func() { loadUser = prev })
}

func TestGenerateAndValidateToken(t *testing.T) {
	SetJWTSecret("test-secret")
	user := &models.User{ID: uuid.New(), CompanyID: uuid.New(), Username: "maria", Role: models.RoleForeman}

	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.CompanyID, claims.CompanyID)
	assert.Equal(t, models.RoleForeman, claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	SetJWTSecret("test-secret")
	user := &models.User{ID: uuid.New()}

	expired, err := GenerateToken(user, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	SetJWTSecret("other-secret")
	forged, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)
	SetJWTSecret("test-secret")
	_, err = ValidateToken(forged)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestAuthMiddleware(t *testing.T) {
	known := &models.User{ID: uuid.New(), CompanyID: uuid.New(), Username: "rh", Role: models.RoleHR}
	withUsers(t, known)

	valid, err := GenerateToken(known, time.Hour)
	require.NoError(t, err)
	ghost, err := GenerateToken(&models.User{ID: uuid.New()}, time.Hour)
	require.NoError(t, err)

	var seen *models.User
	h := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) }, http.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: valid}) }, http.StatusOK},
		{"missing", func(r *http.Request) {}, http.StatusUnauthorized},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", valid) }, http.StatusUnauthorized},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"unknown user", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+ghost) }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/overtime", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, known.ID, seen.ID)
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(models.RoleAdmin, models.RoleHR)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		user   *models.User
		status int
	}{
		{"admin", &models.User{Role: models.RoleAdmin}, http.StatusNoContent},
		{"hr", &models.User{Role: models.RoleHR}, http.StatusNoContent},
		{"foreman", &models.User{Role: models.RoleForeman}, http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/overtime/x", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
