package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/config"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperrors.NewValidationError("email", "The email field is required."), http.StatusUnprocessableEntity, "Validation failed."},
		{"wrapped not found", fmt.Errorf("loading: %w", apperrors.ErrCourseNotFound), http.StatusNotFound, "Course not found."},
		{"conflict", apperrors.ErrAlreadyEnrolled, http.StatusUnprocessableEntity, "Student is already enrolled in this course."},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden, "Forbidden."},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials."},
		{"revoked token", apperrors.ErrTokenRevoked, http.StatusUnauthorized, "Unauthenticated."},
		{"bad request", fmt.Errorf("page: %w", apperrors.ErrBadRequest), http.StatusBadRequest, "Bad request."},
		{"email race", apperrors.ErrEmailAlreadyExists, http.StatusUnprocessableEntity, "Validation failed."},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestParamID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := ParamID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := ParamID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

type stubAuthenticator struct {
	claims *auth.Claims
	err    error
}

func (s stubAuthenticator) Authenticate(context.Context, string) (*auth.Claims, error) {
	return s.claims, s.err
}

func protectedRouter(authenticator TokenAuthenticator, role models.Role) *gin.Engine {
	m := NewAuthMiddleware(authenticator)
	r := gin.New()
	r.GET("/protected", m.JWTAuth(), m.RoleRequired(role), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		jti, _ := CurrentJTI(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "jti": jti})
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	adminClaims := &auth.Claims{UserID: 7, Role: string(models.RoleAdmin)}
	adminClaims.ID = "jti-1"

	tests := []struct {
		name   string
		header string
		stub   stubAuthenticator
		role   models.Role
		status int
		code   string
	}{
		{"missing header", "", stubAuthenticator{claims: adminClaims}, models.RoleAdmin, http.StatusUnauthorized, "AUTH_008"},
		{"wrong scheme", "Basic abc", stubAuthenticator{claims: adminClaims}, models.RoleAdmin, http.StatusUnauthorized, "AUTH_008"},
		{"expired", "Bearer t", stubAuthenticator{err: apperrors.ErrTokenExpired}, models.RoleAdmin, http.StatusUnauthorized, "AUTH_006"},
		{"revoked", "Bearer t", stubAuthenticator{err: apperrors.ErrTokenRevoked}, models.RoleAdmin, http.StatusUnauthorized, "AUTH_005"},
		{"unknown jti", "Bearer t", stubAuthenticator{err: apperrors.ErrTokenNotFound}, models.RoleAdmin, http.StatusUnauthorized, "AUTH_007"},
		{"wrong role", "Bearer t", stubAuthenticator{claims: adminClaims}, models.RoleStudent, http.StatusForbidden, "AUTH_009"},
		{"store failure", "Bearer t", stubAuthenticator{err: errors.New("db down")}, models.RoleAdmin, http.StatusInternalServerError, "SRV_001"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			protectedRouter(tc.stub, tc.role).ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			detail, _ := body["error"].(map[string]any)
			assert.Equal(t, tc.code, detail["code"])
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := httptest.NewRecorder()
	protectedRouter(stubAuthenticator{claims: adminClaims}, models.RoleAdmin).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7,"jti":"jti-1"}`, rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, 404, entry["status"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), entry["request_id"])

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         "0s",
	}))
	r.GET("/api/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/me", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
