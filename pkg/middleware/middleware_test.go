package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/justinas/alice"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/apiErrors"
)

type validatorFunc func(string) (*domain.Claims, error)

func (f validatorFunc) ValidateToken(token string) (*domain.Claims, error) { return f(token) }

func tokens(roles map[string]string) validatorFunc {
	return func(token string) (*domain.Claims, error) {
		if token == "expired" {
			return nil, jwt.ErrTokenExpired
		}
		role, ok := roles[token]
		if !ok {
			return nil, errors.New("unknown token")
		}
		claims := &domain.Claims{Role: role}
		claims.Subject = token
		return claims, nil
	}
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

func serve(handler http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthMiddleware(t *testing.T) {
	validator := tokens(map[string]string{"admin-token": domain.RoleAdmin})
	handler := AuthMiddleware(validator, "/healthcheck")(okHandler)

	tests := []struct {
		name          string
		path          string
		authorization string
		status        int
	}{
		{"public path", "/healthcheck", "", http.StatusNoContent},
		{"missing header", "/v1/pipeline/status", "", http.StatusUnauthorized},
		{"not bearer", "/v1/pipeline/status", "Basic abc", http.StatusUnauthorized},
		{"unknown token", "/v1/pipeline/status", "Bearer nope", http.StatusUnauthorized},
		{"expired token", "/v1/pipeline/status", "Bearer expired", http.StatusUnauthorized},
		{"valid token", "/v1/pipeline/status", "Bearer admin-token", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(handler, tt.path, tt.authorization).Code)
		})
	}

	assert.Contains(t, serve(handler, "/x", "Bearer expired").Body.String(), apiErrors.ErrExpiredToken)
}

func TestRoleMiddleware(t *testing.T) {
	validator := tokens(map[string]string{"admin": domain.RoleAdmin, "viewer": domain.RoleViewer})

	admin := alice.New(AuthMiddleware(validator), AdminOnly()).Then(okHandler)
	assert.Equal(t, http.StatusNoContent, serve(admin, "/run", "Bearer admin").Code)
	assert.Equal(t, http.StatusForbidden, serve(admin, "/run", "Bearer viewer").Code)

	all := alice.New(AuthMiddleware(validator), AllRoles()).Then(okHandler)
	assert.Equal(t, http.StatusNoContent, serve(all, "/status", "Bearer viewer").Code)

	assert.Equal(t, http.StatusUnauthorized, serve(AdminOnly()(okHandler), "/run", "").Code, "no claims in context")
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	handler := alice.New(LogPanicMiddleware(), LoggingMiddleware()).Then(panicking)

	recorder := serve(handler, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), apiErrors.ErrInternalServer)
}
