package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/pkg/log"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims domain.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(roleID int) domain.Claims {
	return domain.Claims{
		UserID:       7,
		UserName:     "Maria",
		UserActive:   true,
		UserRoleID:   roleID,
		UserAccounts: []string{"acc1"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuthMiddleware(t *testing.T) {
	expired := validClaims(RoleAdmin)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	inactive := validClaims(RoleAdmin)
	inactive.UserActive = false

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "Rota pública", path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "Métricas são públicas", path: "/metrics", wantStatus: http.StatusOK},
		{name: "Sem cabeçalho", path: "/v1/adAccount/acc1/analysis", wantStatus: http.StatusUnauthorized, wantCode: "AUTH_006"},
		{name: "Sem Bearer", path: "/v1/adAccount/acc1/analysis", header: "Token abc", wantStatus: http.StatusUnauthorized, wantCode: "AUTH_006"},
		{name: "Assinatura inválida", path: "/v1/adAccount/acc1/analysis", header: "Bearer " + signToken(t, "other", validClaims(RoleAdmin)), wantStatus: http.StatusUnauthorized, wantCode: "AUTH_006"},
		{name: "Token expirado", path: "/v1/adAccount/acc1/analysis", header: "Bearer " + signToken(t, testSecret, expired), wantStatus: http.StatusUnauthorized, wantCode: "AUTH_007"},
		{name: "Usuário desativado", path: "/v1/adAccount/acc1/analysis", header: "Bearer " + signToken(t, testSecret, inactive), wantStatus: http.StatusForbidden, wantCode: "AUTH_002"},
		{name: "Token válido", path: "/v1/adAccount/acc1/analysis", header: "Bearer " + signToken(t, testSecret, validClaims(RoleClient)), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClaims *domain.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClaims, _ = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(NewTokenValidator(testSecret))(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
			if tt.name == "Token válido" {
				require.NotNil(t, gotClaims)
				assert.Equal(t, 7, gotClaims.UserID)
				assert.Equal(t, []string{"acc1"}, gotClaims.UserAccounts)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		roleID     int
		wantStatus int
	}{
		{name: "Admin em rota de admin", middleware: AdminOnly(), roleID: RoleAdmin, wantStatus: http.StatusNoContent},
		{name: "Supervisor em rota de admin", middleware: AdminOnly(), roleID: RoleSupervisor, wantStatus: http.StatusForbidden},
		{name: "Supervisor em rota de supervisor", middleware: AdminOrSupervisor(), roleID: RoleSupervisor, wantStatus: http.StatusNoContent},
		{name: "Cliente em rota aberta", middleware: AllRoles(), roleID: RoleClient, wantStatus: http.StatusNoContent},
		{name: "Sem autenticação", middleware: AllRoles(), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
			if tt.roleID != 0 {
				claims := validClaims(tt.roleID)
				req = req.WithContext(WithClaims(req.Context(), &claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestLoggingMiddleware_PropagatesCorrelationID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/adAccount/acc1/analysis", nil)
	req.Header.Set(log.CorrelationIDHeader, "req-42")
	rec := httptest.NewRecorder()

	LoggingMiddleware()(next).ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(log.CorrelationIDHeader))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogPanicMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	LogPanicMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/adAccount/acc1/analysis", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/adAccount/acc1/analysis", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPMetrics(t *testing.T) {
	metrics := NewHTTPMetrics(prometheus.NewRegistry())
	handler := metrics.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/cron/analysis/run", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/cron/analysis/run", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodPost, "202")))
}
