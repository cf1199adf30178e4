package handler

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-advisor-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-advisor-api/pkg/middleware"
)

type stubAnalysisService struct {
	analyzeErr error
	latestErr  error
	analyzed   []string
}

func (s *stubAnalysisService) RunAll(_ context.Context, accountID string) *domain.UnifiedAnalysis {
	return &domain.UnifiedAnalysis{Metadata: domain.AnalysisMetadata{AccountID: accountID}}
}

func (s *stubAnalysisService) Analyze(ctx context.Context, accountID string) (*domain.UnifiedAnalysis, error) {
	s.analyzed = append(s.analyzed, accountID)
	if s.analyzeErr != nil {
		return nil, s.analyzeErr
	}
	analysis := s.RunAll(ctx, accountID)
	analysis.HasData = true
	analysis.Suggestions = []domain.Suggestion{{ID: "multi_period_0", Text: "ROAS estável", Priority: domain.PriorityInfo}}
	return analysis, nil
}

func (s *stubAnalysisService) Latest(_ context.Context, accountID string) (*domain.AnalysisReportEntry, error) {
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	return &domain.AnalysisReportEntry{
		ID:        "Ab12Cd",
		AccountID: accountID,
		HasData:   true,
		Report:    stdjson.RawMessage(`{"has_data":true}`),
	}, nil
}

func (s *stubAnalysisService) Refresh(ctx context.Context, accountID string) (*domain.UnifiedAnalysis, error) {
	return s.RunAll(ctx, accountID), nil
}

func serveWithClaims(t *testing.T, h http.Handler, claims *domain.Claims, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetAccountAnalysis(t *testing.T) {
	admin := &domain.Claims{UserID: 1, UserRoleID: middleware.RoleAdmin}
	client := &domain.Claims{UserID: 2, UserRoleID: middleware.RoleClient, UserAccounts: []string{"acc1"}}

	tests := []struct {
		name       string
		claims     *domain.Claims
		accountID  string
		analyzeErr error
		wantStatus int
		wantCode   string
		wantCalled bool
	}{
		{name: "Admin acessa qualquer conta", claims: admin, accountID: "acc9", wantStatus: http.StatusOK, wantCalled: true},
		{name: "Cliente acessa conta vinculada", claims: client, accountID: "acc1", wantStatus: http.StatusOK, wantCalled: true},
		{name: "Cliente sem vínculo", claims: client, accountID: "acc9", wantStatus: http.StatusForbidden, wantCode: "AUTH_008"},
		{name: "Sem autenticação", accountID: "acc1", wantStatus: http.StatusUnauthorized, wantCode: "AUTH_006"},
		{name: "Conta inexistente", claims: admin, accountID: "acc9", analyzeErr: analyzing.ErrAccountNotFound, wantStatus: http.StatusNotFound, wantCode: "ANL_001", wantCalled: true},
		{name: "Erro de banco", claims: admin, accountID: "acc9", analyzeErr: errors.New("connection refused"), wantStatus: http.StatusInternalServerError, wantCode: "SRV_002", wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubAnalysisService{analyzeErr: tt.analyzeErr}
			rt := router.New(router.WithRoutes(Analysis(service)...))

			// o middleware de roles exige claims; chamamos o handler direto para o caso sem autenticação
			var h http.Handler = rt
			if tt.claims == nil {
				h = router.New(router.WithRoutes(router.Route{
					Path:    "/v1/adAccount/:id/analysis",
					Method:  http.MethodGet,
					Handler: GetAccountAnalysis(service),
				}))
			}

			rec := serveWithClaims(t, h, tt.claims, http.MethodGet, "/v1/adAccount/"+tt.accountID+"/analysis")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
			if tt.wantCalled {
				assert.Equal(t, []string{tt.accountID}, service.analyzed)
			} else {
				assert.Empty(t, service.analyzed)
			}

			if tt.wantStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, stdjson.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, true, body["has_data"])
				assert.NotEmpty(t, body["suggestions"])
			}
		})
	}
}

func TestGetLatestAccountAnalysis(t *testing.T) {
	admin := &domain.Claims{UserID: 1, UserRoleID: middleware.RoleAdmin}

	service := &stubAnalysisService{}
	rt := router.New(router.WithRoutes(Analysis(service)...))

	rec := serveWithClaims(t, rt, admin, http.MethodGet, "/v1/adAccount/acc1/analysis/latest")
	require.Equal(t, http.StatusOK, rec.Code)

	var entry struct {
		ID     string             `json:"id"`
		Report stdjson.RawMessage `json:"report"`
	}
	require.NoError(t, stdjson.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "Ab12Cd", entry.ID)
	assert.JSONEq(t, `{"has_data":true}`, string(entry.Report))

	service.latestErr = analyzing.ErrReportNotFound
	rec = serveWithClaims(t, rt, admin, http.MethodGet, "/v1/adAccount/acc1/analysis/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ANL_002")
}

type stubCronJob struct {
	triggered int
}

func (s *stubCronJob) TriggerManualSync() { s.triggered++ }

func (s *stubCronJob) GetStatus() map[string]any {
	return map[string]any{"enabled": true, "running": false}
}

func TestCronJobs(t *testing.T) {
	admin := &domain.Claims{UserID: 1, UserRoleID: middleware.RoleAdmin}
	supervisor := &domain.Claims{UserID: 3, UserRoleID: middleware.RoleSupervisor}

	job := &stubCronJob{}
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{AnalysisRefreshService: job})...))

	rec := serveWithClaims(t, rt, admin, http.MethodPost, "/v1/cron/analysis/run")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, job.triggered)

	rec = serveWithClaims(t, rt, admin, http.MethodPost, "/v1/cron/all/run")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 2, job.triggered)

	rec = serveWithClaims(t, rt, admin, http.MethodPost, "/v1/cron/ssotica/run")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 2, job.triggered)

	rec = serveWithClaims(t, rt, supervisor, http.MethodPost, "/v1/cron/analysis/run")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 2, job.triggered)

	rec = serveWithClaims(t, rt, supervisor, http.MethodGet, "/v1/cron/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"analysis":{"enabled":true,"running":false}}`, rec.Body.String())
}

func TestCronJobs_ServiceUnavailable(t *testing.T) {
	admin := &domain.Claims{UserID: 1, UserRoleID: middleware.RoleAdmin}
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{})...))

	rec := serveWithClaims(t, rt, admin, http.MethodPost, "/v1/cron/analysis/run")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthcheck(t *testing.T) {
	rt := router.New(router.WithRoutes(Healthcheck(stubPinger{err: errors.New("down")})...))

	rec := serveWithClaims(t, rt, nil, http.MethodGet, "/healthcheck")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())

	rec = serveWithClaims(t, rt, nil, http.MethodGet, "/healthcheck?deep=true")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_005")
}

func TestRouter_NotFound(t *testing.T) {
	rt := router.New(router.WithRoutes(Healthcheck(nil)...))

	rec := serveWithClaims(t, rt, nil, http.MethodGet, "/v1/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "VAL_004")

	rec = serveWithClaims(t, rt, nil, http.MethodPost, "/healthcheck")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
