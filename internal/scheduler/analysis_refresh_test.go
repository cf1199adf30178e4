package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/traffic-advisor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-advisor-api/internal/config"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/pkg/log"
)

type stubRefresher struct {
	mu       sync.Mutex
	calls    []string
	failures map[string]error
	hasCorr  bool
}

func (s *stubRefresher) Refresh(ctx context.Context, accountID string) (*domain.UnifiedAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, accountID)
	s.hasCorr = log.GetCorrelationID(ctx) != ""

	if err, ok := s.failures[accountID]; ok {
		return nil, err
	}
	return &domain.UnifiedAnalysis{HasData: true}, nil
}

func (s *stubRefresher) called() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	calls := append([]string(nil), s.calls...)
	sort.Strings(calls)
	return calls
}

func refreshConfig() config.AnalysisRefresh {
	return config.AnalysisRefresh{
		CronSchedule:      "0 3 * * *",
		MaxConcurrentJobs: 2,
		Enabled:           true,
	}
}

func TestAnalysisRefreshService_RefreshAllAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nickname := "Ótica Centro"
	accounts := []*domain.AdAccount{
		{ID: "ACC001", Name: "Loja A", Status: domain.AdAccountStatusActive},
		{ID: "ACC002", Name: "Loja B", Nickname: &nickname, Status: domain.AdAccountStatusActive},
		{ID: "ACC003", Name: "Loja C", Status: domain.AdAccountStatusActive},
	}

	tests := []struct {
		name          string
		setup         func(*mocks.MockAccountRepository)
		failures      map[string]error
		wantCalls     []string
		wantRefreshed int
		wantFailed    int
	}{
		{
			name: "Atualiza todas as contas ativas",
			setup: func(accountRepo *mocks.MockAccountRepository) {
				accountRepo.EXPECT().
					ListAccounts(gomock.Any(), []domain.AdAccountStatus{domain.AdAccountStatusActive}).
					Return(accounts, nil)
			},
			wantCalls:     []string{"ACC001", "ACC002", "ACC003"},
			wantRefreshed: 3,
		},
		{
			name: "Falha de uma conta não interrompe as demais",
			setup: func(accountRepo *mocks.MockAccountRepository) {
				accountRepo.EXPECT().
					ListAccounts(gomock.Any(), gomock.Any()).
					Return(accounts, nil)
			},
			failures:      map[string]error{"ACC002": errors.New("disk full")},
			wantCalls:     []string{"ACC001", "ACC002", "ACC003"},
			wantRefreshed: 2,
			wantFailed:    1,
		},
		{
			name: "Erro ao listar contas",
			setup: func(accountRepo *mocks.MockAccountRepository) {
				accountRepo.EXPECT().
					ListAccounts(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantCalls: []string{},
		},
		{
			name: "Nenhuma conta ativa",
			setup: func(accountRepo *mocks.MockAccountRepository) {
				accountRepo.EXPECT().
					ListAccounts(gomock.Any(), gomock.Any()).
					Return([]*domain.AdAccount{}, nil)
			},
			wantCalls: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := mocks.NewMockAccountRepository(ctrl)
			tt.setup(accountRepo)

			refresher := &stubRefresher{failures: tt.failures}
			service := NewAnalysisRefreshService(accountRepo, refresher, refreshConfig())

			service.refreshAllAccounts(context.Background())

			assert.Equal(t, tt.wantCalls, append([]string{}, refresher.called()...))

			status := service.GetStatus()
			assert.Equal(t, false, status["running"])
			assert.Equal(t, tt.wantRefreshed, status["last_refreshed_accounts"])
			assert.Equal(t, tt.wantFailed, status["last_failed_accounts"])
			if len(tt.wantCalls) > 0 {
				assert.True(t, refresher.hasCorr)
			}
		})
	}
}

func TestAnalysisRefreshService_SkipsOverlappingRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// sem expectativas: qualquer chamada ao repositório falha o teste
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	refresher := &stubRefresher{}
	service := NewAnalysisRefreshService(accountRepo, refresher, refreshConfig())

	service.syncRunning = true
	service.refreshAllAccounts(context.Background())
	service.TriggerManualSync()

	assert.Empty(t, refresher.called())
	assert.Equal(t, true, service.GetStatus()["running"])
}

func TestAnalysisRefreshService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	accountRepo.EXPECT().
		ListAccounts(gomock.Any(), gomock.Any()).
		Return([]*domain.AdAccount{{ID: "ACC001", Name: "Loja A"}}, nil)

	refresher := &stubRefresher{}
	service := NewAnalysisRefreshService(accountRepo, refresher, refreshConfig())

	service.TriggerManualSync()

	assert.Eventually(t, func() bool {
		completedAt, _ := service.GetStatus()["last_refresh_completed_at"].(time.Time)
		return !completedAt.IsZero()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"ACC001"}, refresher.called())
}

func TestAnalysisRefreshService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := refreshConfig()
	cfg.Enabled = false
	cfg.MaxConcurrentJobs = 0

	service := NewAnalysisRefreshService(mocks.NewMockAccountRepository(ctrl), &stubRefresher{}, cfg)

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, 1, service.GetStatus()["max_concurrent"])
	assert.Equal(t, false, service.GetStatus()["enabled"])
}

func TestAnalysisRefreshService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := refreshConfig()
	cfg.CronSchedule = "not a cron"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := NewAnalysisRefreshService(mocks.NewMockAccountRepository(ctrl), &stubRefresher{}, cfg)

	assert.Error(t, service.Start(ctx))
}
