package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-advisor-api/infrastructure/repository"
	"github.com/vfg2006/traffic-advisor-api/internal/config"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/pkg/log"
)

// Refresher executa a análise de uma conta e salva o snapshot
type Refresher interface {
	Refresh(ctx context.Context, accountID string) (*domain.UnifiedAnalysis, error)
}

// AnalysisRefreshService gerencia o agendamento da atualização das análises de todas as contas ativas
type AnalysisRefreshService struct {
	scheduler   *gocron.Scheduler
	config      config.AnalysisRefresh
	accountRepo repository.AccountRepository
	refresher   Refresher
	baseCtx     context.Context

	syncMutex              sync.Mutex
	syncRunning            bool
	lastRefreshStartedAt   time.Time
	lastRefreshCompletedAt time.Time
	lastRefreshedAccounts  int
	lastFailedAccounts     int
}

// NewAnalysisRefreshService cria uma nova instância do serviço de atualização das análises
func NewAnalysisRefreshService(
	accountRepo repository.AccountRepository,
	refresher Refresher,
	refreshConfig config.AnalysisRefresh,
) *AnalysisRefreshService {
	if refreshConfig.MaxConcurrentJobs <= 0 {
		refreshConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       refreshConfig.CronSchedule,
		"max_concurrent_jobs": refreshConfig.MaxConcurrentJobs,
		"enabled":             refreshConfig.Enabled,
	}).Info("Configuração do agendador de análises carregada")

	return &AnalysisRefreshService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      refreshConfig,
		accountRepo: accountRepo,
		refresher:   refresher,
		baseCtx:     context.Background(),
	}
}

// Start agenda a atualização e para o agendador quando o contexto for cancelado
func (s *AnalysisRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Atualização agendada das análises desabilitada por configuração")
		return nil
	}

	s.baseCtx = ctx

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atualização das análises")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshAllAccounts(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização das análises: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização das análises")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshAllAccounts atualiza o snapshot de todas as contas ativas. Execuções sobrepostas são ignoradas.
func (s *AnalysisRefreshService) refreshAllAccounts(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização das análises já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastRefreshStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	accounts, err := s.accountRepo.ListAccounts(ctx, []domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de contas para atualização das análises")
		return
	}

	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta ativa encontrada para atualização das análises")
		return
	}

	refreshed, failed := s.refreshAccounts(ctx, accounts)

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"accounts":  len(accounts),
		"refreshed": refreshed,
		"failed":    failed,
	}).Info("Atualização das análises concluída")

	s.syncMutex.Lock()
	s.lastRefreshCompletedAt = time.Now()
	s.lastRefreshedAccounts = refreshed
	s.lastFailedAccounts = failed
	s.syncMutex.Unlock()
}

// refreshAccounts processa as contas limitando o número de análises simultâneas
func (s *AnalysisRefreshService) refreshAccounts(ctx context.Context, accounts []*domain.AdAccount) (refreshed, failed int) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var (
		wg      sync.WaitGroup
		countMu sync.Mutex
	)

	for _, account := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *domain.AdAccount) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			ok := s.refreshAccount(ctx, acc)

			countMu.Lock()
			if ok {
				refreshed++
			} else {
				failed++
			}
			countMu.Unlock()
		}(account)
	}

	wg.Wait()
	return refreshed, failed
}

func (s *AnalysisRefreshService) refreshAccount(ctx context.Context, acc *domain.AdAccount) bool {
	accountCtx, correlationID := log.WithCorrelationID(ctx)

	fields := logrus.Fields{
		"account_id":     acc.ID,
		"account_name":   acc.DisplayName(),
		"correlation_id": correlationID,
	}

	analysis, err := s.refresher.Refresh(accountCtx, acc.ID)
	if err != nil {
		logrus.WithFields(fields).WithError(err).Error("Erro ao atualizar análise da conta")
		return false
	}

	logrus.WithFields(fields).WithFields(logrus.Fields{
		"has_data":    analysis.HasData,
		"suggestions": len(analysis.Suggestions),
		"urgent":      analysis.Summary.Urgent,
	}).Info("Análise da conta atualizada")

	return true
}

// TriggerManualSync inicia manualmente a atualização das análises
func (s *AnalysisRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização das análises já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual das análises")
	go s.refreshAllAccounts(s.baseCtx)
}

// GetStatus retorna o status atual do agendador
func (s *AnalysisRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":                   s.config.Enabled,
		"cron":                      s.config.CronSchedule,
		"max_concurrent":            s.config.MaxConcurrentJobs,
		"running":                   s.syncRunning,
		"last_refresh_started_at":   s.lastRefreshStartedAt,
		"last_refresh_completed_at": s.lastRefreshCompletedAt,
		"last_refreshed_accounts":   s.lastRefreshedAccounts,
		"last_failed_accounts":      s.lastFailedAccounts,
	}
}
