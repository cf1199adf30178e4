package analyzing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-advisor-api/infrastructure/repository"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

// AnalysisService expõe o pipeline para a API e para a cron de atualização
type AnalysisService interface {
	AnalysisRunner
	Analyze(ctx context.Context, accountID string) (*domain.UnifiedAnalysis, error)
	Latest(ctx context.Context, accountID string) (*domain.AnalysisReportEntry, error)
	Refresh(ctx context.Context, accountID string) (*domain.UnifiedAnalysis, error)
}

type Service struct {
	runner            AnalysisRunner
	accountRepository repository.AccountRepository
	reportRepository  repository.AnalysisReportRepository
}

func NewService(
	runner AnalysisRunner,
	accountRepository repository.AccountRepository,
	reportRepository repository.AnalysisReportRepository,
) AnalysisService {
	return &Service{
		runner:            runner,
		accountRepository: accountRepository,
		reportRepository:  reportRepository,
	}
}

func (s *Service) RunAll(ctx context.Context, accountID string) *domain.UnifiedAnalysis {
	return s.runner.RunAll(ctx, accountID)
}

// Analyze valida a conta e executa a análise ao vivo, sem salvar o snapshot
func (s *Service) Analyze(ctx context.Context, accountID string) (*domain.UnifiedAnalysis, error) {
	if accountID == "" {
		return nil, ErrAccountIDRequired
	}

	account, err := s.accountRepository.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	return s.runner.RunAll(ctx, accountID), nil
}

// Latest retorna o último snapshot salvo para a conta
func (s *Service) Latest(ctx context.Context, accountID string) (*domain.AnalysisReportEntry, error) {
	if accountID == "" {
		return nil, ErrAccountIDRequired
	}

	entry, err := s.reportRepository.GetLatestByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest analysis of account %s: %w", accountID, err)
	}
	if entry == nil {
		return nil, ErrReportNotFound
	}

	return entry, nil
}

// Refresh executa a análise e salva o snapshot da conta
func (s *Service) Refresh(ctx context.Context, accountID string) (*domain.UnifiedAnalysis, error) {
	if accountID == "" {
		return nil, ErrAccountIDRequired
	}

	analysis := s.runner.RunAll(ctx, accountID)

	if err := s.reportRepository.SaveOrUpdate(ctx, analysis); err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Error("analysis: failed to save report")
		return analysis, fmt.Errorf("%w: %v", ErrSaveReport, err)
	}

	return analysis, nil
}
