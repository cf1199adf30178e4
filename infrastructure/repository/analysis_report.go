package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/pkg/utils"
)

const (
	analysisReportsTable = "analysis_reports ar"
)

// AnalysisReportRepository guarda o último snapshot de análise de cada conta
type AnalysisReportRepository interface {
	SaveOrUpdate(ctx context.Context, analysis *domain.UnifiedAnalysis) error
	GetLatestByAccountID(ctx context.Context, accountID string) (*domain.AnalysisReportEntry, error)
}

type analysisReportRepository struct {
	conn postgres.Queryer
}

func NewAnalysisReportRepository(conn *postgres.Connection) AnalysisReportRepository {
	return &analysisReportRepository{
		conn: conn,
	}
}

func (r *analysisReportRepository) SaveOrUpdate(ctx context.Context, analysis *domain.UnifiedAnalysis) error {
	if analysis == nil || analysis.Metadata.AccountID == "" {
		return errors.New("analysis without account id")
	}

	report, err := json.Marshal(analysis)
	if err != nil {
		return errors.Wrap(err, "failed to marshal analysis")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return errors.Wrap(err, "failed to generate report id")
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("analysis_reports").
		Columns("id", "account_id", "has_data", "report").
		Values(id, analysis.Metadata.AccountID, analysis.HasData, report).
		Suffix(`
			ON CONFLICT (account_id) DO UPDATE SET
				has_data = EXCLUDED.has_data,
				report = EXCLUDED.report,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return errors.Wrapf(err, "database error (code: %s)", pqErr.Code)
		}
		return errors.Wrap(err, "failed to save analysis report")
	}

	return nil
}

func (r *analysisReportRepository) GetLatestByAccountID(ctx context.Context, accountID string) (*domain.AnalysisReportEntry, error) {
	query, args, err := squirrel.
		Select("ar.id, ar.account_id, ar.has_data, ar.report, ar.created_at, ar.updated_at").
		From(analysisReportsTable).
		Where(squirrel.Eq{"ar.account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	entry := &domain.AnalysisReportEntry{}
	var report []byte
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.HasData,
		&report,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to get analysis report of account %s", accountID)
	}
	entry.Report = json.RawMessage(report)

	return entry, nil
}
