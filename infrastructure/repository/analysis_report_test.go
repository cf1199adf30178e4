package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

func TestAnalysisReportRepository_SaveOrUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &analysisReportRepository{conn: db}
	analysis := &domain.UnifiedAnalysis{
		HasData: true,
		Suggestions: []domain.Suggestion{
			{ID: "multi_period_0", Text: "🚨 ROAS em queda", Priority: domain.PriorityUrgent},
		},
		Metadata: domain.AnalysisMetadata{AccountID: "acc1"},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analysis_reports (id,account_id,has_data,report) VALUES ($1,$2,$3,$4)")).
		WithArgs(sqlmock.AnyArg(), "acc1", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SaveOrUpdate(context.Background(), analysis))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisReportRepository_SaveOrUpdate_RequiresAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &analysisReportRepository{conn: db}

	assert.Error(t, repo.SaveOrUpdate(context.Background(), &domain.UnifiedAnalysis{}))
	assert.Error(t, repo.SaveOrUpdate(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisReportRepository_GetLatestByAccountID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &analysisReportRepository{conn: db}
	now := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	report := []byte(`{"has_data":true,"suggestions":[]}`)

	mock.ExpectQuery(regexp.QuoteMeta("FROM analysis_reports ar WHERE ar.account_id = $1")).
		WithArgs("acc1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "has_data", "report", "created_at", "updated_at"}).
			AddRow("Ab12Cd", "acc1", true, report, now, now))

	entry, err := repo.GetLatestByAccountID(context.Background(), "acc1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Ab12Cd", entry.ID)
	assert.True(t, entry.HasData)
	assert.JSONEq(t, string(report), string(entry.Report))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(entry.Report, &decoded))
	assert.Equal(t, true, decoded["has_data"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisReportRepository_GetLatestByAccountID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &analysisReportRepository{conn: db}

	mock.ExpectQuery(regexp.QuoteMeta("FROM analysis_reports ar")).
		WithArgs("acc1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "has_data", "report", "created_at", "updated_at"}))

	entry, err := repo.GetLatestByAccountID(context.Background(), "acc1")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.NoError(t, mock.ExpectationsWereMet())
}
