package analyzers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-advisor-api/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var metaAdAccount = domain.PlatformAdAccount{ID: "pa1", AccountID: "acc1", Platform: domain.PlatformMeta, ExternalID: "act_1"}

// dailySeries gera days linhas terminando no dia anterior a referenceNow
func dailySeries(days int, row func(i int) domain.DailyPerformance) []domain.DailyPerformance {
	start := referenceNow.AddDate(0, 0, -days)
	rows := make([]domain.DailyPerformance, 0, days)
	for i := 0; i < days; i++ {
		r := row(i)
		r.Date = start.AddDate(0, 0, i)
		rows = append(rows, r)
	}
	return rows
}

func TestMultiPeriodAnalyzer_CrashingROAS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rows := dailySeries(90, func(i int) domain.DailyPerformance {
		revenue := 300.0
		if i >= 83 {
			revenue = 80
		}
		return domain.DailyPerformance{Spend: 100, Revenue: revenue, Clicks: 50, Impressions: 2000, Conversions: 5}
	})

	mockReader := mocks.NewMockMarketingDataRepository(ctrl)
	mockReader.EXPECT().ListAdAccounts(gomock.Any(), "acc1").Return([]domain.PlatformAdAccount{metaAdAccount}, nil)
	mockReader.EXPECT().ListDailyPerformance(gomock.Any(), metaAdAccount, referenceNow.AddDate(0, 0, -90)).Return(rows, nil)

	output, err := NewMultiPeriodAnalyzer(mockReader, fixedOptions()).Analyze(context.Background(), "acc1")
	require.NoError(t, err)

	assert.True(t, output.HasData)
	require.NotEmpty(t, output.Suggestions)
	assert.True(t, strings.HasPrefix(output.Suggestions[0].Text, "🚨 ROAS dos últimos 7 dias (0.80x)"))
	require.True(t, output.Suggestions[0].IsStructured())
	assert.Equal(t, domain.CategoryAlert, output.Suggestions[0].Structured.Category)
	assert.Equal(t, domain.PriorityUrgent, output.Suggestions[0].Structured.Priority)

	var declining bool
	for _, s := range output.Suggestions {
		if strings.HasPrefix(s.Text, "⚠️ Desempenho em queda") {
			declining = true
		}
	}
	assert.True(t, declining)

	require.Len(t, output.ActionableRecommendations, 1)
	rec := output.ActionableRecommendations[0]
	assert.Equal(t, domain.PriorityUrgent, rec.Priority)
	assert.Equal(t, domain.CategoryBudget, rec.Category)
	assert.Equal(t, 100, rec.Confidence)
	assert.Equal(t, domain.PlatformMeta, rec.Platform)
	assert.Equal(t, []string{"orcamento", string(domain.PerformanceDeclining)}, rec.Tags)
	assert.Contains(t, rec.DataPoints, "Taxa de conversão 7d: 10.00% vs 10.00% nos 23 dias anteriores (sem diferença significativa)")

	action, ok := rec.Action.(domain.BudgetChangeAction)
	require.True(t, ok)
	assert.Equal(t, -20.0, action.ChangePercent)
	assert.Equal(t, 20.0, action.Amount)

	assert.Contains(t, output.Summary, "ROAS 7d 0.80x")
	assert.Contains(t, output.Summary, "desempenho declining")
}

func TestMultiPeriodAnalyzer_ConversionRateDrop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rows := dailySeries(90, func(i int) domain.DailyPerformance {
		if i >= 83 {
			return domain.DailyPerformance{Spend: 100, Revenue: 80, Clicks: 50, Impressions: 2000, Conversions: 1}
		}
		return domain.DailyPerformance{Spend: 100, Revenue: 300, Clicks: 50, Impressions: 2000, Conversions: 5}
	})

	mockReader := mocks.NewMockMarketingDataRepository(ctrl)
	mockReader.EXPECT().ListAdAccounts(gomock.Any(), "acc1").Return([]domain.PlatformAdAccount{metaAdAccount}, nil)
	mockReader.EXPECT().ListDailyPerformance(gomock.Any(), metaAdAccount, gomock.Any()).Return(rows, nil)

	output, err := NewMultiPeriodAnalyzer(mockReader, fixedOptions()).Analyze(context.Background(), "acc1")
	require.NoError(t, err)

	require.Len(t, output.ActionableRecommendations, 1)
	var conversionRate string
	for _, dp := range output.ActionableRecommendations[0].DataPoints {
		if strings.HasPrefix(dp, "Taxa de conversão 7d") {
			conversionRate = dp
		}
	}
	assert.Contains(t, conversionRate, "2.00% vs 10.00%")
	assert.Contains(t, conversionRate, "variação significativa")
}

func TestConversionRateDataPoint_SmallSample(t *testing.T) {
	windows := domain.WindowSet{
		Last7:  domain.Window{Days: 7, Metrics: domain.PeriodMetrics{Clicks: 20, Conversions: 2}},
		Last30: domain.Window{Days: 30, Metrics: domain.PeriodMetrics{Clicks: 60, Conversions: 6}},
	}

	assert.Equal(t,
		"Taxa de conversão 7d: 10.00% vs 10.00% nos 23 dias anteriores (amostra insuficiente)",
		conversionRateDataPoint(windows),
	)
}

func TestMultiPeriodAnalyzer_DailyOutlierAbove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rows := dailySeries(30, func(i int) domain.DailyPerformance {
		revenue := 200.0
		if i == 29 {
			revenue = 1000
		}
		return domain.DailyPerformance{Spend: 100, Revenue: revenue, Clicks: 50, Impressions: 2000, Conversions: 1}
	})

	mockReader := mocks.NewMockMarketingDataRepository(ctrl)
	mockReader.EXPECT().ListAdAccounts(gomock.Any(), "acc1").Return([]domain.PlatformAdAccount{metaAdAccount}, nil)
	mockReader.EXPECT().ListDailyPerformance(gomock.Any(), metaAdAccount, gomock.Any()).Return(rows, nil)

	output, err := NewMultiPeriodAnalyzer(mockReader, fixedOptions()).Analyze(context.Background(), "acc1")
	require.NoError(t, err)

	var outlier *domain.Suggestion
	for _, s := range output.Suggestions {
		if s.IsStructured() && strings.Contains(s.Text, "bem acima da média recente") {
			outlier = s.Structured
		}
	}
	require.NotNil(t, outlier)
	assert.Equal(t, domain.PriorityInfo, outlier.Priority)
	assert.Equal(t, domain.PlatformMeta, outlier.Platform)
	assert.Equal(t, 60, outlier.Confidence)
}

func TestMultiPeriodAnalyzer_NoData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := mocks.NewMockMarketingDataRepository(ctrl)
	mockReader.EXPECT().ListAdAccounts(gomock.Any(), "acc1").Return([]domain.PlatformAdAccount{metaAdAccount}, nil)
	mockReader.EXPECT().ListDailyPerformance(gomock.Any(), metaAdAccount, gomock.Any()).Return(nil, nil)

	output, err := NewMultiPeriodAnalyzer(mockReader, fixedOptions()).Analyze(context.Background(), "acc1")
	require.NoError(t, err)
	assert.False(t, output.HasData)
	assert.Empty(t, output.Suggestions)
	assert.Empty(t, output.ActionableRecommendations)
}

func TestMultiPeriodAnalyzer_ReaderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := mocks.NewMockMarketingDataRepository(ctrl)
	mockReader.EXPECT().ListAdAccounts(gomock.Any(), "acc1").Return(nil, errors.New("timeout"))

	_, err := NewMultiPeriodAnalyzer(mockReader, fixedOptions()).Analyze(context.Background(), "acc1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multi_period")
}
