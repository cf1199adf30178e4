package analyzers

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/vfg2006/traffic-advisor-api/internal/anomaly"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/internal/metrics"
	"github.com/vfg2006/traffic-advisor-api/internal/scoring"
	"github.com/vfg2006/traffic-advisor-api/pkg/utils"
)

const (
	budgetStepPercent = 20.0
	// dailyHistoryDays é quantos dias anteriores entram no z-score do ROAS diário
	dailyHistoryDays = 14
)

// MultiPeriodAnalyzer compara as janelas de 7, 30 e 90 dias de todas as plataformas da conta
type MultiPeriodAnalyzer struct {
	reader DataReader
	opts   Options
}

// NewMultiPeriodAnalyzer cria uma nova instância do analisador multi-período
func NewMultiPeriodAnalyzer(reader DataReader, opts Options) *MultiPeriodAnalyzer {
	return &MultiPeriodAnalyzer{
		reader: reader,
		opts:   opts.withDefaults(),
	}
}

func (a *MultiPeriodAnalyzer) Name() string {
	return MultiPeriodName
}

func (a *MultiPeriodAnalyzer) Analyze(ctx context.Context, accountID string) (domain.AnalyzerOutput, error) {
	since := a.opts.Now().AddDate(0, 0, -a.opts.LookbackDays)

	series, err := loadPlatformSeries(ctx, a.reader, accountID, since)
	if err != nil {
		return domain.NoData(), fmt.Errorf("multi_period: %w", err)
	}

	if len(series) == 0 {
		logrus.WithField("account_id", accountID).Debug("multi_period: no performance rows")
		return domain.NoData(), nil
	}

	byPlatform, total := metrics.CombinePlatforms(series)
	if total.Last90.Metrics.IsEmpty() {
		return domain.NoData(), nil
	}

	performance := metrics.PerformanceTrajectory(total)
	spend := metrics.SpendTrajectory(total)
	change := metrics.ComparePeriods(total.Last30.Metrics, total.Last7.Metrics)

	output := domain.AnalyzerOutput{HasData: true}

	for _, alert := range anomaly.Detect(total.Last7, total.Last30) {
		output.Suggestions = append(output.Suggestions, alertSuggestion(alert))
	}

	output.Suggestions = append(output.Suggestions, a.trendSuggestions(total, performance, spend, change)...)
	output.Suggestions = append(output.Suggestions, a.dailyOutliers(series)...)
	output.ActionableRecommendations = a.budgetRecommendations(byPlatform)

	output.Summary = fmt.Sprintf(
		"ROAS 7d %.2fx | 30d %.2fx | 90d %.2fx | desempenho %s | investimento %s",
		total.Last7.Metrics.ROAS(),
		total.Last30.Metrics.ROAS(),
		total.Last90.Metrics.ROAS(),
		performance,
		spend,
	)

	return output, nil
}

func alertSuggestion(alert domain.Alert) domain.RawSuggestion {
	text, priority := "⚠️ "+alert.Message, domain.PriorityImportant
	if alert.Severity == domain.SeverityCritical {
		text, priority = "🚨 "+alert.Message, domain.PriorityUrgent
	}
	return domain.StructuredSuggestion(domain.Suggestion{
		Text:     text,
		Priority: priority,
		Category: domain.CategoryAlert,
	})
}

func (a *MultiPeriodAnalyzer) trendSuggestions(
	total domain.WindowSet,
	performance domain.PerformanceTrend,
	spend domain.Trajectory,
	change domain.PeriodChange,
) []domain.RawSuggestion {
	suggestions := make([]domain.RawSuggestion, 0, 2)

	switch {
	case performance == domain.PerformanceDeclining && change.Confidence.IsSignificant:
		suggestions = append(suggestions, domain.TextSuggestion(fmt.Sprintf(
			"⚠️ Desempenho em queda: ROAS passou de %.2fx (30d) para %.2fx (7d), variação de %.1f%%",
			total.Last30.Metrics.ROAS(), total.Last7.Metrics.ROAS(), change.PercentChange,
		)))
	case performance == domain.PerformanceImproving && change.Confidence.IsSignificant:
		suggestions = append(suggestions, domain.StructuredSuggestion(domain.Suggestion{
			Text: fmt.Sprintf(
				"ROAS em alta: %.2fx nos últimos 7 dias contra %.2fx em 30 dias (+%.1f%%)",
				total.Last7.Metrics.ROAS(), total.Last30.Metrics.ROAS(), change.PercentChange,
			),
			Priority:    domain.PriorityInfo,
			Category:    domain.CategoryOptimization,
			Confidence:  scoring.ScoreToInt(change.Confidence.Score),
			Explanation: "A melhora aparece nas três janelas analisadas. Mantenha as campanhas que sustentam o resultado.",
			DataPoints:  change.Confidence.Factors,
		}))
	}

	if spend == domain.TrajectoryIncreasing && performance == domain.PerformanceDeclining {
		suggestions = append(suggestions, domain.TextSuggestion(fmt.Sprintf(
			"⚠️ Investimento diário subindo (%s/dia em 7d) enquanto o ROAS cai. Revise as campanhas antes de ampliar verba.",
			formatCurrency(total.Last7.DailyAverageSpend()),
		)))
	}

	return suggestions
}

// dailyOutliers compara o ROAS do dia mais recente de cada plataforma com os dias anteriores
func (a *MultiPeriodAnalyzer) dailyOutliers(series []domain.PlatformSeries) []domain.RawSuggestion {
	byPlatform := make(map[string][][]domain.DailyPerformance)
	for _, s := range series {
		byPlatform[s.AdAccount.Platform] = append(byPlatform[s.AdAccount.Platform], s.Rows)
	}

	suggestions := make([]domain.RawSuggestion, 0)
	for _, platform := range metrics.Platforms(byPlatform) {
		rows := metrics.MergeByDate(byPlatform[platform]...)
		if len(rows) < 2 {
			continue
		}

		latest := rows[len(rows)-1]
		if latest.Spend <= 0 {
			continue
		}

		history := make([]float64, 0, dailyHistoryDays)
		for _, row := range metrics.LastN(rows[:len(rows)-1], dailyHistoryDays) {
			if row.Spend > 0 {
				history = append(history, metrics.Aggregate([]domain.DailyPerformance{row}).ROAS())
			}
		}

		current := metrics.Aggregate([]domain.DailyPerformance{latest}).ROAS()
		score := scoring.AnomalyScore(current, history)
		if !score.IsAnomaly {
			continue
		}

		mean := stat.Mean(history, nil)
		date := latest.Date.Format("02/01")

		switch score.Direction {
		case domain.DirectionBelow:
			suggestions = append(suggestions, domain.TextSuggestion(fmt.Sprintf(
				"⚠️ ROAS de %s em %s (%.2fx) ficou muito abaixo da média recente (%.2fx)",
				date, platformLabel(platform), current, mean,
			)))
		case domain.DirectionAbove:
			suggestions = append(suggestions, domain.StructuredSuggestion(domain.Suggestion{
				Text: fmt.Sprintf(
					"ROAS de %s em %s (%.2fx) ficou bem acima da média recente (%.2fx)",
					date, platformLabel(platform), current, mean,
				),
				Priority:    domain.PriorityInfo,
				Category:    domain.CategoryOptimization,
				Confidence:  60,
				Explanation: "Verifique quais anúncios puxaram o resultado e considere replicá-los.",
				DataPoints:  []string{fmt.Sprintf("z-score: %.2f", score.ZScore)},
				Platform:    platform,
			}))
		}
	}

	return suggestions
}

// budgetRecommendations sugere escalar ou reduzir o orçamento de cada plataforma
// quando a variação de ROAS entre 30d e 7d é significativa
func (a *MultiPeriodAnalyzer) budgetRecommendations(byPlatform map[string]domain.WindowSet) []domain.ActionableRecommendation {
	recommendations := make([]domain.ActionableRecommendation, 0)

	for _, platform := range metrics.Platforms(byPlatform) {
		windows := byPlatform[platform]
		if windows.Last7.Metrics.Spend <= 0 {
			continue
		}

		change := metrics.ComparePeriods(windows.Last30.Metrics, windows.Last7.Metrics)
		if !change.Confidence.IsSignificant {
			continue
		}

		roas7 := windows.Last7.Metrics.ROAS()
		trend := metrics.PerformanceTrajectory(windows)

		var (
			changePercent float64
			priority      int
			headline      string
			explanation   string
			validated     bool
		)

		switch {
		case change.PercentChange > 0 && roas7 >= a.opts.TargetROAS:
			changePercent = budgetStepPercent
			priority = domain.PriorityImportant
			validated = trend == domain.PerformanceImproving
			headline = fmt.Sprintf("Escalar orçamento em %s em %.0f%%", platformLabel(platform), budgetStepPercent)
			explanation = fmt.Sprintf(
				"O ROAS de 7 dias (%.2fx) subiu %.1f%% sobre a média de 30 dias e está acima da meta de %.1fx.",
				roas7, change.PercentChange, a.opts.TargetROAS,
			)
		case change.PercentChange < 0 && roas7 < a.opts.TargetROAS:
			changePercent = -budgetStepPercent
			priority = domain.PriorityImportant
			if roas7 < 1 {
				priority = domain.PriorityUrgent
			}
			validated = trend == domain.PerformanceDeclining
			headline = fmt.Sprintf("Reduzir orçamento em %s em %.0f%%", platformLabel(platform), budgetStepPercent)
			explanation = fmt.Sprintf(
				"O ROAS de 7 dias (%.2fx) caiu %.1f%% em relação à média de 30 dias e está abaixo da meta de %.1fx.",
				roas7, math.Abs(change.PercentChange), a.opts.TargetROAS,
			)
		default:
			continue
		}

		confidence := scoring.RecommendationConfidence(scoring.RecommendationSignals{
			SampleSize:           int(math.Round(windows.Last30.Metrics.Conversions)),
			DaysCovered:          windows.Last90.Days,
			MultiPeriodValidated: validated,
			ChangePercent:        change.PercentChange,
		})

		dailyAmount := windows.Last7.DailyAverageSpend() * math.Abs(changePercent) / 100

		recommendations = append(recommendations, domain.ActionableRecommendation{
			ID:          newRecommendationID("mp"),
			Priority:    priority,
			Category:    domain.CategoryBudget,
			Headline:    headline,
			Explanation: explanation,
			DataPoints: []string{
				fmt.Sprintf("ROAS 7d: %.2fx", roas7),
				fmt.Sprintf("ROAS 30d: %.2fx", windows.Last30.Metrics.ROAS()),
				fmt.Sprintf("Investimento médio 7d: %s/dia", formatCurrency(windows.Last7.DailyAverageSpend())),
				fmt.Sprintf("Conversões 30d: %.0f", windows.Last30.Metrics.Conversions),
				conversionRateDataPoint(windows),
			},
			Action: domain.BudgetChangeAction{
				Platform:      platform,
				ChangePercent: changePercent,
				Amount:        utils.RoundWithTwoDecimalPlace(dailyAmount),
			},
			Confidence: scoring.ScoreToInt(confidence.Score),
			EstimatedImpact: fmt.Sprintf(
				"%s/dia em investimento", formatSignedCurrency(math.Copysign(dailyAmount, changePercent)),
			),
			Platform: platform,
			Source:   MultiPeriodName,
			Tags:     []string{"orcamento", string(trend)},
		})
	}

	return recommendations
}

// conversionRateDataPoint compara a taxa cliques→conversões dos últimos 7 dias com a dos dias anteriores da janela de 30
func conversionRateDataPoint(windows domain.WindowSet) string {
	clicks7 := int(math.Round(windows.Last7.Metrics.Clicks))
	conversions7 := int(math.Round(windows.Last7.Metrics.Conversions))
	clicksBefore := max(int(math.Round(windows.Last30.Metrics.Clicks))-clicks7, 0)
	conversionsBefore := max(int(math.Round(windows.Last30.Metrics.Conversions))-conversions7, 0)
	daysBefore := max(windows.Last30.Days-windows.Last7.Days, 0)

	result := scoring.ProportionTest(clicksBefore, conversionsBefore, clicks7, conversions7)

	verdict := "sem diferença significativa"
	switch {
	case result.PValue == nil:
		verdict = "amostra insuficiente"
	case result.IsSignificant:
		verdict = fmt.Sprintf("variação significativa, p=%.4f", *result.PValue)
	}

	return fmt.Sprintf(
		"Taxa de conversão 7d: %.2f%% vs %.2f%% nos %d dias anteriores (%s)",
		rate(conversions7, clicks7), rate(conversionsBefore, clicksBefore), daysBefore, verdict,
	)
}

func rate(successes, trials int) float64 {
	if trials <= 0 {
		return 0
	}
	return float64(successes) / float64(trials) * 100
}

func formatSignedCurrency(value float64) string {
	if value >= 0 {
		return "+" + formatCurrency(value)
	}
	return "-" + formatCurrency(-value)
}
