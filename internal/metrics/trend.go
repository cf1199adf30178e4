package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
	"github.com/vfg2006/traffic-advisor-api/internal/scoring"
)

// relativeSlopeThreshold é a inclinação relativa (slope/média) a partir da qual a série deixa de ser estável
const relativeSlopeThreshold = 0.05

// ComputeTrajectory classifica a direção da série (do mais antigo para o mais recente)
// pela inclinação de mínimos quadrados normalizada pela média.
func ComputeTrajectory(values []float64) domain.Trajectory {
	if len(values) < 2 {
		return domain.TrajectoryStable
	}

	mean := stat.Mean(values, nil)
	if mean == 0 {
		return domain.TrajectoryStable
	}

	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}

	_, slope := stat.LinearRegression(xs, values, nil, false)
	relative := domain.Finite(slope / mean)

	switch {
	case relative > relativeSlopeThreshold:
		return domain.TrajectoryIncreasing
	case relative < -relativeSlopeThreshold:
		return domain.TrajectoryDecreasing
	default:
		return domain.TrajectoryStable
	}
}

// PerformanceTrajectory avalia o ROAS nas janelas 90d, 30d e 7d
func PerformanceTrajectory(windows domain.WindowSet) domain.PerformanceTrend {
	values := []float64{
		windows.Last90.Metrics.ROAS(),
		windows.Last30.Metrics.ROAS(),
		windows.Last7.Metrics.ROAS(),
	}

	switch ComputeTrajectory(values) {
	case domain.TrajectoryIncreasing:
		return domain.PerformanceImproving
	case domain.TrajectoryDecreasing:
		return domain.PerformanceDeclining
	default:
		return domain.PerformanceStable
	}
}

// SpendTrajectory avalia o investimento médio diário nas janelas 90d, 30d e 7d
func SpendTrajectory(windows domain.WindowSet) domain.Trajectory {
	return ComputeTrajectory([]float64{
		windows.Last90.DailyAverageSpend(),
		windows.Last30.DailyAverageSpend(),
		windows.Last7.DailyAverageSpend(),
	})
}

// ComparePeriods calcula a variação de ROAS do período antigo para o novo e sua confiança
func ComparePeriods(older, newer domain.PeriodMetrics) domain.PeriodChange {
	return domain.PeriodChange{
		PercentChange: domain.ROASChange(older, newer),
		Confidence:    scoring.PeriodChangeConfidence(older, newer),
	}
}
