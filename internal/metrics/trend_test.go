package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

func TestComputeTrajectory(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected domain.Trajectory
	}{
		{name: "vazio", values: nil, expected: domain.TrajectoryStable},
		{name: "um ponto", values: []float64{7}, expected: domain.TrajectoryStable},
		{name: "crescente", values: []float64{1, 2, 3, 4, 5}, expected: domain.TrajectoryIncreasing},
		{name: "decrescente", values: []float64{5, 4, 3, 2, 1}, expected: domain.TrajectoryDecreasing},
		{name: "constante", values: []float64{3, 3, 3, 3}, expected: domain.TrajectoryStable},
		{name: "média zero", values: []float64{-1, 0, 1}, expected: domain.TrajectoryStable},
		{name: "variação pequena", values: []float64{100, 101, 102}, expected: domain.TrajectoryStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeTrajectory(tt.values))
		})
	}
}

func windowSet(roas90, roas30, roas7 float64, spend90, spend30, spend7 float64) domain.WindowSet {
	return domain.WindowSet{
		Last90: domain.Window{Label: domain.Window90d, Days: 90, Metrics: domain.PeriodMetrics{Spend: spend90, Revenue: spend90 * roas90}},
		Last30: domain.Window{Label: domain.Window30d, Days: 30, Metrics: domain.PeriodMetrics{Spend: spend30, Revenue: spend30 * roas30}},
		Last7:  domain.Window{Label: domain.Window7d, Days: 7, Metrics: domain.PeriodMetrics{Spend: spend7, Revenue: spend7 * roas7}},
	}
}

func TestPerformanceTrajectory(t *testing.T) {
	assert.Equal(t, domain.PerformanceImproving, PerformanceTrajectory(windowSet(2, 3, 4, 900, 300, 70)))
	assert.Equal(t, domain.PerformanceDeclining, PerformanceTrajectory(windowSet(4, 3, 2, 900, 300, 70)))
	assert.Equal(t, domain.PerformanceStable, PerformanceTrajectory(windowSet(3, 3, 3, 900, 300, 70)))
}

func TestSpendTrajectory(t *testing.T) {
	// médias diárias: 10, 10, 10
	assert.Equal(t, domain.TrajectoryStable, SpendTrajectory(windowSet(1, 1, 1, 900, 300, 70)))
	// médias diárias: 10, 20, 40
	assert.Equal(t, domain.TrajectoryIncreasing, SpendTrajectory(windowSet(1, 1, 1, 900, 600, 280)))
	// médias diárias: 10, 5, 2
	assert.Equal(t, domain.TrajectoryDecreasing, SpendTrajectory(windowSet(1, 1, 1, 900, 150, 14)))
}

func TestComparePeriods(t *testing.T) {
	older := domain.PeriodMetrics{Spend: 1000, Revenue: 3000, Conversions: 80}
	newer := domain.PeriodMetrics{Spend: 500, Revenue: 2000, Conversions: 40}

	change := ComparePeriods(older, newer)

	assert.InDelta(t, 33.33, change.PercentChange, 0.01)
	assert.True(t, change.Confidence.IsSignificant)
	assert.Equal(t, domain.ConfidenceHigh, change.Confidence.Level)

	zero := ComparePeriods(domain.PeriodMetrics{}, newer)
	assert.Equal(t, 0.0, zero.PercentChange)
}
