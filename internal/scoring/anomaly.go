package scoring

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

const (
	minAnomalyHistory = 3
	anomalyThreshold  = 2.0
)

// AnomalyScore calcula o z-score de current contra a média e o desvio padrão populacional do histórico.
// Com desvio zero, qualquer valor diferente da média é anômalo e o z-score fica em 0.
func AnomalyScore(current float64, history []float64) domain.AnomalyResult {
	if len(history) < minAnomalyHistory {
		return domain.AnomalyResult{Direction: domain.DirectionNormal}
	}

	mean, stddev := stat.PopMeanStdDev(history, nil)

	if stddev == 0 || math.IsNaN(stddev) {
		result := domain.AnomalyResult{Direction: domain.DirectionNormal}
		if current != mean {
			result.IsAnomaly = true
			result.Direction = directionOf(current - mean)
		}
		return result
	}

	z := domain.Finite((current - mean) / stddev)
	result := domain.AnomalyResult{
		ZScore:    z,
		Direction: domain.DirectionNormal,
	}

	if math.Abs(z) > anomalyThreshold {
		result.IsAnomaly = true
		result.Direction = directionOf(z)
	}

	return result
}

func directionOf(v float64) domain.Direction {
	switch {
	case v > 0:
		return domain.DirectionAbove
	case v < 0:
		return domain.DirectionBelow
	default:
		return domain.DirectionNormal
	}
}
