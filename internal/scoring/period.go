package scoring

import (
	"fmt"
	"math"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

const minPeriodConversions = 10

// PeriodChangeConfidence pontua heuristicamente a variação de ROAS entre dois períodos
func PeriodChangeConfidence(older, newer domain.PeriodMetrics) domain.ConfidenceResult {
	conversions := older.Conversions + newer.Conversions
	spend := older.Spend + newer.Spend
	sample := int(math.Round(conversions))

	if conversions < minPeriodConversions {
		return domain.ConfidenceResult{
			IsSignificant: false,
			Level:         domain.ConfidenceLow,
			Score:         20,
			SampleSize:    sample,
			Factors: []string{
				fmt.Sprintf("Poucas conversões para comparar períodos (%d)", sample),
			},
		}
	}

	change := domain.ROASChange(older, newer)
	magnitude := math.Abs(change)

	score := 50.0
	factors := make([]string, 0, 4)
	forceHigh := false

	switch {
	case magnitude > 30:
		score += 20
		factors = append(factors, fmt.Sprintf("Variação expressiva de %.1f%%", change))
	case magnitude > 20:
		score += 10
		factors = append(factors, fmt.Sprintf("Variação moderada de %.1f%%", change))
	}

	switch {
	case conversions >= 100:
		score += 20
		forceHigh = true
		factors = append(factors, fmt.Sprintf("%d conversões no total", sample))
	case conversions >= 30:
		score += 10
		factors = append(factors, fmt.Sprintf("%d conversões no total", sample))
	}

	if spend >= 1000 {
		score += 10
		factors = append(factors, fmt.Sprintf("Investimento combinado de R$ %.2f", spend))
	}

	level := tierByScore(score, 80, 55)
	if forceHigh {
		level = domain.ConfidenceHigh
	}

	return domain.ConfidenceResult{
		IsSignificant: magnitude > 15,
		Level:         level,
		Score:         score,
		SampleSize:    sample,
		Factors:       factors,
	}
}

func tierByScore(score, high, medium float64) domain.ConfidenceLevel {
	switch {
	case score >= high:
		return domain.ConfidenceHigh
	case score >= medium:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
