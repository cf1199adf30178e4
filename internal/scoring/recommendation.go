package scoring

import (
	"fmt"
	"math"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

// RecommendationSignals são as evidências que sustentam uma recomendação
type RecommendationSignals struct {
	SampleSize           int
	DaysCovered          int
	MultiPeriodValidated bool
	ChangePercent        float64
	// PriorSuccessRate é a taxa de sucesso histórica de recomendações parecidas, quando conhecida
	PriorSuccessRate *float64
}

// RecommendationConfidence combina as evidências em uma pontuação entre 10 e 100
func RecommendationConfidence(signals RecommendationSignals) domain.ConfidenceResult {
	score := 50.0
	factors := make([]string, 0, 5)

	switch {
	case signals.SampleSize >= 100:
		score += 25
		factors = append(factors, fmt.Sprintf("Amostra robusta (%d)", signals.SampleSize))
	case signals.SampleSize >= 30:
		score += 15
		factors = append(factors, fmt.Sprintf("Amostra razoável (%d)", signals.SampleSize))
	case signals.SampleSize >= 10:
		score += 5
		factors = append(factors, fmt.Sprintf("Amostra pequena (%d)", signals.SampleSize))
	default:
		score -= 20
		factors = append(factors, fmt.Sprintf("Amostra muito pequena (%d)", signals.SampleSize))
	}

	switch {
	case signals.DaysCovered >= 30:
		score += 15
		factors = append(factors, fmt.Sprintf("%d dias de histórico", signals.DaysCovered))
	case signals.DaysCovered >= 14:
		score += 10
		factors = append(factors, fmt.Sprintf("%d dias de histórico", signals.DaysCovered))
	case signals.DaysCovered >= 7:
		score += 5
		factors = append(factors, fmt.Sprintf("%d dias de histórico", signals.DaysCovered))
	}

	if signals.MultiPeriodValidated {
		score += 10
		factors = append(factors, "Tendência confirmada em múltiplos períodos")
	}

	magnitude := math.Abs(signals.ChangePercent)
	switch {
	case magnitude > 30:
		score += 10
		factors = append(factors, fmt.Sprintf("Variação de %.1f%%", signals.ChangePercent))
	case magnitude > 15:
		score += 5
		factors = append(factors, fmt.Sprintf("Variação de %.1f%%", signals.ChangePercent))
	}

	if rate := signals.PriorSuccessRate; rate != nil {
		switch {
		case *rate > 0.7:
			score += 10
			factors = append(factors, "Recomendações semelhantes funcionaram antes")
		case *rate < 0.3:
			score -= 10
			factors = append(factors, "Recomendações semelhantes tiveram pouco sucesso")
		}
	}

	score = math.Max(10, math.Min(100, score))
	level := tierByScore(score, 75, 50)

	return domain.ConfidenceResult{
		IsSignificant: level != domain.ConfidenceLow,
		Level:         level,
		Score:         score,
		SampleSize:    signals.SampleSize,
		Factors:       factors,
	}
}

// ScoreToInt arredonda a pontuação para uso em sugestões e recomendações
func ScoreToInt(score float64) int {
	return int(math.Round(domain.Finite(score)))
}
