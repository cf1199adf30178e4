// Package scoring reúne as funções puras de confiança estatística e heurística.
package scoring

import (
	"fmt"
	"math"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

const (
	// minProportionSample é a amostra total mínima para o teste de proporções
	minProportionSample = 100
	significanceLevel   = 0.05
)

// ProportionTest compara duas taxas de sucesso (ex.: conversões/cliques) com um teste z
// de duas proporções com erro padrão combinado, bicaudal.
func ProportionTest(trialsA, successesA, trialsB, successesB int) domain.ConfidenceResult {
	n := trialsA + trialsB

	if n < minProportionSample {
		minSample := minProportionSample
		return domain.ConfidenceResult{
			IsSignificant:   false,
			Level:           domain.ConfidenceLow,
			Score:           30 * float64(max(n, 0)) / minProportionSample,
			SampleSize:      n,
			MinSampleNeeded: &minSample,
			Factors: []string{
				fmt.Sprintf("Amostra insuficiente: %d de %d necessários", n, minProportionSample),
			},
		}
	}

	z := proportionZScore(trialsA, successesA, trialsB, successesB)
	p := twoTailedPValue(z)

	result := domain.ConfidenceResult{
		IsSignificant: p < significanceLevel,
		SampleSize:    n,
		PValue:        &p,
		Factors: []string{
			fmt.Sprintf("z-score: %.2f", z),
			fmt.Sprintf("p-valor: %.4f", p),
			fmt.Sprintf("amostra: %d", n),
		},
	}

	switch {
	case p < 0.01 && n >= 500:
		result.Level = domain.ConfidenceHigh
		result.Score = 90 + math.Min(10, float64(n-500)/100)
	case p < 0.05 && n >= 200:
		result.Level = domain.ConfidenceMedium
		result.Score = 60 + math.Min(25, float64(n-200)/20)
	case p < 0.10:
		result.Level = domain.ConfidenceLow
		result.Score = 40
	default:
		result.Level = domain.ConfidenceLow
		result.Score = 30
	}

	return result
}

func proportionZScore(trialsA, successesA, trialsB, successesB int) float64 {
	if trialsA <= 0 || trialsB <= 0 {
		return 0
	}

	pA := float64(successesA) / float64(trialsA)
	pB := float64(successesB) / float64(trialsB)
	pooled := float64(successesA+successesB) / float64(trialsA+trialsB)

	se := math.Sqrt(pooled * (1 - pooled) * (1/float64(trialsA) + 1/float64(trialsB)))
	if se == 0 || math.IsNaN(se) {
		return 0
	}

	return domain.Finite((pB - pA) / se)
}

// twoTailedPValue retorna P(|Z| > |z|) para a normal padrão
func twoTailedPValue(z float64) float64 {
	cdf := 0.5 * (1 + erf(math.Abs(z)/math.Sqrt2))
	return math.Max(0, math.Min(1, 2*(1-cdf)))
}

// erf aproxima a função erro (Abramowitz & Stegun 7.1.26)
func erf(x float64) float64 {
	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	sign := 1.0
	if x < 0 {
		sign = -1
	}
	x = math.Abs(x)

	t := 1 / (1 + p*x)
	y := 1 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)

	return sign * y
}
