package domain

import (
	"encoding/json"
	"math"
)

// PeriodMetrics agrega os contadores brutos de um período. As métricas
// derivadas (ROAS, CTR, CPC, CPA) são sempre recalculadas a partir dos contadores.
type PeriodMetrics struct {
	Spend       float64
	Revenue     float64
	Clicks      float64
	Impressions float64
	Conversions float64
}

// ROAS retorna receita ÷ investimento
func (m PeriodMetrics) ROAS() float64 {
	return safeDivide(m.Revenue, m.Spend)
}

// CTR retorna cliques ÷ impressões × 100
func (m PeriodMetrics) CTR() float64 {
	return safeDivide(m.Clicks, m.Impressions) * 100
}

// CPC retorna investimento ÷ cliques
func (m PeriodMetrics) CPC() float64 {
	return safeDivide(m.Spend, m.Clicks)
}

// CPA retorna investimento ÷ conversões
func (m PeriodMetrics) CPA() float64 {
	return safeDivide(m.Spend, m.Conversions)
}

// IsEmpty indica se nenhum contador foi registrado no período
func (m PeriodMetrics) IsEmpty() bool {
	return m.Spend == 0 && m.Revenue == 0 && m.Clicks == 0 && m.Impressions == 0 && m.Conversions == 0
}

func (m PeriodMetrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Spend       float64 `json:"spend"`
		Revenue     float64 `json:"revenue"`
		Clicks      float64 `json:"clicks"`
		Impressions float64 `json:"impressions"`
		Conversions float64 `json:"conversions"`
		ROAS        float64 `json:"roas"`
		CTR         float64 `json:"ctr"`
		CPC         float64 `json:"cpc"`
		CPA         float64 `json:"cpa"`
	}{
		Spend:       m.Spend,
		Revenue:     m.Revenue,
		Clicks:      m.Clicks,
		Impressions: m.Impressions,
		Conversions: m.Conversions,
		ROAS:        m.ROAS(),
		CTR:         m.CTR(),
		CPC:         m.CPC(),
		CPA:         m.CPA(),
	})
}

// ROASChange retorna a variação percentual do ROAS entre dois períodos (0 se o período antigo não tem ROAS)
func ROASChange(older, newer PeriodMetrics) float64 {
	base := older.ROAS()
	if base == 0 {
		return 0
	}

	return Finite((newer.ROAS() - base) / base * 100)
}

// Window representa as métricas de uma janela móvel (7d, 30d, 90d)
type Window struct {
	Label   string        `json:"label"`
	Days    int           `json:"days"`
	Metrics PeriodMetrics `json:"metrics"`
}

// DailyAverageSpend retorna o investimento médio diário da janela
func (w Window) DailyAverageSpend() float64 {
	return safeDivide(w.Metrics.Spend, float64(w.Days))
}

// WindowSet agrupa as três janelas usadas na análise multi-período
type WindowSet struct {
	Last7  Window `json:"last_7d"`
	Last30 Window `json:"last_30d"`
	Last90 Window `json:"last_90d"`
}

const (
	Window7d  = "7d"
	Window30d = "30d"
	Window90d = "90d"
)

// Finite converte valores não finitos em zero
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return Finite(numerator / denominator)
}
