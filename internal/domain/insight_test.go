package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodMetrics_ZeroDenominators(t *testing.T) {
	m := PeriodMetrics{Revenue: 100, Clicks: 5, Conversions: 0}

	assert.Equal(t, 0.0, m.ROAS())
	assert.Equal(t, 0.0, m.CTR())
	assert.Equal(t, 0.0, m.CPC())
	assert.Equal(t, 0.0, m.CPA())
	assert.Equal(t, 0.0, PeriodMetrics{}.ROAS())
}

func TestPeriodMetrics_MarshalJSON(t *testing.T) {
	m := PeriodMetrics{Spend: 100, Revenue: 250, Clicks: 20, Impressions: 1000, Conversions: 4}

	body, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]float64
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, 2.5, decoded["roas"])
	assert.InDelta(t, 2.0, decoded["ctr"], 1e-9)
	assert.Equal(t, 5.0, decoded["cpc"])
	assert.Equal(t, 25.0, decoded["cpa"])
}

func TestROASChange(t *testing.T) {
	older := PeriodMetrics{Spend: 100, Revenue: 200}
	newer := PeriodMetrics{Spend: 100, Revenue: 100}

	assert.Equal(t, -50.0, ROASChange(older, newer))
	assert.Equal(t, 0.0, ROASChange(PeriodMetrics{}, newer))
}

func TestAction_MarshalJSONCarriesType(t *testing.T) {
	rec := ActionableRecommendation{
		ID:     "rec_1",
		Action: ProductAction{ProductID: "p1", ProductName: "Óculos", Operation: ProductOperationCreateCampaign, SuggestedDailyBudget: 10},
	}

	body, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded struct {
		Action map[string]any `json:"action"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, string(ActionProduct), decoded.Action["type"])
	assert.Equal(t, "p1", decoded.Action["product_id"])
	assert.Equal(t, 10.0, decoded.Action["suggested_daily_budget"])
}

func TestRawSuggestion(t *testing.T) {
	text := TextSuggestion("🚨 ROAS em queda")
	assert.False(t, text.IsStructured())
	assert.Equal(t, "🚨 ROAS em queda", text.Text)

	structured := StructuredSuggestion(Suggestion{Text: "Aumente o orçamento", Priority: 2})
	assert.True(t, structured.IsStructured())
	assert.Equal(t, "Aumente o orçamento", structured.Text)
	assert.Equal(t, 2, structured.Structured.Priority)
}

func TestProduct_Margin(t *testing.T) {
	assert.Equal(t, 0.0, Product{Price: 50}.Margin())
	assert.Equal(t, 0.4, Product{Price: 100, Cost: 60}.Margin())
}
