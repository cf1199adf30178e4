package domain

import (
	"encoding/json"
)

const (
	PriorityUrgent    = 1
	PriorityImportant = 2
	PriorityInfo      = 3
)

const (
	CategoryOptimization = "optimization"
	CategoryBudget       = "budget"
	CategoryAlert        = "alert"
	CategoryProduct      = "product"
	CategoryStrategy     = "strategy"
)

// Suggestion é o formato legado de sugestão, possivelmente apenas texto livre
type Suggestion struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Source      string   `json:"source"`
	Priority    int      `json:"priority"`
	Category    string   `json:"category"`
	Confidence  int      `json:"confidence"`
	Explanation string   `json:"explanation,omitempty"`
	DataPoints  []string `json:"data_points,omitempty"`
	Platform    string   `json:"platform,omitempty"`
}

// RawSuggestion é a saída bruta de um analisador: texto livre ou sugestão parcialmente estruturada.
// Use TextSuggestion ou StructuredSuggestion para construir.
type RawSuggestion struct {
	Text       string
	Structured *Suggestion
}

func TextSuggestion(text string) RawSuggestion {
	return RawSuggestion{Text: text}
}

func StructuredSuggestion(s Suggestion) RawSuggestion {
	return RawSuggestion{Text: s.Text, Structured: &s}
}

// IsStructured indica se a sugestão já veio com campos estruturados
func (r RawSuggestion) IsStructured() bool {
	return r.Structured != nil
}

// ActionableRecommendation é uma recomendação estruturada com uma ação tipada
type ActionableRecommendation struct {
	ID              string   `json:"id"`
	Priority        int      `json:"priority"`
	Category        string   `json:"category"`
	Headline        string   `json:"headline"`
	Explanation     string   `json:"explanation"`
	DataPoints      []string `json:"data_points"`
	Action          Action   `json:"action"`
	Confidence      int      `json:"confidence"`
	EstimatedImpact string   `json:"estimated_impact,omitempty"`
	Platform        string   `json:"platform"`
	Source          string   `json:"source"`
	Tags            []string `json:"tags"`
}

type ActionType string

const (
	ActionBudgetChange ActionType = "budget_change"
	ActionProduct      ActionType = "product_action"
	ActionStrategy     ActionType = "strategy"
)

// Action é a carga tipada de uma recomendação. Implementada apenas pelos tipos deste pacote.
type Action interface {
	ActionType() ActionType
	isAction()
}

// BudgetChangeAction altera o orçamento de uma plataforma, opcionalmente movendo verba para outra
type BudgetChangeAction struct {
	Platform       string  `json:"platform"`
	AdAccountID    string  `json:"ad_account_id,omitempty"`
	ChangePercent  float64 `json:"change_percent"`
	Amount         float64 `json:"amount"`
	TargetPlatform string  `json:"target_platform,omitempty"`
}

func (BudgetChangeAction) ActionType() ActionType { return ActionBudgetChange }
func (BudgetChangeAction) isAction()              {}

func (a BudgetChangeAction) MarshalJSON() ([]byte, error) {
	type alias BudgetChangeAction
	return marshalAction(a.ActionType(), alias(a))
}

const (
	ProductOperationCreateCampaign = "create_campaign"
	ProductOperationHighlight      = "highlight_margin"
)

// ProductAction sugere uma ação de anúncio para um produto
type ProductAction struct {
	ProductID            string  `json:"product_id"`
	ProductName          string  `json:"product_name"`
	SKU                  string  `json:"sku,omitempty"`
	Operation            string  `json:"operation"`
	SuggestedDailyBudget float64 `json:"suggested_daily_budget"`
}

func (ProductAction) ActionType() ActionType { return ActionProduct }
func (ProductAction) isAction()              {}

func (a ProductAction) MarshalJSON() ([]byte, error) {
	type alias ProductAction
	return marshalAction(a.ActionType(), alias(a))
}

// StrategyAction descreve uma mudança de estratégia sem valor monetário fixo
type StrategyAction struct {
	Strategy  string   `json:"strategy"`
	Steps     []string `json:"steps"`
	StartDate string   `json:"start_date,omitempty"`
}

func (StrategyAction) ActionType() ActionType { return ActionStrategy }
func (StrategyAction) isAction()              {}

func (a StrategyAction) MarshalJSON() ([]byte, error) {
	type alias StrategyAction
	return marshalAction(a.ActionType(), alias(a))
}

func marshalAction(kind ActionType, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}

	typ, err := json.Marshal(kind)
	if err != nil {
		return nil, err
	}
	fields["type"] = typ

	return json.Marshal(fields)
}
