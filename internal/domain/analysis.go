package domain

import (
	"encoding/json"
	"time"
)

// AnalyzerOutput é o retorno de um analisador individual
type AnalyzerOutput struct {
	HasData                   bool
	Suggestions               []RawSuggestion
	ActionableRecommendations []ActionableRecommendation
	Summary                   string
}

// NoData representa a saída de um analisador sem dados para a conta
func NoData() AnalyzerOutput {
	return AnalyzerOutput{HasData: false}
}

type AnalyzerMetadata struct {
	AnalyzedAt time.Time `json:"analyzed_at"`
	DurationMs int64     `json:"duration_ms"`
	Source     string    `json:"source"`
	AccountID  string    `json:"account_id"`
}

// AnalyzerReport é o resultado de um analisador no mapa de resultados da análise unificada
type AnalyzerReport struct {
	HasData  bool             `json:"has_data"`
	Summary  string           `json:"summary,omitempty"`
	Metadata AnalyzerMetadata `json:"metadata"`
}

type AnalysisSummary struct {
	Urgent          int   `json:"urgent"`
	Important       int   `json:"important"`
	Info            int   `json:"info"`
	TopConfidence   int   `json:"top_confidence"`
	AnalyzersRun    int   `json:"analyzers_run"`
	TotalDurationMs int64 `json:"total_duration_ms"`
}

type AnalysisMetadata struct {
	AccountID     string    `json:"account_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// UnifiedAnalysis é o resultado consolidado de todos os analisadores para uma conta
type UnifiedAnalysis struct {
	HasData                   bool                       `json:"has_data"`
	Suggestions               []Suggestion               `json:"suggestions"`
	ActionableRecommendations []ActionableRecommendation `json:"actionable_recommendations"`
	Results                   map[string]AnalyzerReport  `json:"results"`
	Summary                   AnalysisSummary            `json:"summary"`
	Metadata                  AnalysisMetadata           `json:"metadata"`
}

// AnalysisReportEntry representa o último snapshot de análise armazenado para uma conta.
// Report guarda o UnifiedAnalysis já serializado.
type AnalysisReportEntry struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	HasData   bool            `json:"has_data"`
	Report    json.RawMessage `json:"report"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
