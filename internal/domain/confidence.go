package domain

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// ConfidenceResult descreve o quão confiável é uma mudança detectada ou uma recomendação
type ConfidenceResult struct {
	IsSignificant   bool            `json:"is_significant"`
	Level           ConfidenceLevel `json:"confidence"`
	Score           float64         `json:"score"`
	SampleSize      int             `json:"sample_size"`
	PValue          *float64        `json:"p_value,omitempty"`
	MinSampleNeeded *int            `json:"min_sample_needed,omitempty"`
	Factors         []string        `json:"factors"`
}

type Direction string

const (
	DirectionAbove  Direction = "above"
	DirectionBelow  Direction = "below"
	DirectionNormal Direction = "normal"
)

// AnomalyResult é o resultado do z-score de um valor contra seu histórico
type AnomalyResult struct {
	ZScore    float64   `json:"z_score"`
	IsAnomaly bool      `json:"is_anomaly"`
	Direction Direction `json:"direction"`
}

type Trajectory string

const (
	TrajectoryIncreasing Trajectory = "increasing"
	TrajectoryStable     Trajectory = "stable"
	TrajectoryDecreasing Trajectory = "decreasing"
)

type PerformanceTrend string

const (
	PerformanceImproving PerformanceTrend = "improving"
	PerformanceStable    PerformanceTrend = "stable"
	PerformanceDeclining PerformanceTrend = "declining"
)

// PeriodChange é a variação percentual de ROAS entre dois períodos e sua confiança
type PeriodChange struct {
	PercentChange float64          `json:"percent_change"`
	Confidence    ConfidenceResult `json:"confidence"`
}

type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
)

// Alert é um alerta de anomalia gerado pela comparação 7d x 30d
type Alert struct {
	Metric   string        `json:"metric"`
	Period   string        `json:"period"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}
