package analyzing

import (
	"github.com/vfg2006/traffic-advisor-api/internal/analyzers"
	"github.com/vfg2006/traffic-advisor-api/internal/config"
)

// NewDefaultAnalyzers monta os três analisadores com os parâmetros da configuração
func NewDefaultAnalyzers(reader analyzers.DataReader, cfg config.Analysis) []Analyzer {
	opts := analyzers.Options{
		TargetROAS:    cfg.TargetROAS,
		OrderStatuses: cfg.OrderStatuses,
		LookbackDays:  cfg.LookbackDays,
	}

	return []Analyzer{
		analyzers.NewMultiPeriodAnalyzer(reader, opts),
		analyzers.NewProductOpportunityAnalyzer(reader, opts),
		analyzers.NewStrategicAdvisor(reader, opts),
	}
}
