// Package anomaly aplica as regras fixas de alerta sobre as janelas de 7 e 30 dias.
package anomaly

import (
	"fmt"

	"github.com/vfg2006/traffic-advisor-api/internal/domain"
)

const (
	roasCrashRatio  = 0.5
	ctrDeclineRatio = 0.7
	cpaSpikeRatio   = 1.5
	spendDropRatio  = 0.5
	minDailySpend   = 10.0
)

// Detect avalia as regras na ordem: queda de ROAS, queda de CTR, alta de CPA e queda de investimento.
// As regras são independentes e usam desigualdade estrita.
func Detect(last7, last30 domain.Window) []domain.Alert {
	alerts := make([]domain.Alert, 0, 4)

	roas7, roas30 := last7.Metrics.ROAS(), last30.Metrics.ROAS()
	if roas7 < roas30*roasCrashRatio {
		alerts = append(alerts, domain.Alert{
			Metric:   "roas",
			Period:   domain.Window7d,
			Severity: domain.SeverityCritical,
			Message: fmt.Sprintf(
				"ROAS dos últimos 7 dias (%.2fx) caiu para menos da metade da média de 30 dias (%.2fx)",
				roas7, roas30,
			),
		})
	}

	ctr7, ctr30 := last7.Metrics.CTR(), last30.Metrics.CTR()
	if ctr7 < ctr30*ctrDeclineRatio {
		alerts = append(alerts, domain.Alert{
			Metric:   "ctr",
			Period:   domain.Window7d,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf(
				"CTR dos últimos 7 dias (%.2f%%) está mais de 30%% abaixo da média de 30 dias (%.2f%%)",
				ctr7, ctr30,
			),
		})
	}

	cpa7, cpa30 := last7.Metrics.CPA(), last30.Metrics.CPA()
	if cpa30 > 0 && cpa7 > cpa30*cpaSpikeRatio {
		alerts = append(alerts, domain.Alert{
			Metric:   "cpa",
			Period:   domain.Window7d,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf(
				"CPA dos últimos 7 dias (R$ %.2f) subiu mais de 50%% em relação à média de 30 dias (R$ %.2f)",
				cpa7, cpa30,
			),
		})
	}

	avg7, avg30 := last7.DailyAverageSpend(), last30.DailyAverageSpend()
	if avg30 >= minDailySpend && avg7 < avg30*spendDropRatio {
		alerts = append(alerts, domain.Alert{
			Metric:   "spend",
			Period:   domain.Window7d,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf(
				"Investimento diário dos últimos 7 dias (R$ %.2f) caiu para menos da metade da média de 30 dias (R$ %.2f)",
				avg7, avg30,
			),
		})
	}

	return alerts
}
