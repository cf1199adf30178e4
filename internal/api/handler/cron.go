package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-advisor-api/pkg/apiErrors"
)

// Tipos de cron job aceitos em /v1/cron/:type/run
const (
	CronJobTypeAnalysis = "analysis"
	CronJobTypeAll      = "all"
)

// CronJob é um agendador que pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	AnalysisRefreshService CronJob
}

func (s CronJobServices) byType() map[string]CronJob {
	jobs := make(map[string]CronJob)
	if s.AnalysisRefreshService != nil {
		jobs[CronJobTypeAnalysis] = s.AnalysisRefreshService
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.byType()

		switch cronType {
		case CronJobTypeAll:
			for _, job := range jobs {
				job.TriggerManualSync()
			}
		case CronJobTypeAnalysis:
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrServiceUnavailable, "Serviço de atualização das análises não disponível", nil)
				return
			}
			job.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: analysis, all", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any)
		for name, job := range services.byType() {
			status[name] = job.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
