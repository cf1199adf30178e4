package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-advisor-api/pkg/apiErrors"
)

const healthcheckTimeout = 2 * time.Second

// Pinger verifica se uma dependência está respondendo
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler responde com o horário atual; com ?deep=true também testa o banco de dados
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if db != nil && r.URL.Query().Get("deep") == "true" {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logrus.WithError(err).Warn("healthcheck: database ping failed")
				apiErrors.WriteError(w, apiErrors.ErrServiceUnavailable, "Banco de dados indisponível", nil)
				return
			}
		}

		if _, err := w.Write([]byte(time.Now().String())); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
