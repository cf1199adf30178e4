package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-advisor-api/internal/api/handler"
	"github.com/vfg2006/traffic-advisor-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-advisor-api/internal/config"
	"github.com/vfg2006/traffic-advisor-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-advisor-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Dependencies reúne o que o servidor expõe pelas rotas
type Dependencies struct {
	AnalysisService        analyzing.AnalysisService
	AnalysisRefreshService handler.CronJob
	TokenValidator         middleware.TokenValidator
	Database               handler.Pinger
	Registry               *prometheus.Registry
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	if deps.AnalysisService == nil {
		return nil, errors.New("analysis service is required")
	}
	if deps.TokenValidator == nil {
		return nil, errors.New("token validator is required")
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	cronServices := handler.CronJobServices{
		AnalysisRefreshService: deps.AnalysisRefreshService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.Database)...),
		router.WithRoutes(handler.Metrics(deps.Registry)...),
		router.WithRoutes(handler.Analysis(deps.AnalysisService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.NewHTTPMetrics(deps.Registry).Middleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(deps.TokenValidator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler retorna a cadeia HTTP completa
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run inicia o servidor e aguarda um sinal de término ou o cancelamento do contexto
func (s Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-serverErr:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
