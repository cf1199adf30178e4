package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-advisor-api/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-advisor-api/infrastructure/repository"
	"github.com/vfg2006/traffic-advisor-api/internal/api"
	"github.com/vfg2006/traffic-advisor-api/internal/config"
	"github.com/vfg2006/traffic-advisor-api/internal/scheduler"
	"github.com/vfg2006/traffic-advisor-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-advisor-api/pkg/middleware"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	marketingDataRepo := repository.NewMarketingDataRepository(pgConn)
	analysisReportRepo := repository.NewAnalysisReportRepository(pgConn)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	pipeline := analyzing.NewPipeline(
		analyzing.NewDefaultAnalyzers(marketingDataRepo, cfg.Analysis),
		cfg.Analysis.AnalyzerTimeout,
		analyzing.NewMetrics(registry),
	)
	analysisService := analyzing.NewService(pipeline, accountRepo, analysisReportRepo)

	analysisRefreshService := scheduler.NewAnalysisRefreshService(accountRepo, analysisService, cfg.AnalysisRefresh)
	if err := analysisRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização das análises")
	} else {
		logrus.Info("Agendador de atualização das análises iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		AnalysisService:        analysisService,
		AnalysisRefreshService: analysisRefreshService,
		TokenValidator:         middleware.NewTokenValidator(cfg.SecretKey),
		Database:               pgConn,
		Registry:               registry,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
