package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Analysis        Analysis        `mapstructure:",squash"`
	AnalysisRefresh AnalysisRefresh `mapstructure:",squash"`
	SecretKey       string          `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Analysis agrupa os parâmetros do pipeline de análise
type Analysis struct {
	AnalyzerTimeout time.Duration `mapstructure:"analysis_analyzer_timeout"`
	OrderStatuses   []string      `mapstructure:"analysis_order_statuses"`
	TargetROAS      float64       `mapstructure:"analysis_target_roas"`
	LookbackDays    int           `mapstructure:"analysis_lookback_days"`
}

// AnalysisRefresh configura a cron que recalcula e salva a análise de todas as contas ativas
type AnalysisRefresh struct {
	CronSchedule      string `mapstructure:"analysis_refresh_cron"`
	MaxConcurrentJobs int    `mapstructure:"analysis_refresh_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"analysis_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/traffic")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("ANALYSIS_ANALYZER_TIMEOUT", "30s") // 0 desabilita o timeout por analisador
	viper.SetDefault("ANALYSIS_ORDER_STATUSES", "completed,processing")
	viper.SetDefault("ANALYSIS_TARGET_ROAS", 3.0)
	viper.SetDefault("ANALYSIS_LOOKBACK_DAYS", 90)

	viper.SetDefault("ANALYSIS_REFRESH_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("ANALYSIS_REFRESH_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("ANALYSIS_REFRESH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	if err := decode(config); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func decode(config *Config) error {
	return viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
