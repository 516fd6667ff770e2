package config

import (
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
	Simulation      Simulation      `mapstructure:",squash"`
	ForecastRefresh ForecastRefresh `mapstructure:",squash"`
	Cache           Cache           `mapstructure:",squash"`
	Metrics         Metrics         `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Simulation struct {
	MaxRangeDays     int    `mapstructure:"simulation_max_range_days"`
	DefaultStartDate string `mapstructure:"simulation_default_start_date"`
	DefaultEndDate   string `mapstructure:"simulation_default_end_date"`
}

// ForecastRefresh configura o job que recalcula a previsão com os parâmetros padrão
type ForecastRefresh struct {
	CronSchedule string `mapstructure:"forecast_refresh_cron"`
	HorizonDays  int    `mapstructure:"forecast_refresh_horizon_days"`
	Enabled      bool   `mapstructure:"forecast_refresh_enabled"`
}

type Cache struct {
	Enabled       bool          `mapstructure:"cache_enabled"`
	TTL           time.Duration `mapstructure:"cache_ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	KeyPrefix     string        `mapstructure:"cache_key_prefix"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"metrics_enabled"`
	Path    string `mapstructure:"metrics_path"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8050")

	viper.SetDefault("SIMULATION_MAX_RANGE_DAYS", 36525) // ~100 anos
	viper.SetDefault("SIMULATION_DEFAULT_START_DATE", "2023-01-01")
	viper.SetDefault("SIMULATION_DEFAULT_END_DATE", "2025-12-31")

	viper.SetDefault("FORECAST_REFRESH_CRON", "5 0 * * *") // Todos os dias às 00h05
	viper.SetDefault("FORECAST_REFRESH_HORIZON_DAYS", 365)
	viper.SetDefault("FORECAST_REFRESH_ENABLED", true)

	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("CACHE_TTL", "10m")
	viper.SetDefault("CACHE_KEY_PREFIX", "simulator")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("METRICS_PATH", "/metrics")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultDateRange devolve o período padrão do painel
func (c *Config) DefaultDateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, c.Simulation.DefaultStartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := time.Parse(time.DateOnly, c.Simulation.DefaultEndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
