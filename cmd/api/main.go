package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/users-revenue-simulator/infrastructure/cache"
	"github.com/vfg2006/users-revenue-simulator/internal/api"
	"github.com/vfg2006/users-revenue-simulator/internal/config"
	"github.com/vfg2006/users-revenue-simulator/internal/scheduler"
	"github.com/vfg2006/users-revenue-simulator/internal/usecases/simulating"
	"github.com/vfg2006/users-revenue-simulator/pkg/metrics"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := metrics.New()

	simulationService := simulating.NewService(cfg).WithMetrics(recorder)

	if cfg.Cache.Enabled {
		resultCache, redisClient, err := cache.NewRedisResultCache(ctx, cfg.Cache)
		if err != nil {
			logrus.WithError(err).Warn("Redis indisponível, simulações serão calculadas sem cache")
		} else {
			defer redisClient.Close()
			simulationService = simulationService.WithCache(resultCache, cfg.Cache.TTL)
			logrus.WithField("addr", cfg.Cache.RedisAddr).Info("Cache de simulações no Redis habilitado")
		}
	}

	forecastRefreshService := scheduler.NewForecastRefreshService(simulationService, cfg)

	if err := forecastRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de previsão")
	} else {
		logrus.Info("Agendador de previsão iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		simulationService,
		forecastRefreshService,
		recorder,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
