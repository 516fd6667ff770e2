package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/users-revenue-simulator/internal/api/handler"
	"github.com/vfg2006/users-revenue-simulator/internal/api/handler/router"
	"github.com/vfg2006/users-revenue-simulator/internal/config"
	"github.com/vfg2006/users-revenue-simulator/internal/scheduler"
	"github.com/vfg2006/users-revenue-simulator/internal/usecases/simulating"
	"github.com/vfg2006/users-revenue-simulator/pkg/metrics"
	"github.com/vfg2006/users-revenue-simulator/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	simulationService simulating.Simulator,
	forecastRefreshService *scheduler.ForecastRefreshService,
	recorder *metrics.Recorder,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		handler.CronJobTypeForecast: forecastRefreshService,
	}

	configs := []router.ConfigRouter{}

	var metricsHandler http.Handler
	if config.Metrics.Enabled && recorder != nil {
		configs = append(configs, router.WithInstrumentation(middleware.Metrics(recorder)))
		metricsHandler = promhttp.HandlerFor(recorder.Registry(), promhttp.HandlerOpts{})
	}

	configs = append(configs,
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(config.Metrics.Path, metricsHandler)...),
		router.WithRoutes(handler.Simulations(simulationService)...),
		router.WithRoutes(handler.Forecast(forecastRefreshService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Handler devolve a cadeia de middlewares e rotas, usada nos testes
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}
