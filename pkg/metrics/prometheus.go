package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Recorder registra as métricas da simulação e da API no Prometheus
type Recorder struct {
	registry          *prometheus.Registry
	simulationsTotal  *prometheus.CounterVec
	simulationLatency prometheus.Histogram
	simulatedDays     prometheus.Histogram
	cacheLookups      *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
}

// New cria um Recorder com registro próprio
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		simulationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simulator_simulations_total",
				Help: "Total number of simulation runs by outcome",
			},
			[]string{"outcome"},
		),
		simulationLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "simulator_simulation_duration_seconds",
				Help:    "Duration of a full simulation run in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		simulatedDays: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "simulator_simulated_days",
				Help:    "Number of days covered by each simulation",
				Buckets: []float64{7, 30, 90, 365, 1095, 3650, 36525},
			},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simulator_cache_lookups_total",
				Help: "Simulation result cache lookups by result",
			},
			[]string{"result"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simulator_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "simulator_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	r.registry.MustRegister(
		r.simulationsTotal,
		r.simulationLatency,
		r.simulatedDays,
		r.cacheLookups,
		r.httpRequests,
		r.httpLatency,
		collectors.NewGoCollector(),
	)

	return r
}

// Registry expõe o registro para o handler /metrics
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSimulation registra uma execução da simulação
func (r *Recorder) ObserveSimulation(outcome string, days int, duration time.Duration) {
	r.simulationsTotal.WithLabelValues(outcome).Inc()
	r.simulationLatency.Observe(duration.Seconds())
	if days > 0 {
		r.simulatedDays.Observe(float64(days))
	}
}

// RecordCacheLookup registra um acerto ou falha no cache de resultados
func (r *Recorder) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest registra uma requisição HTTP finalizada
func (r *Recorder) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}
