package middleware

import (
	"net/http"
	"time"
)

// HTTPMetricsRecorder recebe a contagem e a latência das requisições
type HTTPMetricsRecorder interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Metrics instrumenta uma rota. Recebe o padrão da rota para manter a
// cardinalidade do label path limitada.
func Metrics(recorder HTTPMetricsRecorder) func(pattern string) func(http.Handler) http.Handler {
	return func(pattern string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if recorder == nil {
					next.ServeHTTP(w, r)
					return
				}

				srw := newStatusResponseWriter(w)
				startTime := time.Now()

				next.ServeHTTP(srw, r)

				recorder.ObserveHTTPRequest(r.Method, pattern, srw.statusCode, time.Since(startTime))
			})
		}
	}
}
