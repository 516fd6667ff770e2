package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/users-revenue-simulator/internal/api/handler/router"
	"github.com/vfg2006/users-revenue-simulator/pkg/apiErrors"
	"github.com/vfg2006/users-revenue-simulator/pkg/log"
)

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync() {
	f.triggered++
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"running": false, "triggered": f.triggered}
}

func TestRunCronJob(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name          string
		path          string
		wantStatus    int
		wantCode      string
		wantTriggered int
	}{
		{
			name:          "Dispara o recálculo da previsão",
			path:          "/v1/cron/forecast/run",
			wantStatus:    http.StatusAccepted,
			wantTriggered: 1,
		},
		{
			name:       "Tipo desconhecido",
			path:       "/v1/cron/meta/run",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeCronJob{}
			rt := router.New(router.WithRoutes(CronJobs(CronJobServices{CronJobTypeForecast: job})...))

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantTriggered, job.triggered)
			if tt.wantCode != "" {
				apiErr := decodeAPIError(t, rec)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				assert.Contains(t, apiErr.Message, CronJobTypeForecast)
			}
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	log.SetupTestLogger()

	job := &fakeCronJob{triggered: 2}
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{CronJobTypeForecast: job})...))

	req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body[CronJobTypeForecast]["triggered"])
}

func TestRouterFallbacks(t *testing.T) {
	rt := router.New(router.WithRoutes(Healthcheck()...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, decodeAPIError(t, rec).Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthcheck", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
