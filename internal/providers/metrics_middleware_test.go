package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                    { m.hits++ }
func (m *mockMetrics) IncCacheMisses()                                  { m.misses++ }
func (m *mockMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *mockMetrics) IncStoreWrites(_ string)                          {}
func (m *mockMetrics) IncStoreFallbacks(_ string)                       {}
func (m *mockMetrics) IncNotifications(_ string)                        {}
func (m *mockMetrics) IncInvalidations(_ string)                        {}
func (m *mockMetrics) SetRecordsTotal(_ string, _ int)                  {}

type middlewareTestLogger struct {
	cacheTestLogger
	debugTypes []TypeEnum
}

func (m *middlewareTestLogger) Debugf(t TypeEnum, _ string, _ ...interface{}) {
	m.debugTypes = append(m.debugTypes, t)
}

func TestMetricsMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := MetricsMiddleware(metrics, nil, handler)

	req := httptest.NewRequest(http.MethodPost, "/postings", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/postings", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
}

func TestMetricsMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := MetricsMiddleware(metrics, nil, handler)

	req := httptest.NewRequest(http.MethodGet, "/modules", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
}

func TestMetricsMiddleware_LogsByMethodCategory(t *testing.T) {
	logger := &middlewareTestLogger{}
	mw := MetricsMiddleware(&mockMetrics{}, logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/postings", nil))
	mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/postings?id=x", nil))

	assert.Equal(t, []TypeEnum{TypeGet, TypePost}, logger.debugTypes)
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, rr, sw.Unwrap())
}
