package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-sync-service/internal/mocks"
	"github.com/jsamuelsen/quote-sync-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newChecker(t *testing.T, name string, err error) *mocks.MockHealthChecker {
	t.Helper()

	checker := mocks.NewMockHealthChecker(t)
	checker.EXPECT().Name().Return(name).Maybe()
	checker.EXPECT().Check(mock.Anything).Return(err).Maybe()

	return checker
}

func serveHealth(t *testing.T, h *HealthHandler, path string) *httptest.ResponseRecorder {
	t.Helper()

	engine := gin.New()
	h.RegisterHealthRoutes(engine.Group("/-"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.0.0", "abc123", "2026-01-15T10:00:00Z")

	assert.Equal(t, "1.0.0", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, "2026-01-15T10:00:00Z", bi.BuildTime)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestHealthHandler_Liveness(t *testing.T) {
	w := serveHealth(t, NewHealthHandler(ports.NewHealthRegistry(), BuildInfo{}, nil), "/-/live")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp livenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		register   func(t *testing.T, r *ports.DefaultHealthRegistry)
		wantCode   int
		wantStatus string
	}{
		{
			name: "all healthy",
			register: func(t *testing.T, r *ports.DefaultHealthRegistry) {
				require.NoError(t, r.Register(newChecker(t, "quote-store", nil)))
				require.NoError(t, r.RegisterOptional(newChecker(t, "remote-quotes", nil)))
			},
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
		{
			name: "remote down is degraded",
			register: func(t *testing.T, r *ports.DefaultHealthRegistry) {
				require.NoError(t, r.Register(newChecker(t, "quote-store", nil)))
				require.NoError(t, r.RegisterOptional(newChecker(t, "remote-quotes", errors.New("circuit breaker open"))))
			},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
		},
		{
			name: "store down is unhealthy",
			register: func(t *testing.T, r *ports.DefaultHealthRegistry) {
				require.NoError(t, r.Register(newChecker(t, "quote-store", errors.New("database is closed"))))
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := ports.NewHealthRegistry()
			tt.register(t, registry)

			w := serveHealth(t, NewHealthHandler(registry, BuildInfo{}, nil), "/-/ready")

			assert.Equal(t, tt.wantCode, w.Code)

			var resp readinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}
}

func TestHealthHandler_BuildInfo(t *testing.T) {
	bi := NewBuildInfo("2.0.0", "def456", "now")

	w := serveHealth(t, NewHealthHandler(ports.NewHealthRegistry(), bi, nil), "/-/build")

	var got BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, bi, got)
}

func TestHealthHandler_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "quote_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	w := serveHealth(t, NewHealthHandler(ports.NewHealthRegistry(), BuildInfo{}, reg), "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quote_test_total 1")
}
