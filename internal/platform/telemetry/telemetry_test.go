package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	provider, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestStartSpan_Noop(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "sync")
	defer span.End()

	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsSampled())
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware("quote-sync-service")...)
	router.GET("/quotes", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quotes", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSyncMetrics_ObserveSync(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewSyncMetrics(reg)

	metrics.ObserveSync("conflicts", 2, 12, 150*time.Millisecond)
	metrics.ObserveSync("synced", 0, 10, 50*time.Millisecond)
	metrics.ObserveSync("failed", 0, -1, time.Second)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.runs.WithLabelValues("conflicts")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.runs.WithLabelValues("failed")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.conflicts), 0)
	assert.InDelta(t, 10, testutil.ToFloat64(metrics.quotes), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))
}

func TestSyncMetrics_ObserveSkipped(t *testing.T) {
	metrics := NewSyncMetrics(prometheus.NewRegistry())

	metrics.ObserveSkipped()
	metrics.ObserveSkipped()

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.runs.WithLabelValues("skipped")), 0)
}

func TestSyncMetrics_Nil(t *testing.T) {
	var metrics *SyncMetrics

	assert.NotPanics(t, func() {
		metrics.ObserveSync("synced", 0, 1, time.Millisecond)
		metrics.ObserveSkipped()
	})
}
