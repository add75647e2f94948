package server

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/BaSui01/roundtable/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startMetrics(t *testing.T) (*Manager, *metrics.Collector) {
	t.Helper()
	c := metrics.NewCollector("roundtable", zap.NewNop())
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	m := NewManager(MetricsMux(c.Handler()), cfg, zap.NewNop())
	require.NoError(t, m.Start())
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })
	return m, c
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Addr)
	assert.Positive(t, cfg.ReadHeaderTimeout)
	assert.Positive(t, cfg.ShutdownTimeout)
}

func TestManager_ServesMetricsAndHealth(t *testing.T) {
	m, c := startMetrics(t)
	c.ObserveTurn("conversation", "participant")

	assert.True(t, m.IsRunning())
	assert.NotEqual(t, "127.0.0.1:0", m.Addr())

	code, body := get(t, "http://"+m.Addr()+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	code, body = get(t, "http://"+m.Addr()+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `roundtable_dialogue_turns_total{role="participant",scenario="conversation"} 1`)
}

func TestManager_StartTwice(t *testing.T) {
	m, _ := startMetrics(t)
	assert.ErrorIs(t, m.Start(), ErrAlreadyStarted)
}

func TestManager_ShutdownIdempotent(t *testing.T) {
	m, _ := startMetrics(t)
	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))
	assert.False(t, m.IsRunning())
	assert.ErrorIs(t, m.Start(), ErrClosed)
}

func TestManager_ShutdownBeforeStart(t *testing.T) {
	m := NewManager(http.NewServeMux(), DefaultConfig(), nil)
	assert.NoError(t, m.Shutdown(context.Background()))
	assert.False(t, m.IsRunning())
}

func TestManager_ListenFailure(t *testing.T) {
	m1, _ := startMetrics(t)
	cfg := DefaultConfig()
	cfg.Addr = m1.Addr()
	m2 := NewManager(http.NewServeMux(), cfg, zap.NewNop())
	err := m2.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}
