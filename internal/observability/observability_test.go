package observability

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jask/jaskcalc/internal/config"
)

func TestNewLoggerDisabled(t *testing.T) {
	logger, err := NewLogger(config.LogConfig{Path: "", Level: "info"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("dropped")
}

func TestNewLoggerWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jaskcalc.log")
	logger, err := NewLogger(config.LogConfig{Path: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("key pressed", zap.String("action", "digit_5"))
	SyncLogger(logger)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	require.NotEmpty(t, line)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	require.Equal(t, "key pressed", entry["msg"])
	require.Equal(t, "digit_5", entry["action"])
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := NewLogger(config.LogConfig{Path: filepath.Join(t.TempDir(), "x.log"), Level: "chatty"})
	require.ErrorContains(t, err, "log level")
}

func TestNewSessionIDIsUnique(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	require.Len(t, a, 36)
	require.NotEqual(t, a, b)
}

func TestMetricsTotals(t *testing.T) {
	ctx := context.Background()
	provider, reader := NewSessionMeterProvider()
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)

	m.RecordPress(ctx, "digit_5")
	m.RecordPress(ctx, "digit_5")
	m.RecordPress(ctx, "equals")
	m.RecordError(ctx, ErrorKindDivideByZero)
	m.RecordResult(ctx)

	totals, err := Totals(ctx, reader)
	require.NoError(t, err)
	require.Equal(t, int64(3), totals[MetricPresses])
	require.Equal(t, int64(1), totals[MetricErrors])
	require.Equal(t, int64(1), totals[MetricResults])

	byAction, err := CountsByAttribute(ctx, reader, MetricPresses, "action")
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"digit_5": 2, "equals": 1}, byAction)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordPress(context.Background(), "add")
	m.RecordError(context.Background(), ErrorKindNonFinite)
	m.RecordResult(context.Background())
}
