package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/doublemarked/unload-test/internal/eventlog"
	pebblestore "github.com/doublemarked/unload-test/internal/storage/pebble"
)

var (
	_ eventlog.Observer       = (*Provider)(nil)
	_ pebblestore.MetricsHook = (*Provider)(nil)
)

func collect(t *testing.T, r *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, r.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, agg metricdata.Aggregation) int64 {
	t.Helper()
	s, ok := agg.(metricdata.Sum[int64])
	require.True(t, ok, "not an int64 sum: %T", agg)
	var total int64
	for _, dp := range s.DataPoints {
		total += dp.Value
	}
	return total
}

func TestEventLogInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	p, err := NewWithReader(reader)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	p.AppendCommitted(1)
	p.AppendCommitted(2)
	p.AppendConflict(1)
	p.AppendExhausted()
	p.Evicted(3)

	got := collect(t, reader)
	require.Equal(t, int64(2), sumOf(t, got["unload.eventlog.appends"]))
	require.Equal(t, int64(1), sumOf(t, got["unload.eventlog.conflicts"]))
	require.Equal(t, int64(1), sumOf(t, got["unload.eventlog.dropped"]))
	require.Equal(t, int64(3), sumOf(t, got["unload.eventlog.evicted"]))
}

func TestStorageAndHTTPInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	p, err := NewWithReader(reader)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	p.ObserveRead(2*time.Millisecond, 100)
	p.ObserveCommit(5*time.Millisecond, 40)
	p.ObserveRequest("GET", "/events", 200, time.Millisecond)

	got := collect(t, reader)
	require.Equal(t, int64(100), sumOf(t, got["unload.storage.read.bytes"]))
	require.Equal(t, int64(40), sumOf(t, got["unload.storage.commit.bytes"]))
	require.Equal(t, int64(1), sumOf(t, got["unload.http.requests"]))

	h, ok := got["unload.http.duration"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, h.DataPoints, 1)
	require.Equal(t, uint64(1), h.DataPoints[0].Count)
}

func TestNewWithoutEndpoint(t *testing.T) {
	p, err := New(context.Background(), Config{}, nil)
	require.NoError(t, err)
	p.AppendCommitted(1)
	require.NoError(t, p.Shutdown(context.Background()))
}
