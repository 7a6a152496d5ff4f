package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics ManualReaderで値を読み出せるMetricsを作成
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := NewMetrics("test-meter")
	require.NoError(t, err)
	return metrics, reader
}

// findSum 指定したカウンターの合計値を返す
func findSum(t *testing.T, reader *sdkmetric.ManualReader, name string) (int64, []attribute.Set) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	var attrs []attribute.Set
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
				attrs = append(attrs, dp.Attributes)
			}
		}
	}
	return total, attrs
}

func TestNewMetrics(t *testing.T) {
	metrics, _ := newTestMetrics(t)

	assert.NotNil(t, metrics.CheckoutCount)
	assert.NotNil(t, metrics.UpstreamDuration)
	assert.NotNil(t, metrics.AdminCheckCount)
	assert.NotNil(t, metrics.RequestCount)
	assert.NotNil(t, metrics.ResponseTime)
	assert.NotNil(t, metrics.ErrorCount)
}

func TestMetrics_RecordCheckout(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordCheckout(ctx, "subscription", "Champion")
	metrics.RecordCheckout(ctx, "one-time", "")

	total, attrs := findSum(t, reader, "checkouts_total")
	assert.Equal(t, int64(2), total)
	require.Len(t, attrs, 2)
}

func TestMetrics_RecordAdminCheck(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordAdminCheck(ctx, true)

	total, attrs := findSum(t, reader, "admin_checks_total")
	assert.Equal(t, int64(1), total)
	require.Len(t, attrs, 1)
	value, ok := attrs[0].Value("is_admin")
	require.True(t, ok)
	assert.True(t, value.AsBool())
}

func TestMetrics_RecordRequestAndError(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordRequest(ctx, "POST", "/api/create-payment")
	metrics.RecordRequest(ctx, "POST", "/api/status")
	metrics.RecordError(ctx, "server_error")

	requests, _ := findSum(t, reader, "requests_total")
	assert.Equal(t, int64(2), requests)
	errorsTotal, _ := findSum(t, reader, "errors_total")
	assert.Equal(t, int64(1), errorsTotal)
}

func TestMetrics_RecordDurations(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordUpstream(ctx, "credits_checkout", 200, 0.12)
	metrics.RecordResponseTime(ctx, "POST", "/api/create-payment", 0.2)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
		}
	}
	assert.True(t, names["parent_api_duration_seconds"])
	assert.True(t, names["response_time_seconds"])
}
