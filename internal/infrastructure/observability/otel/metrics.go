package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 作成された決済セッション数
	CheckoutCount metric.Int64Counter

	// 親アプリAPI呼び出しの所要時間
	UpstreamDuration metric.Float64Histogram

	// 管理者判定の結果数
	AdminCheckCount metric.Int64Counter

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	checkoutCount, err := meter.Int64Counter(
		"checkouts_total",
		metric.WithDescription("Total number of checkout sessions created by the parent API"),
	)
	if err != nil {
		return nil, err
	}

	upstreamDuration, err := meter.Float64Histogram(
		"parent_api_duration_seconds",
		metric.WithDescription("Parent API call duration in seconds"),
	)
	if err != nil {
		return nil, err
	}

	adminCheckCount, err := meter.Int64Counter(
		"admin_checks_total",
		metric.WithDescription("Total number of admin status lookups"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		CheckoutCount:    checkoutCount,
		UpstreamDuration: upstreamDuration,
		AdminCheckCount:  adminCheckCount,
		RequestCount:     requestCount,
		ResponseTime:     responseTime,
		ErrorCount:       errorCount,
	}, nil
}

// RecordCheckout 決済セッション作成を記録
func (m *Metrics) RecordCheckout(ctx context.Context, kind, tier string) {
	m.CheckoutCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("tier", tier),
		),
	)
}

// RecordUpstream 親アプリAPI呼び出しを記録
func (m *Metrics) RecordUpstream(ctx context.Context, endpoint string, statusCode int, duration float64) {
	m.UpstreamDuration.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("endpoint", endpoint),
			attribute.Int("status_code", statusCode),
		),
	)
}

// RecordAdminCheck 管理者判定の結果を記録
func (m *Metrics) RecordAdminCheck(ctx context.Context, isAdmin bool) {
	m.AdminCheckCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.Bool("is_admin", isAdmin),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
