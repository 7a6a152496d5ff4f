package parentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"coffee-server/internal/domain/parent"
	"coffee-server/internal/infrastructure/config"
	otelinfra "coffee-server/internal/infrastructure/observability/otel"
)

const (
	checkoutPath = "/api/credits/checkout"
	statusPath   = "/api/status"

	// 非2xx応答をログに残す際の最大バイト数
	maxLoggedBody = 2048
)

// Client 親アプリAPIクライアント
type Client struct {
	baseURL       string
	statusBaseURL string
	httpClient    *http.Client
	propagator    propagation.TextMapPropagator
	logger        *otelinfra.Logger
	metrics       *otelinfra.Metrics
	tracer        trace.Tracer
}

// NewClient 新しいClientを作成
func NewClient(cfg config.ParentAPIConfig, logger *otelinfra.Logger, metrics *otelinfra.Metrics) *Client {
	return &Client{
		baseURL:       cfg.BaseURL,
		statusBaseURL: cfg.StatusBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		propagator: otel.GetTextMapPropagator(),
		logger:     logger,
		metrics:    metrics,
		tracer:     otel.Tracer("parent-api-client"),
	}
}

var (
	_ parent.CheckoutGateway = (*Client)(nil)
	_ parent.StatusGateway   = (*Client)(nil)
)

type checkoutResponse struct {
	URL string `json:"url"`
}

type statusRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
}

// CreateCheckout 親アプリに決済セッションを作成させる
func (c *Client) CreateCheckout(ctx context.Context, userID string, req *parent.CheckoutSessionRequest) (*parent.CheckoutSession, error) {
	ctx, span := c.tracer.Start(ctx, "ParentAPIClient.CreateCheckout", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if c.baseURL == "" {
		span.SetStatus(otelcodes.Error, parent.ErrNotConfigured.Error())
		return nil, parent.ErrNotConfigured
	}

	endpoint := c.baseURL + checkoutPath + "?" + url.Values{"user_id": {userID}}.Encode()
	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("project_id", req.ProjectID),
		attribute.Int64("price_cents", req.PriceCents),
	)

	statusCode, body, err := c.post(ctx, checkoutPath, endpoint, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	if statusCode < 200 || statusCode >= 300 {
		c.logger.Error(ctx, "Parent checkout error", nil, map[string]interface{}{
			"status": statusCode,
			"body":   truncate(body, maxLoggedBody),
		})
		err := fmt.Errorf("%w: status %d", parent.ErrCheckoutFailed, statusCode)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var res checkoutResponse
	if err := json.Unmarshal(body, &res); err != nil {
		err = fmt.Errorf("%w: failed to decode checkout response: %v", parent.ErrUnavailable, err)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	if res.URL == "" {
		err := fmt.Errorf("%w: checkout response has no url", parent.ErrUnavailable)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	return &parent.CheckoutSession{URL: res.URL}, nil
}

// CheckStatus 親アプリからユーザーのステータスを取得
func (c *Client) CheckStatus(ctx context.Context, userID, projectID string) (*parent.StatusResult, error) {
	ctx, span := c.tracer.Start(ctx, "ParentAPIClient.CheckStatus", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if c.statusBaseURL == "" {
		span.SetStatus(otelcodes.Error, parent.ErrNotConfigured.Error())
		return nil, parent.ErrNotConfigured
	}

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("project_id", projectID),
	)

	statusCode, body, err := c.post(ctx, statusPath, c.statusBaseURL+statusPath, &statusRequest{
		UserID:    userID,
		ProjectID: projectID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", statusCode))
	return &parent.StatusResult{StatusCode: statusCode, Body: body}, nil
}

// post JSONをPOSTし、ステータスコードと応答ボディを返す
func (c *Client) post(ctx context.Context, name, endpoint string, payload interface{}) (int, []byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to create request: %v", parent.ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	c.propagator.Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.RecordUpstream(ctx, name, 0, time.Since(start).Seconds())
		c.logger.Error(ctx, "Parent API request failed", err, map[string]interface{}{
			"endpoint": name,
		})
		return 0, nil, fmt.Errorf("%w: %v", parent.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.metrics.RecordUpstream(ctx, name, resp.StatusCode, time.Since(start).Seconds())
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read response: %v", parent.ErrUnavailable, err)
	}

	return resp.StatusCode, body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
