package handler

import (
	"context"
	"net/http"

	otelinfra "coffee-server/internal/infrastructure/observability/otel"

	"github.com/labstack/echo/v4"
)

// HealthChecker 依存先の疎通確認
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthResponse ヘルスチェックレスポンス
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// HealthHandler ヘルスチェックハンドラー
type HealthHandler struct {
	checkers map[string]HealthChecker
	logger   *otelinfra.Logger
}

// NewHealthHandler 新しいHealthHandlerを作成
// checkersが空の場合は常にokを返す
func NewHealthHandler(checkers map[string]HealthChecker, logger *otelinfra.Logger) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		logger:   logger,
	}
}

// Health ヘルスチェック
// @Summary ヘルスチェック
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "正常"
// @Failure 503 {object} HealthResponse "依存先に接続できない"
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()
	for name, checker := range h.checkers {
		if err := checker.HealthCheck(ctx); err != nil {
			h.logger.Warn(ctx, "Health check failed", map[string]interface{}{
				"dependency": name,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
