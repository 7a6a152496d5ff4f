package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	authapp "coffee-server/internal/application/auth"
	"coffee-server/internal/domain/donation"
	"coffee-server/internal/domain/parent"
	"coffee-server/internal/domain/session"
	otelinfra "coffee-server/internal/infrastructure/observability/otel"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// errorMapping ドメインエラーとHTTPレスポンスの対応
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// 上から順に評価する（ラップされたエラーは先に一致したものが使われる）
var errorMappings = []errorMapping{
	{donation.ErrMissingIdentity, http.StatusBadRequest, "missing_identity", "Missing uid or projectId in query/body"},
	{session.ErrMissingIdentity, http.StatusBadRequest, "missing_identity", "Missing userId or projectId"},
	{donation.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount", "Invalid amount"},
	{donation.ErrInvalidTier, http.StatusBadRequest, "invalid_tier", "Invalid tier"},
	{authapp.ErrUserIDRequired, http.StatusBadRequest, "user_id_required", "user_id is required"},
	{parent.ErrNotConfigured, http.StatusInternalServerError, "parent_not_configured", "PARENT_API_BASE env var not set"},
	{parent.ErrCheckoutFailed, http.StatusInternalServerError, "checkout_failed", "Failed to create checkout session"},
	{donation.ErrPaymentFailed, http.StatusInternalServerError, "payment_failed", "Payment processing failed"},
	{session.ErrStatusCheckFailed, http.StatusInternalServerError, "status_check_failed", "Status check failed"},
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		fields := map[string]interface{}{
			"code": m.code,
			"path": c.Request().URL.Path,
		}
		if m.status >= http.StatusInternalServerError {
			logger.Error(ctx, m.message, err, fields)
		} else {
			fields["error"] = err.Error()
			logger.Warn(ctx, m.message, fields)
		}
		return c.JSON(m.status, ErrorResponse{
			Error: m.message,
			Code:  m.code,
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "An unexpected error occurred",
		Code:  "internal_server_error",
	})
}
