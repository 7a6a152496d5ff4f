package handler

import (
	"io"
	"net/http/httptest"
	"testing"

	otelinfra "coffee-server/internal/infrastructure/observability/otel"
	restmiddleware "coffee-server/internal/presentation/rest/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestLogger() *otelinfra.Logger {
	return otelinfra.NewLogger(noop.NewTracerProvider().Tracer("test"))
}

func newTestMetrics(t *testing.T) *otelinfra.Metrics {
	t.Helper()
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)
	return metrics
}

// serve ErrorHandlerMiddlewareを通してハンドラーを実行
func serve(t *testing.T, h echo.HandlerFunc, method, target string, body io.Reader, setup func(c echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}

	// ミドルウェアを手動で実行
	err := restmiddleware.ErrorHandlerMiddleware(newTestLogger())(h)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

