package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	authapp "coffee-server/internal/application/auth"
	paymentapp "coffee-server/internal/application/payment"
	sessionapp "coffee-server/internal/application/session"
	storefrontapp "coffee-server/internal/application/storefront"
	"coffee-server/internal/infrastructure/config"
	otelinfra "coffee-server/internal/infrastructure/observability/otel"
	"coffee-server/internal/presentation/rest/handler"
	restmiddleware "coffee-server/internal/presentation/rest/middleware"
	"coffee-server/internal/presentation/web"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Services ルーターが利用するアプリケーションサービス
type Services struct {
	Payment    *paymentapp.PaymentApplicationService
	Session    *sessionapp.SessionApplicationService
	Storefront *storefrontapp.StorefrontApplicationService
	Auth       *authapp.AuthApplicationService
}

// Router REST APIルーター
type Router struct {
	echo              *echo.Echo
	paymentHandler    *handler.PaymentHandler
	statusHandler     *handler.StatusHandler
	storefrontHandler *handler.StorefrontHandler
	authHandler       *handler.AuthHandler
	healthHandler     *handler.HealthHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	services *Services,
	healthCheckers map[string]handler.HealthChecker,
) (*Router, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Echoのデフォルトエラーハンドラーを無効化（エラーハンドリングミドルウェアで処理）
	e.HTTPErrorHandler = func(err error, c echo.Context) {}

	setupMiddleware(e, cfg, logger, metrics)

	storefrontHandler, err := handler.NewStorefrontHandler(services.Storefront)
	if err != nil {
		return nil, err
	}

	r := &Router{
		echo:              e,
		paymentHandler:    handler.NewPaymentHandler(services.Payment),
		statusHandler:     handler.NewStatusHandler(services.Session),
		storefrontHandler: storefrontHandler,
		authHandler:       handler.NewAuthHandler(services.Auth),
		healthHandler:     handler.NewHealthHandler(healthCheckers, logger),
	}

	if err := r.setupRoutes(cfg, logger); err != nil {
		return nil, err
	}

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return r, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Use(middleware.RequestID())
	e.Use(restmiddleware.SecurityHeadersMiddleware(cfg.Server.FrameAncestors))
	e.Use(restmiddleware.TracingMiddleware())
	e.Use(restmiddleware.LoggingMiddleware(logger))
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア（最も内側）
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func (r *Router) setupRoutes(cfg *config.Config, logger *otelinfra.Logger) error {
	e := r.echo

	// ストアフロント
	e.GET("/", r.storefrontHandler.Page)
	static, err := web.StaticFS()
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	e.StaticFS("/static", static)

	// ブラウザから呼ばれるAPI（認証不要）
	e.POST("/api/create-payment", r.paymentHandler.CreatePayment)
	e.POST("/api/status", r.statusHandler.CheckStatus)

	api := e.Group("/api/v1")

	// サービストークン発行（管理APIキー）
	admin := api.Group("", restmiddleware.APIKeyMiddleware(&cfg.AdminAPI, logger))
	admin.POST("/auth/token", r.authHandler.GenerateToken)

	// サービストークンで認証するAPI（JWT_SECRET設定時のみ）
	if cfg.JWT.Secret != "" {
		authGroup := api.Group("", restmiddleware.AuthMiddleware(&cfg.JWT, logger))
		authGroup.POST("/checkouts", r.paymentHandler.CreateCheckout)
	}

	e.GET("/health", r.healthHandler.Health)

	return nil
}

// Handler http.Handlerを返す
func (r *Router) Handler() http.Handler {
	return r.echo
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	// Shutdownによる停止はエラーにしない
	if err := r.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 処理中のリクエストを待ってサーバーを停止
func (r *Router) Shutdown(ctx context.Context) error {
	return r.echo.Shutdown(ctx)
}
