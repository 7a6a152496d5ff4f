package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	authapp "coffee-server/internal/application/auth"
	paymentapp "coffee-server/internal/application/payment"
	sessionapp "coffee-server/internal/application/session"
	storefrontapp "coffee-server/internal/application/storefront"
	"coffee-server/internal/domain/donation"
	"coffee-server/internal/infrastructure/cache"
	"coffee-server/internal/infrastructure/config"
	otelinfra "coffee-server/internal/infrastructure/observability/otel"
	"coffee-server/internal/infrastructure/parentapi"
	"coffee-server/internal/infrastructure/persistence/mysql"
	grpcserver "coffee-server/internal/presentation/grpc"
	"coffee-server/internal/presentation/rest"
	"coffee-server/internal/presentation/rest/handler"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("coffee-server")
	logger := otelinfra.NewLogger(tracer)
	defer func() { _ = logger.Sync() }()
	metrics, err := otelinfra.NewMetrics("coffee-server")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	ctx := context.Background()
	healthCheckers := map[string]handler.HealthChecker{}

	// データベース（任意）
	var records donation.CheckoutRecordRepository
	if cfg.Database.Enabled {
		db, err := mysql.NewDB(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		records = mysql.NewCheckoutRecordRepository(db)
		healthCheckers["database"] = db
	}

	// Redis（任意）
	var statsCache donation.StatsCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		c := cache.NewStatsCache(redisClient, cfg.Redis.StatsTTL)
		statsCache = c
		healthCheckers["redis"] = c
	}

	// 親アプリAPIクライアント
	parentClient := parentapi.NewClient(cfg.ParentAPI, logger, metrics)
	if cfg.ParentAPI.BaseURL == "" {
		logger.Warn(ctx, "PARENT_API_BASE is not set, checkout requests will fail", nil)
	}

	// アプリケーションサービスの初期化
	paymentAppService := paymentapp.NewPaymentApplicationService(parentClient, records, logger, metrics)
	sessionAppService := sessionapp.NewSessionApplicationService(parentClient, logger, metrics)
	storefrontAppService := storefrontapp.NewStorefrontApplicationService(
		donation.DefaultCatalog(),
		donation.Stats{
			Supporters: cfg.Storefront.BaselineSupporter,
			Coffees:    cfg.Storefront.BaselineCoffees,
		},
		cfg.Storefront.CreatorName,
		records,
		statsCache,
		sessionAppService,
		logger,
	)
	authAppService := authapp.NewAuthApplicationService(&cfg.JWT, logger)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(cfg, logger, metrics, &rest.Services{
		Payment:    paymentAppService,
		Session:    sessionAppService,
		Storefront: storefrontAppService,
		Auth:       authAppService,
	}, healthCheckers)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// gRPCサーバーの初期化（任意）
	var grpcSrv *grpcserver.Server
	if cfg.GRPC.Enabled {
		grpcSrv, err = grpcserver.NewServer(cfg, logger, &grpcserver.Services{
			Payment: paymentAppService,
			Session: sessionAppService,
			Auth:    authAppService,
		})
		if err != nil {
			log.Fatalf("Failed to create gRPC server: %v", err)
		}
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		logger.Info(ctx, "REST API server starting", map[string]interface{}{
			"address": address,
		})
		if err := router.Start(address); err != nil {
			logger.Error(ctx, "REST API server error", err, nil)
		}
	}()

	// gRPCサーバーを別ゴルーチンで起動
	if grpcSrv != nil {
		go func() {
			if err := grpcSrv.Start(); err != nil {
				logger.Error(ctx, "gRPC server error", err, nil)
			}
		}()
	}

	// シグナルを待機
	<-quit
	logger.Info(ctx, "Shutting down servers...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Error shutting down REST API server", err, nil)
	}

	if grpcSrv != nil {
		if err := grpcSrv.Stop(shutdownCtx); err != nil {
			logger.Error(ctx, "Error shutting down gRPC server", err, nil)
		}
	}

	logger.Info(ctx, "Servers stopped", nil)
}
