package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/furluv/furluv/internal/config"
	httpmiddleware "github.com/furluv/furluv/internal/delivery/http/middleware"
	"github.com/furluv/furluv/internal/exception"
	"github.com/furluv/furluv/internal/middleware"
	"github.com/furluv/furluv/internal/observability"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2/middleware/compress"
	zapLog "go.uber.org/zap"
)

func main() {
	time.Local = time.UTC

	zap, level := config.NewZap()
	koanf := config.NewKoanf(zap, ".env")
	level.SetLevel(config.ParseLogLevel(koanf.String("LOG_LEVEL")))

	otelConfig, tracing := config.LoadObservabilityConfig(koanf)
	shutdownTracing := func(context.Context) error { return nil }
	if tracing {
		shutdown, err := observability.Init(context.Background(), otelConfig, zap)
		if err != nil {
			zap.Fatal("failed to initialize tracing", zapLog.Error(err))
		}
		shutdownTracing = shutdown
	}

	fiber := config.NewFiber()
	rds := config.NewRedisClient(koanf, zap)
	postgresql := config.NewPostgresqlPool(koanf, zap)
	minio := config.NewMinIO(koanf, zap)
	backendClient := config.NewBackendClient(koanf, zap)

	fiber.Use(exception.Recovery(zap))
	fiber.Use(otelfiber.Middleware())
	fiber.Use(middleware.TraceLoggerMiddleware(zap))
	fiber.Use(httpmiddleware.SetupCORS(koanf.String("CORS_ALLOW_ORIGINS")))
	fiber.Use(httpmiddleware.SetupRateLimiter(zap))
	fiber.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	config.Server(&config.ServerConfig{
		Router:  fiber,
		DB:      postgresql,
		DBCache: rds,
		Log:     zap,
		Config:  koanf,
		MinIO:   minio,
		Backend: backendClient,
	})

	GO_SERVER_PORT := koanf.String("GO_SERVER")

	zap.Info("Server is running on: " + GO_SERVER_PORT)

	go func() {
		err := fiber.Listen(GO_SERVER_PORT)
		if err != nil {
			zap.Fatal("error starting server", zapLog.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zap.Info("got one of stop signals")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := fiber.ShutdownWithContext(ctx)
	if err != nil {
		zap.Warn("timeout, forced kill!", zapLog.Error(err))
		_ = zap.Sync()
		os.Exit(1)
	}

	_ = backendClient.Close()
	postgresql.Close()
	_ = rds.Close()

	err = shutdownTracing(ctx)
	if err != nil {
		zap.Warn("failed to flush traces", zapLog.Error(err))
	}

	zap.Info("server has shut down gracefully")
	_ = zap.Sync()
}
