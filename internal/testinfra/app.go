package testinfra

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/furluv/furluv/internal/config"
	"github.com/furluv/furluv/internal/exception"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const (
	TestJWTSecret  = "test-secret-key-for-jwt-token-generation"
	TestBucketName = "furluv-test"
)

type TestApp struct {
	App     *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	MinIO   *minio.Client
	Config  *koanf.Koanf
	Log     *zap.Logger
}

func NewTestConfig(infra *TestInfra) *koanf.Koanf {
	testConfig := koanf.New(".")

	_ = testConfig.Set("POSTGRES_URL", infra.PgURL)
	_ = testConfig.Set("REDIS_URL", infra.RedisURL)
	_ = testConfig.Set("REDIS_DB", 0)
	_ = testConfig.Set("MINIO_URL", infra.MinioURL)
	_ = testConfig.Set("MINIO_HTTP", "http://")
	_ = testConfig.Set("MINIO_USER", minioUser)
	_ = testConfig.Set("MINIO_PASSWORD", minioPassword)
	_ = testConfig.Set("MINIO_BUCKET_NAME", TestBucketName)
	_ = testConfig.Set("MINIO_LOCATION", "us-east-1")
	_ = testConfig.Set("MINIO_SECURE", false)
	_ = testConfig.Set("JWT_SECRET_KEY", TestJWTSecret)
	_ = testConfig.Set("FEED_STATE_TTL", "1h")
	_ = testConfig.Set("BACKEND_TIMEOUT", "5s")

	return testConfig
}

// SetupTestApp wires the whole service against infra. The app also listens on
// a loopback port because the feed reaches the posts API over HTTP, the same
// way it does in production.
func SetupTestApp(t *testing.T, infra *TestInfra) *TestApp {
	t.Helper()

	log := zaptest.NewLogger(t)
	testConfig := NewTestConfig(infra)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to open listener: %v", err)
	}
	_ = testConfig.Set("BACKEND_URL", "http://"+listener.Addr().String()+"/api")

	db := config.NewPostgresqlPool(testConfig, log)
	dbCache := config.NewRedisClient(testConfig, log)
	minioClient := config.NewMinIO(testConfig, log)
	backendClient := config.NewBackendClient(testConfig, log)

	app := fiber.New(fiber.Config{
		AppName:               "furluv-test",
		DisableStartupMessage: true,
		ErrorHandler:          exception.ErrorHandler,
	})
	app.Use(exception.Recovery(log))

	config.Server(&config.ServerConfig{
		Router:  app,
		DB:      db,
		DBCache: dbCache,
		Log:     log,
		Config:  testConfig,
		MinIO:   minioClient,
		Backend: backendClient,
	})

	go func() {
		_ = app.Listener(listener)
	}()

	t.Cleanup(func() {
		_ = app.ShutdownWithTimeout(5 * time.Second)
		_ = backendClient.Close()
		db.Close()
		_ = dbCache.Close()
	})

	return &TestApp{
		App:     app,
		DB:      db,
		DBCache: dbCache,
		MinIO:   minioClient,
		Config:  testConfig,
		Log:     log,
	}
}

// Reset empties every table and the cache between tests sharing one infra.
func (testApp *TestApp) Reset(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	TruncateAllTables(t, testApp.DB, ctx)

	err := testApp.DBCache.FlushDB(ctx).Err()
	if err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}
}
