package config

import (
	"context"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const (
	defaultPostgresMaxConns = 20
	defaultPostgresMinConns = 5
)

// NewPostgresqlPool connects to POSTGRES_URL. POSTGRES_MAX_CONNS and
// POSTGRES_MIN_CONNS override the pool bounds.
func NewPostgresqlPool(config *koanf.Koanf, log *zap.Logger) *pgxpool.Pool {
	dsn := config.String("POSTGRES_URL")
	pgxConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal("failed to parse postgresql config", zap.Error(err))
	}

	pgxConfig.MaxConns = int32(poolSize(config.Int("POSTGRES_MAX_CONNS"), defaultPostgresMaxConns))
	pgxConfig.MinConns = int32(min(poolSize(config.Int("POSTGRES_MIN_CONNS"), defaultPostgresMinConns), int(pgxConfig.MaxConns)))
	pgxConfig.MaxConnLifetime = 30 * time.Minute
	pgxConfig.MaxConnIdleTime = 5 * time.Minute
	pgxConfig.HealthCheckPeriod = 1 * time.Minute
	pgxConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxConfig)
	if err != nil {
		log.Fatal("failed to create pgx pool", zap.Error(err))
	}

	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("failed to ping postgresql database", zap.Error(err))
	}

	log.Info("connected to postgresql",
		zap.Int32("maxConns", pgxConfig.MaxConns),
		zap.Int32("minConns", pgxConfig.MinConns),
	)

	return pool
}

func poolSize(configured int, fallback int) int {
	if configured <= 0 {
		return fallback
	}
	return configured
}
