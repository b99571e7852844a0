// Package testinfra starts the containers and the wired application used by
// integration tests. Every entry point skips under -short.
package testinfra

import (
	"context"
	"fmt"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
)

type TestInfra struct {
	Postgres *postgres.PostgresContainer
	Redis    *redis.RedisContainer
	MinIO    testcontainers.Container

	PgURL    string
	RedisURL string
	MinioURL string
}

// SkipIfShort is called first by every integration test.
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

func StartInfra(ctx context.Context, t *testing.T) (*TestInfra, error) {
	t.Log("starting test infrastructure")

	infra := &TestInfra{}

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("furluv_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres: %w", err)
	}
	infra.Postgres = pgContainer

	infra.PgURL, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return infra, fmt.Errorf("failed to get postgres connection string: %w", err)
	}

	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections"),
		),
	)
	if err != nil {
		return infra, fmt.Errorf("failed to start redis: %w", err)
	}
	infra.Redis = redisContainer

	infra.RedisURL, err = hostPort(ctx, redisContainer, "6379")
	if err != nil {
		return infra, fmt.Errorf("failed to resolve redis address: %w", err)
	}

	minioContainer, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image: "minio/minio:latest",
				Cmd:   []string{"server", "/data"},
				Env: map[string]string{
					"MINIO_ROOT_USER":     minioUser,
					"MINIO_ROOT_PASSWORD": minioPassword,
				},
				ExposedPorts: []string{"9000/tcp"},
				WaitingFor:   wait.ForListeningPort("9000/tcp"),
			},
			Started: true,
		},
	)
	if err != nil {
		return infra, fmt.Errorf("failed to start minio: %w", err)
	}
	infra.MinIO = minioContainer

	infra.MinioURL, err = hostPort(ctx, minioContainer, "9000")
	if err != nil {
		return infra, fmt.Errorf("failed to resolve minio address: %w", err)
	}

	t.Logf("postgres=%s redis=%s minio=%s", infra.PgURL, infra.RedisURL, infra.MinioURL)

	return infra, nil
}

func hostPort(ctx context.Context, container testcontainers.Container, port string) (string, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return "", err
	}

	mapped, err := container.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s:%s", host, mapped.Port()), nil
}

func (infra *TestInfra) Terminate(ctx context.Context, t *testing.T) error {
	t.Log("terminating test infrastructure")

	if infra.Postgres != nil {
		if err := infra.Postgres.Terminate(ctx); err != nil {
			return fmt.Errorf("failed to terminate postgres: %w", err)
		}
	}
	if infra.Redis != nil {
		if err := infra.Redis.Terminate(ctx); err != nil {
			return fmt.Errorf("failed to terminate redis: %w", err)
		}
	}
	if infra.MinIO != nil {
		if err := infra.MinIO.Terminate(ctx); err != nil {
			return fmt.Errorf("failed to terminate minio: %w", err)
		}
	}

	return nil
}

// Start brings the infrastructure up, migrates the database and registers
// teardown with t.
func Start(t *testing.T) *TestInfra {
	t.Helper()
	SkipIfShort(t)

	ctx := context.Background()

	infra, err := StartInfra(ctx, t)
	t.Cleanup(func() {
		if infra != nil {
			_ = infra.Terminate(ctx, t)
		}
	})
	if err != nil {
		t.Fatalf("failed to start infrastructure: %v", err)
	}

	err = RunMigration(infra.PgURL, t)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return infra
}
