package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dkote/mood-journal/internal/models"
)

func TestAnalysisCacheRepository(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	repo := NewAnalysisCacheRepository(rdb, 2*time.Second)

	result := &models.AnalysisResult{
		Dominant: "happy",
		Emotions: map[string]float64{"happy": 92.5, "neutral": 7.5},
	}

	t.Run("Set and Get analysis result", func(t *testing.T) {
		err := repo.Set(ctx, "digest-1", result)
		assert.NoError(t, err)

		got, err := repo.Get(ctx, "digest-1")
		assert.NoError(t, err)
		assert.Equal(t, result, got)
	})

	t.Run("Get missing key returns error", func(t *testing.T) {
		_, err := repo.Get(ctx, "unknown-digest")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found in cache")
	})

	t.Run("Cached result expires", func(t *testing.T) {
		err := repo.Set(ctx, "digest-2", result)
		assert.NoError(t, err)

		// Wait for expiration (2s)
		time.Sleep(3 * time.Second)

		_, err = repo.Get(ctx, "digest-2")
		assert.Error(t, err)
	})
}
