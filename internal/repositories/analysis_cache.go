package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkote/mood-journal/internal/logger"
	"github.com/dkote/mood-journal/internal/models"
	"github.com/redis/go-redis/v9"
)

// AnalysisCacheRepository caches inference results in Redis, keyed by a
// digest of the submitted image payload.
type AnalysisCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached results
}

// NewAnalysisCacheRepository creates a new repository instance with the given TTL.
func NewAnalysisCacheRepository(client *redis.Client, expiration time.Duration) *AnalysisCacheRepository {
	return &AnalysisCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// Get fetches a cached inference result for the given image digest.
func (r *AnalysisCacheRepository) Get(ctx context.Context, digest string) (*models.AnalysisResult, error) {
	key := fmt.Sprintf("analysis:%s", digest)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("analysis cache miss",
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, fmt.Errorf("analysis result not found in cache for %s", digest)
		}
		return nil, err
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		logger.Log.Infow("analysis cache decode failed",
			"key", key,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow("analysis cache hit",
		"key", key,
		"dominant", result.Dominant,
	)

	return &result, nil
}

// Set caches an inference result under the image digest with expiration.
func (r *AnalysisCacheRepository) Set(ctx context.Context, digest string, result *models.AnalysisResult) error {
	key := fmt.Sprintf("analysis:%s", digest)

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("analysis cache set",
		"key", key,
		"dominant", result.Dominant,
		"error", err,
	)

	return err
}
