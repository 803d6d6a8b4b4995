package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/dkote/mood-journal/internal/logger"
	"github.com/dkote/mood-journal/internal/models"
)

// EmotionAnalyzer fetches an inference result from the external
// emotion-detection collaborator.
type EmotionAnalyzer interface {
	Analyze(ctx context.Context, imageB64 string) (*models.AnalysisResult, error)
}

// AnalysisCache caches inference results keyed by image digest.
type AnalysisCache interface {
	Get(ctx context.Context, digest string) (*models.AnalysisResult, error)
	Set(ctx context.Context, digest string, result *models.AnalysisResult) error
}

// AnalysisService orchestrates inference, result caching and tip
// generation.
type AnalysisService struct {
	analyzer EmotionAnalyzer
	cache    AnalysisCache
}

// NewAnalysisService creates a new service instance.
func NewAnalysisService(analyzer EmotionAnalyzer, cache AnalysisCache) *AnalysisService {
	return &AnalysisService{
		analyzer: analyzer,
		cache:    cache,
	}
}

// Analyze returns the emotion breakdown for a base64 image plus coping
// tips for the dominant emotion. Identical payloads are served from the
// cache; inference failures are passed through with the collaborator's
// own message.
func (svc *AnalysisService) Analyze(ctx context.Context, imageB64 string) (*models.Analysis, error) {
	digest := imageDigest(imageB64)

	result, err := svc.cache.Get(ctx, digest)
	if err != nil {
		result, err = svc.analyzer.Analyze(ctx, imageB64)
		if err != nil {
			logger.Log.Errorw("inference failed", "error", err)
			return nil, err
		}
		if err := svc.cache.Set(ctx, digest, result); err != nil {
			logger.Log.Errorw("failed to cache analysis result", "error", err)
		}
	}

	intensity := result.Emotions[result.Dominant]

	return &models.Analysis{
		Dominant:  result.Dominant,
		Intensity: intensity,
		Emotions:  result.Emotions,
		Tips:      GenerateTips(result.Dominant, intensity),
	}, nil
}

func imageDigest(imageB64 string) string {
	sum := sha256.Sum256([]byte(imageB64))
	return hex.EncodeToString(sum[:])
}
