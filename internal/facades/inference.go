// Package facades wraps external collaborators behind narrow clients.
package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/dkote/mood-journal/internal/logger"
	"github.com/dkote/mood-journal/internal/models"
)

// EmotionInferenceFacade calls the external emotion-inference service
// over JSON/HTTP. The service is a black box: it takes a base64 image
// and returns a dominant label plus per-category scores (0-100). A
// request with no detectable face fails with the service's own message.
type EmotionInferenceFacade struct {
	baseURL string
	client  *http.Client
}

// NewEmotionInferenceFacade creates a facade for the service at baseURL.
func NewEmotionInferenceFacade(baseURL string, timeout time.Duration) *EmotionInferenceFacade {
	return &EmotionInferenceFacade{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type inferenceRequest struct {
	Image string `json:"image"`
}

type inferenceResponse struct {
	Dominant string             `json:"dominant_emotion"`
	Emotions map[string]float64 `json:"emotions"`
	Error    string             `json:"error"`
}

// Analyze submits a base64 image and returns the normalized inference
// result. Scores are rounded to two decimals; a missing dominant label
// falls back to the highest-scoring one, or "neutral" when the service
// returned no scores at all.
func (f *EmotionInferenceFacade) Analyze(ctx context.Context, imageB64 string) (*models.AnalysisResult, error) {
	body, err := json.Marshal(inferenceRequest{Image: imageB64})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("inference request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded inferenceResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		logger.Log.Errorw("inference response decode failed", "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		// The collaborator's message (for example no-face-detected) is
		// passed through verbatim.
		if decoded.Error != "" {
			return nil, errors.New(decoded.Error)
		}
		return nil, fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}

	return normalize(&decoded), nil
}

// normalize fills in defaults for partial responses the way older
// versions of the collaborator produced them.
func normalize(decoded *inferenceResponse) *models.AnalysisResult {
	emotions := make(map[string]float64, len(decoded.Emotions))
	for label, score := range decoded.Emotions {
		emotions[label] = round2(score)
	}

	dominant := decoded.Dominant
	if dominant == "" {
		best := -1.0
		for label, score := range emotions {
			if score > best {
				best = score
				dominant = label
			}
		}
		if dominant == "" {
			dominant = "neutral"
		}
	}

	return &models.AnalysisResult{
		Dominant: dominant,
		Emotions: emotions,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
