package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkote/mood-journal/internal/models"
)

// Analyzer defines the interface that the analysis service must implement.
type Analyzer interface {
	Analyze(ctx context.Context, imageB64 string) (*models.Analysis, error)
}

// AnalyzeRequest represents the JSON body for image analysis
// swagger:model AnalyzeRequest
type AnalyzeRequest struct {
	// Base64-encoded face image, optionally with a data URL prefix
	// required: true
	Image string `json:"image"`
}

// AnalyzeResponse represents a successful analysis response
// swagger:model AnalyzeResponse
type AnalyzeResponse struct {
	DominantEmotion string             `json:"dominant_emotion"`
	Intensity       float64            `json:"intensity"`
	Emotions        map[string]float64 `json:"emotions"`
	Tips            []string           `json:"tips"`
}

// NewAnalyzeHandler returns an HTTP handler for emotion analysis.
// Inference failures, including no-face-detected, surface the
// collaborator's raw message with a 500 status.
// @Summary Analyze a face image
// @Description Infers the emotional state from a base64 image and returns scores plus coping tips
// @Tags analysis
// @Accept json
// @Produce json
// @Param analyzeRequest body handlers.AnalyzeRequest true "Analysis request"
// @Success 200 {object} handlers.AnalyzeResponse
// @Failure 400 {object} handlers.ErrorResponse "No image provided"
// @Failure 500 {object} handlers.ErrorResponse "Inference failure"
// @Router /analyze [post]
func NewAnalyzeHandler(svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "No image provided",
			})
			return
		}

		analysis, err := svc.Analyze(r.Context(), req.Image)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(AnalyzeResponse{
			DominantEmotion: analysis.Dominant,
			Intensity:       analysis.Intensity,
			Emotions:        analysis.Emotions,
			Tips:            analysis.Tips,
		})
	}
}
