package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkote/mood-journal/internal/logger"
)

// EntrySaver defines the interface for persisting mood entries.
type EntrySaver interface {
	SaveEntry(ctx context.Context, dominant string, intensity float64, emotions map[string]float64, username, note *string) (int64, error)
}

// SaveResultRequest represents the JSON body for saving an analysis result
// swagger:model SaveResultRequest
type SaveResultRequest struct {
	// Dominant emotion label
	// required: true
	DominantEmotion string `json:"dominant_emotion"`

	// Score of the dominant emotion, 0-100
	// required: true
	Intensity *float64 `json:"intensity"`

	// All emotion scores from the same inference call
	// required: true
	Emotions map[string]float64 `json:"emotions"`

	// Optional author username; empty means anonymous
	Name string `json:"name"`

	// Optional free-text note
	Note *string `json:"note"`
}

// SaveResultResponse represents a successful save response
// swagger:model SaveResultResponse
type SaveResultResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

// NewSaveResultHandler returns an HTTP handler for saving mood entries.
// The handler, not the store, enforces that intensity matches the
// dominant label's score.
// @Summary Save a mood entry
// @Description Persists an analysis result to the mood journal
// @Tags journal
// @Accept json
// @Produce json
// @Param saveResultRequest body handlers.SaveResultRequest true "Save request"
// @Success 200 {object} handlers.SaveResultResponse
// @Failure 400 {object} handlers.ErrorResponse "Missing fields"
// @Router /save_result [post]
func NewSaveResultHandler(svc EntrySaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveResultRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "No payload",
			})
			return
		}

		if req.DominantEmotion == "" || req.Intensity == nil || req.Emotions == nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Missing fields",
			})
			return
		}

		if score, ok := req.Emotions[req.DominantEmotion]; ok && score != *req.Intensity {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Intensity does not match dominant emotion score",
			})
			return
		}

		var username *string
		if req.Name != "" {
			username = &req.Name
		}

		id, err := svc.SaveEntry(r.Context(), req.DominantEmotion, *req.Intensity, req.Emotions, username, req.Note)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(SaveResultResponse{
			Status: "ok",
			ID:     id,
		})
	}
}
