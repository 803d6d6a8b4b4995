package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkote/mood-journal/internal/logger"
)

// EntryDeleter defines the interface for removing mood entries.
type EntryDeleter interface {
	DeleteEntry(ctx context.Context, id int64) (bool, error)
}

// DeleteEntryRequest represents the JSON body for deleting a mood entry
// swagger:model DeleteEntryRequest
type DeleteEntryRequest struct {
	// Entry id
	// required: true
	ID int64 `json:"id"`
}

// DeleteEntryResponse represents a successful delete response
// swagger:model DeleteEntryResponse
type DeleteEntryResponse struct {
	Status string `json:"status"`
}

// NewDeleteEntryHandler returns an HTTP handler for deleting mood
// entries by id. Deleting an absent id yields 404, not an error.
// @Summary Delete a mood entry
// @Description Removes a mood entry by id
// @Tags journal
// @Accept json
// @Produce json
// @Param deleteEntryRequest body handlers.DeleteEntryRequest true "Delete request"
// @Success 200 {object} handlers.DeleteEntryResponse
// @Failure 400 {object} handlers.ErrorResponse "Missing id"
// @Failure 404 {object} handlers.ErrorResponse "Entry not found"
// @Router /delete_entry [post]
func NewDeleteEntryHandler(svc EntryDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeleteEntryRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Missing id",
			})
			return
		}

		deleted, err := svc.DeleteEntry(r.Context(), req.ID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}
		if !deleted {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Entry not found",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteEntryResponse{
			Status: "ok",
		})
	}
}
