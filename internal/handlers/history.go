package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dkote/mood-journal/internal/jwt"
	"github.com/dkote/mood-journal/internal/logger"
	"github.com/dkote/mood-journal/internal/middlewares"
	"github.com/dkote/mood-journal/internal/models"
)

const defaultHistoryLimit = 200

// HistoryGetter defines the interface for history queries.
type HistoryGetter interface {
	GetHistory(ctx context.Context, limit int, username *string, isAdmin bool, date *string) ([]models.MoodEntry, error)
}

// HistoryEntry is one rendered mood entry. Anonymous entries carry the
// display name "Anonymous" instead of a null username.
// swagger:model HistoryEntry
type HistoryEntry struct {
	ID        int64              `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Dominant  string             `json:"dominant"`
	Intensity float64            `json:"intensity"`
	Emotions  map[string]float64 `json:"emotions"`
	Note      *string            `json:"note"`
	Username  string             `json:"username"`
}

// HistoryResponse represents a history query response
// swagger:model HistoryResponse
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}

// NewHistoryHandler returns an HTTP handler serving the caller's mood
// history. The caller identity comes from the token claims placed in
// the context by the auth middleware; admin tokens see all entries.
// @Summary Get mood history
// @Description Returns mood entries for the authenticated user, most recent first
// @Tags journal
// @Produce json
// @Param limit query int false "Maximum number of entries (default 200)"
// @Param date query string false "Exact UTC day filter, YYYY-MM-DD"
// @Success 200 {object} handlers.HistoryResponse
// @Failure 401 "Not authenticated"
// @Router /history [get]
// @Security BearerAuth
func NewHistoryHandler(svc HistoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		isAdmin := claims.Role == jwt.RoleAdmin
		var username *string
		if !isAdmin {
			username = &claims.Username
		}

		serveHistory(w, r, svc, username, isAdmin)
	}
}

// NewAdminHistoryHandler returns an HTTP handler serving all users'
// mood history, anonymous entries included. Routed behind the admin
// auth middleware.
// @Summary Get all mood history
// @Description Returns mood entries across all users, most recent first
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum number of entries (default 200)"
// @Param date query string false "Exact UTC day filter, YYYY-MM-DD"
// @Success 200 {object} handlers.HistoryResponse
// @Failure 401 "Not authenticated"
// @Router /admin/history [get]
func NewAdminHistoryHandler(svc HistoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveHistory(w, r, svc, nil, true)
	}
}

func serveHistory(w http.ResponseWriter, r *http.Request, svc HistoryGetter, username *string, isAdmin bool) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			limit = parsed
		}
	}

	var date *string
	if raw := r.URL.Query().Get("date"); raw != "" {
		date = &raw
	}

	entries, err := svc.GetHistory(r.Context(), limit, username, isAdmin, date)
	if err != nil {
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error: "Internal server error",
		})
		return
	}

	rendered := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		name := "Anonymous"
		if e.Username != nil {
			name = *e.Username
		}
		rendered = append(rendered, HistoryEntry{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			Dominant:  e.Dominant,
			Intensity: e.Intensity,
			Emotions:  e.Emotions,
			Note:      e.Note,
			Username:  name,
		})
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HistoryResponse{History: rendered})
}
