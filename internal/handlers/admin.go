package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dkote/mood-journal/internal/jwt"
	"github.com/dkote/mood-journal/internal/logger"
	"github.com/dkote/mood-journal/internal/services"
)

// AdminLoginer defines the interface for admin authentication.
type AdminLoginer interface {
	AdminLogin(ctx context.Context, username, password string) (string, error)
}

// AdminLoginResponse represents a successful admin login response
// swagger:model AdminLoginResponse
type AdminLoginResponse struct {
	Message string `json:"message"`
}

// NewAdminLoginHandler returns an HTTP handler for admin login. Unlike
// user login it takes a form body and only issues a cookie, matching
// the browser-only admin panel.
// @Summary Admin login
// @Description Authenticate an administrator and set the admin session cookie
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Admin username"
// @Param password formData string true "Admin password"
// @Success 200 {object} handlers.AdminLoginResponse
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Router /admin/login [post]
func NewAdminLoginHandler(svc AdminLoginer, tokenTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid form body",
			})
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		token, err := svc.AdminLogin(r.Context(), username, password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Invalid username or password",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     jwt.AdminCookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(tokenTTL),
			HttpOnly: true,
		})

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(AdminLoginResponse{
			Message: "Admin logged in",
		})
	}
}

// NewAdminDeleteEntryHandler returns an HTTP handler for deleting mood
// entries by path parameter. Routed behind the admin auth middleware.
// @Summary Admin: delete a mood entry
// @Description Removes any user's mood entry by id
// @Tags admin
// @Produce json
// @Param id path int true "Entry id"
// @Success 200 {object} handlers.DeleteEntryResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 404 {object} handlers.ErrorResponse "Entry not found"
// @Router /admin/entries/{id} [delete]
func NewAdminDeleteEntryHandler(svc EntryDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Invalid id",
			})
			return
		}

		deleted, err := svc.DeleteEntry(r.Context(), id)
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
