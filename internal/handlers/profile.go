package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sylesh7/medinnovate/internal/logger"
	"github.com/sylesh7/medinnovate/internal/middlewares"
	"github.com/sylesh7/medinnovate/internal/models"
)

// ProfileReader defines the interface for fetching the caller's record.
type ProfileReader interface {
	FindByRecordID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
}

// ProfileErrorResponse represents an error response for profile lookup
// swagger:model ProfileErrorResponse
type ProfileErrorResponse struct {
	// Error message
	// default: profile not found
	Error string `json:"error"`
}

// NewProfileHandler returns an HTTP handler serving the caller's stored
// record. The password hash is excluded from serialization.
// @Summary Current user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.UserDB "Stored record"
// @Failure 401 {object} handlers.ProfileErrorResponse "Not authenticated"
// @Failure 404 {object} handlers.ProfileErrorResponse "Profile not found"
// @Security BearerAuth
// @Router /profile [get]
func NewProfileHandler(reader ProfileReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ProfileErrorResponse{
				Error: "not authenticated",
			})
			return
		}

		user, err := reader.FindByRecordID(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ProfileErrorResponse{
				Error: "Internal server error",
			})
			return
		}
		if user == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ProfileErrorResponse{
				Error: "profile not found",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}
