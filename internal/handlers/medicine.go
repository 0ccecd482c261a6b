package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sylesh7/medinnovate/internal/logger"
	"github.com/sylesh7/medinnovate/internal/middlewares"
	"github.com/sylesh7/medinnovate/internal/services"
)

// Adviser defines the interface for personalised medicine suggestions.
type Adviser interface {
	PersonalisedMedicine(ctx context.Context, userRecordID uuid.UUID, symptoms string) (string, error)
}

// MedicineRequest represents the JSON body for personalised advice
// swagger:model MedicineRequest
type MedicineRequest struct {
	// Symptoms described by the user
	// required: true
	// default: sore throat and mild fever
	Symptoms string `json:"symptoms"`
}

// MedicineResponse represents the personalised advice reply
// swagger:model MedicineResponse
type MedicineResponse struct {
	// Advice text
	Advice string `json:"advice"`
}

// MedicineErrorResponse represents an error response
// swagger:model MedicineErrorResponse
type MedicineErrorResponse struct {
	// Error message
	// default: symptoms is required
	Error string `json:"error"`
}

// NewMedicineHandler returns an HTTP handler for personalised medicine
// advice based on the caller's stored health profile.
// @Summary Personalised medicine advice
// @Tags assistant
// @Accept json
// @Produce json
// @Param medicineRequest body handlers.MedicineRequest true "Symptoms"
// @Success 200 {object} handlers.MedicineResponse "Advice"
// @Failure 400 {object} handlers.MedicineErrorResponse "Missing symptoms"
// @Failure 401 {object} handlers.MedicineErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /assistant/medicine [post]
func NewMedicineHandler(svc Adviser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(MedicineErrorResponse{
				Error: "not authenticated",
			})
			return
		}

		var req MedicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Symptoms == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MedicineErrorResponse{
				Error: "symptoms is required",
			})
			return
		}

		advice, err := svc.PersonalisedMedicine(r.Context(), userID, req.Symptoms)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrProfileNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(MedicineErrorResponse{
					Error: "profile not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(MedicineErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MedicineResponse{
			Advice: advice,
		})
	}
}
