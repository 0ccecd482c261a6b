package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sylesh7/medinnovate/internal/logger"
	"github.com/sylesh7/medinnovate/internal/models"
	"github.com/sylesh7/medinnovate/internal/services"
)

// Dispatcher defines the interface that the alert service must implement.
type Dispatcher interface {
	Dispatch(ctx context.Context, event models.AlertEvent) ([]models.DeliveryOutcome, error)
}

// AlertRequest represents the JSON body for an emergency alert
// swagger:model AlertRequest
type AlertRequest struct {
	// Name of the person raising the alert
	// required: true
	// default: alice
	SenderName string `json:"sender_name"`

	// Free-text emergency message
	// required: true
	// default: I need help immediately
	Message string `json:"message"`

	// Optional coordinate string captured client-side; empty means
	// resolve server-side
	// default: 12.9716,77.5946
	Location string `json:"location,omitempty"`
}

// AlertResponse represents the per-recipient outcomes of a dispatch
// swagger:model AlertResponse
type AlertResponse struct {
	// One outcome per configured recipient, in configured order
	Outcomes []models.DeliveryOutcome `json:"outcomes"`
}

// AlertErrorResponse represents an error response for alert dispatch
// swagger:model AlertErrorResponse
type AlertErrorResponse struct {
	// Error message
	// default: sender name and message are required
	Error string `json:"error"`
}

// NewAlertHandler returns an HTTP handler for emergency alert dispatch.
// @Summary Dispatch an emergency alert
// @Description Composes an alert message and fans it out to every configured recipient, reporting each recipient's outcome independently.
// @Tags alert
// @Accept json
// @Produce json
// @Param alertRequest body handlers.AlertRequest true "Alert request"
// @Success 200 {object} handlers.AlertResponse "Per-recipient delivery outcomes"
// @Failure 400 {object} handlers.AlertErrorResponse "Missing required field"
// @Failure 503 {object} handlers.AlertErrorResponse "Messaging credential or recipients not configured"
// @Security BearerAuth
// @Router /alert [post]
func NewAlertHandler(svc Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AlertRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(AlertErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		outcomes, err := svc.Dispatch(r.Context(), models.AlertEvent{
			SenderName: req.SenderName,
			Message:    req.Message,
			Location:   req.Location,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingField):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(AlertErrorResponse{
					Error: err.Error(),
				})
			case errors.Is(err, services.ErrMissingCredential),
				errors.Is(err, services.ErrNoRecipients):
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(AlertErrorResponse{
					Error: err.Error(),
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(AlertErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(AlertResponse{
			Outcomes: outcomes,
		})
	}
}
