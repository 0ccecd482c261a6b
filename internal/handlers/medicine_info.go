package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sylesh7/medinnovate/internal/logger"
)

// MedicineInformer defines the interface for medicine lookups.
type MedicineInformer interface {
	MedicineInfo(ctx context.Context, medicineName string) (string, error)
}

// MedicineInfoResponse represents the medicine information reply
// swagger:model MedicineInfoResponse
type MedicineInfoResponse struct {
	// Medicine name as queried
	Name string `json:"name"`
	// Information text
	Info string `json:"info"`
}

// NewMedicineInfoHandler returns an HTTP handler describing a named
// medicine.
// @Summary Medicine information
// @Tags assistant
// @Produce json
// @Param name query string true "Medicine name"
// @Success 200 {object} handlers.MedicineInfoResponse "Medicine information"
// @Failure 400 {object} handlers.MedicineErrorResponse "Missing name"
// @Security BearerAuth
// @Router /medicine-info [get]
func NewMedicineInfoHandler(svc MedicineInformer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MedicineErrorResponse{
				Error: "name query parameter is required",
			})
			return
		}

		info, err := svc.MedicineInfo(r.Context(), name)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(MedicineErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MedicineInfoResponse{
			Name: name,
			Info: info,
		})
	}
}
