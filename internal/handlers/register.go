package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sylesh7/medinnovate/internal/logger"
	"github.com/sylesh7/medinnovate/internal/models"
	"github.com/sylesh7/medinnovate/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, candidate models.UserDB, password string) error
}

// RegisterRequest represents the JSON body for account creation
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Login identifier
	// required: true
	// default: u1
	UserID string `json:"user_id"`

	// Display name, checked for uniqueness
	// required: true
	// default: alice
	UserName string `json:"user_name"`

	// Password, at least 8 characters
	// required: true
	// default: longpass1
	Password string `json:"password"`

	// Email
	// default: alice@example.com
	Email string `json:"email"`

	// Date of birth, YYYY-MM-DD
	// default: 1990-05-01
	DateOfBirth string `json:"date_of_birth"`

	// Height in centimeters
	// default: 170
	HeightCm float64 `json:"height_cm"`

	// Weight in kilograms
	// default: 60
	WeightKg float64 `json:"weight_kg"`

	// Gender: Male, Female or Other
	// default: Female
	Gender string `json:"gender"`

	// Blood group, one of the 8 ABO/Rh combinations
	// default: O+
	BloodGroup string `json:"blood_group"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// default: Account created successfully
	Message string `json:"message"`
}

// RegisterErrorResponse represents an error response for registration
// swagger:model RegisterErrorResponse
type RegisterErrorResponse struct {
	// Error message
	// default: Username already exists
	Error string `json:"error"`
}

// NewRegisterHandler returns an HTTP handler for account creation.
// @Summary Create a new account
// @Description Validates the candidate record and appends it to the user store. Password must be at least 8 characters; user_name must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "Account creation request"
// @Success 201 {object} handlers.RegisterResponse "Account created"
// @Failure 400 {object} handlers.RegisterErrorResponse "Validation failure / invalid request"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(RegisterErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		var dob time.Time
		if req.DateOfBirth != "" {
			var err error
			dob, err = time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(RegisterErrorResponse{
					Error: "date_of_birth must be YYYY-MM-DD",
				})
				return
			}
		}

		candidate := models.UserDB{
			UserID:      req.UserID,
			UserName:    req.UserName,
			Email:       req.Email,
			DateOfBirth: dob,
			HeightCm:    req.HeightCm,
			WeightKg:    req.WeightKg,
			Gender:      req.Gender,
			BloodGroup:  req.BloodGroup,
		}

		err := svc.Register(r.Context(), candidate, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPasswordTooShort):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(RegisterErrorResponse{
					Error: "Password must be at least 8 characters long",
				})
			case errors.Is(err, services.ErrUsernameExists):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(RegisterErrorResponse{
					Error: "Username already exists",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(RegisterErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(RegisterResponse{
			Message: "Account created successfully",
		})
	}
}
