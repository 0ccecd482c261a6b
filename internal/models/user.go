package models

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted at registration.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// BloodGroups lists the eight ABO/Rh combinations accepted at registration.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// UserDB represents a user record in the database.
//
// UserID is the login identifier; UserName is the identifier checked for
// uniqueness at registration. Callers keep them equal by convention, the
// store does not enforce it.
type UserDB struct {
	ID           uuid.UUID `json:"id" db:"id"`                       // Surrogate primary key
	UserID       string    `json:"user_id" db:"user_id"`             // Login identifier
	UserName     string    `json:"user_name" db:"user_name"`         // Registration uniqueness key
	PasswordHash string    `json:"-" db:"password_hash"`             // bcrypt hash, salt embedded
	Email        string    `json:"email" db:"email"`                 // User email
	DateOfBirth  time.Time `json:"date_of_birth" db:"date_of_birth"` // Date of birth
	HeightCm     float64   `json:"height_cm" db:"height_cm"`         // Height in centimeters, 0-350
	WeightKg     float64   `json:"weight_kg" db:"weight_kg"`         // Weight in kilograms, 0-200
	Gender       string    `json:"gender" db:"gender"`               // Male | Female | Other
	BloodGroup   string    `json:"blood_group" db:"blood_group"`     // One of BloodGroups
	CreatedAt    time.Time `json:"created_at" db:"created_at"`       // Creation timestamp
}
