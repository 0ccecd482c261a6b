package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sylesh7/medinnovate/internal/logger"
	"github.com/sylesh7/medinnovate/internal/models"
)

// ErrProfileNotFound is returned when the token's user record is gone.
var ErrProfileNotFound = errors.New("user profile not found")

// TextGenerator is the opaque generate(prompt) capability.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProfileReader resolves the stored record behind a session token.
type ProfileReader interface {
	FindByRecordID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
}

// AssistantService wraps the text-generation capability with the health
// assistant's prompt templates.
type AssistantService struct {
	gen    TextGenerator
	reader ProfileReader
}

// NewAssistantService creates a new AssistantService instance.
func NewAssistantService(gen TextGenerator, reader ProfileReader) *AssistantService {
	return &AssistantService{
		gen:    gen,
		reader: reader,
	}
}

// Chat passes a free-form message straight through to the model.
func (svc *AssistantService) Chat(ctx context.Context, message string) (string, error) {
	reply, err := svc.gen.Generate(ctx, message)
	if err != nil {
		logger.Log.Errorw("chat generation failed", "err", err)
		return "", err
	}
	return reply, nil
}

// MedicineInfo asks the model for usage, dosage and side effects of a
// named medicine.
func (svc *AssistantService) MedicineInfo(ctx context.Context, medicineName string) (string, error) {
	prompt := fmt.Sprintf(
		"Provide concise information about the medicine %q: what it is used for, typical adult dosage, common side effects, and important warnings.",
		medicineName,
	)
	reply, err := svc.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Log.Errorw("medicine info generation failed", "medicine", medicineName, "err", err)
		return "", err
	}
	return reply, nil
}

// PersonalisedMedicine folds the caller's stored health profile into the
// prompt before asking for advice on the described symptoms.
func (svc *AssistantService) PersonalisedMedicine(ctx context.Context, userRecordID uuid.UUID, symptoms string) (string, error) {
	user, err := svc.reader.FindByRecordID(ctx, userRecordID)
	if err != nil {
		logger.Log.Errorw("failed to load profile", "err", err)
		return "", err
	}
	if user == nil {
		return "", ErrProfileNotFound
	}

	age := int(time.Since(user.DateOfBirth).Hours() / 24 / 365.25)
	prompt := fmt.Sprintf(
		"Suggest suitable over-the-counter medicine and care advice for the following patient. "+
			"Age: %d. Gender: %s. Height: %.0f cm. Weight: %.0f kg. Blood group: %s. Symptoms: %s. "+
			"Include a reminder to consult a doctor for anything serious.",
		age, user.Gender, user.HeightCm, user.WeightKg, user.BloodGroup, symptoms,
	)

	reply, err := svc.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Log.Errorw("personalised medicine generation failed", "err", err)
		return "", err
	}
	return reply, nil
}
