package services

import (
	"context"
	"errors"

	"github.com/sylesh7/medinnovate/internal/logger"
	"github.com/sylesh7/medinnovate/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrUsernameExists   = errors.New("username already exists")
)

// MinPasswordLength is enforced at registration only, never at login.
const MinPasswordLength = 8

// UserWriter defines write operations for users.
type UserWriter interface {
	Append(ctx context.Context, user models.UserDB) error
}

// RegistrarService validates and creates new account records.
//
// Uniqueness is checked against user_name; the store itself accepts any
// append. Email, date of birth and numeric bounds arrive pre-validated
// from the input layer and are not re-checked here.
type RegistrarService struct {
	reader UserReader
	writer UserWriter
}

// NewRegistrarService creates a new RegistrarService instance.
func NewRegistrarService(reader UserReader, writer UserWriter) *RegistrarService {
	return &RegistrarService{
		reader: reader,
		writer: writer,
	}
}

// Register validates the candidate and appends it to the store. Checks
// short-circuit in order: password length, duplicate user_name, write.
func (svc *RegistrarService) Register(ctx context.Context, candidate models.UserDB, password string) error {
	if len(password) < MinPasswordLength {
		logger.Log.Errorw("password too short", "user_name", candidate.UserName)
		return ErrPasswordTooShort
	}

	existing, err := svc.reader.FindByName(ctx, candidate.UserName)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if existing != nil {
		logger.Log.Errorw("username already exists", "user_name", candidate.UserName)
		return ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}
	candidate.PasswordHash = string(hashedPassword)

	if err := svc.writer.Append(ctx, candidate); err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	return nil
}
