package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sylesh7/medinnovate/internal/logger"
	"github.com/sylesh7/medinnovate/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserDoesNotExist   = errors.New("user id does not exist")
	ErrInvalidCredentials = errors.New("invalid user id or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	FindByID(ctx context.Context, userID string) (*models.UserDB, error)
	FindByName(ctx context.Context, userName string) (*models.UserDB, error)
}

// JWTGenerator defines an interface for generating session tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// AuthService verifies credentials against the user store.
//
// Lookup is by user_id (the login identifier), not user_name; callers keep
// the two equal by convention. No lockout or attempt counting.
type AuthService struct {
	reader UserReader
	jwt    JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		jwt:    jwt,
	}
}

// Login authenticates a user and returns a session token carrying the
// record's surrogate id. The token is the explicit "current user" value;
// there is no ambient session state.
func (svc *AuthService) Login(ctx context.Context, userID, password string) (string, error) {
	user, err := svc.reader.FindByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "user_id", userID)
		return "", ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "user_id", userID)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}
