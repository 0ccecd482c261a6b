package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/sylesh7/medinnovate/internal/models"
	"github.com/sylesh7/medinnovate/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockJWT)

	password := "longpass1"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	recordID := uuid.New()
	known := &models.UserDB{ID: recordID, UserID: "u1", UserName: "alice", PasswordHash: string(hashed)}

	tests := []struct {
		name      string
		userID    string
		loginPass string
		user      *models.UserDB
		readerErr error
		jwtErr    error
		wantToken string
		wantErr   error
	}{
		{
			name:      "successful login",
			userID:    "u1",
			loginPass: password,
			user:      known,
			wantToken: "token123",
		},
		{
			name:      "wrong password",
			userID:    "u1",
			loginPass: "wrongpass",
			user:      known,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "unknown user id",
			userID:    "ghost",
			loginPass: "anything",
			user:      nil,
			wantErr:   services.ErrUserDoesNotExist,
		},
		{
			name:      "short password accepted at login",
			userID:    "u1",
			loginPass: "nope",
			user:      known,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			userID:    "u1",
			loginPass: password,
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "jwt error",
			userID:    "u1",
			loginPass: password,
			user:      known,
			jwtErr:    errors.New("sign error"),
			wantErr:   errors.New("sign error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				FindByID(gomock.Any(), tt.userID).
				Return(tt.user, tt.readerErr)

			if tt.user != nil && tt.readerErr == nil && tt.loginPass == password {
				mockJWT.EXPECT().
					Generate(gomock.Any(), recordID).
					Return(tt.wantToken, tt.jwtErr)
			}

			token, err := svc.Login(context.Background(), tt.userID, tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}
