package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/sylesh7/medinnovate/internal/models"
	"github.com/sylesh7/medinnovate/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func TestRegistrarService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)

	svc := services.NewRegistrarService(mockReader, mockWriter)

	candidate := models.UserDB{
		UserID:      "u2",
		UserName:    "bob",
		Email:       "bob@example.com",
		DateOfBirth: time.Date(1992, 3, 4, 0, 0, 0, 0, time.UTC),
		HeightCm:    180,
		WeightKg:    75,
		Gender:      models.GenderMale,
		BloodGroup:  "B+",
	}

	tests := []struct {
		name         string
		password     string
		existingUser *models.UserDB
		checkName    bool
		readerErr    error
		writerErr    error
		wantErr      error
	}{
		{
			name:      "successful registration",
			password:  "longenough1",
			checkName: true,
		},
		{
			name:     "password too short skips store entirely",
			password: "short",
			wantErr:  services.ErrPasswordTooShort,
		},
		{
			name:         "duplicate username",
			password:     "anotherpass",
			checkName:    true,
			existingUser: &models.UserDB{ID: uuid.New(), UserName: "bob"},
			wantErr:      services.ErrUsernameExists,
		},
		{
			name:      "reader error",
			password:  "longenough1",
			checkName: true,
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "writer error",
			password:  "longenough1",
			checkName: true,
			writerErr: errors.New("disk full"),
			wantErr:   errors.New("disk full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.checkName {
				mockReader.EXPECT().
					FindByName(gomock.Any(), candidate.UserName).
					Return(tt.existingUser, tt.readerErr)
			}

			if tt.checkName && tt.existingUser == nil && tt.readerErr == nil {
				mockWriter.EXPECT().
					Append(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, got models.UserDB) error {
						assert.Equal(t, candidate.UserName, got.UserName)
						assert.Equal(t, candidate.Email, got.Email)
						assert.Equal(t, candidate.BloodGroup, got.BloodGroup)
						// The stored value is a bcrypt hash, never the password.
						assert.NotEqual(t, tt.password, got.PasswordHash)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte(tt.password)))
						return tt.writerErr
					})
			}

			err := svc.Register(context.Background(), candidate, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistrarService_ValidationOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No reader or writer expectations: a short password must win before
	// the duplicate check runs.
	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)

	svc := services.NewRegistrarService(mockReader, mockWriter)

	err := svc.Register(context.Background(), models.UserDB{UserName: "bob"}, "short")
	assert.ErrorIs(t, err, services.ErrPasswordTooShort)
}
