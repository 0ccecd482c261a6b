package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestMedicineInfoHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		target       string
		mockSetup    func(m *MockMedicineInformer)
		expectedCode int
		expectedBody map[string]string
	}{
		{
			name:   "success",
			target: "/medicine-info?name=paracetamol",
			mockSetup: func(m *MockMedicineInformer) {
				m.EXPECT().
					MedicineInfo(gomock.Any(), "paracetamol").
					Return("Common analgesic and antipyretic.", nil)
			},
			expectedCode: 200,
			expectedBody: map[string]string{
				"name": "paracetamol",
				"info": "Common analgesic and antipyretic.",
			},
		},
		{
			name:         "missing name",
			target:       "/medicine-info",
			expectedCode: 400,
			expectedBody: map[string]string{"error": "name query parameter is required"},
		},
		{
			name:   "generator failure",
			target: "/medicine-info?name=paracetamol",
			mockSetup: func(m *MockMedicineInformer) {
				m.EXPECT().
					MedicineInfo(gomock.Any(), "paracetamol").
					Return("", errors.New("upstream unavailable"))
			},
			expectedCode: 500,
			expectedBody: map[string]string{"error": "Internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockMedicineInformer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rr := httptest.NewRecorder()

			NewMedicineInfoHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var got map[string]string
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			assert.Equal(t, tt.expectedBody, got)
		})
	}
}
