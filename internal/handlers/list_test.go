package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/dhatchu14/user-management-api/internal/models"
)

func TestListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		target        string
		mockSetup     func(m *MockLister)
		expectedCode  int
		expectedUsers int
		expectedCount int64
	}{
		{
			name:   "defaults applied",
			target: "/api/users/",
			mockSetup: func(m *MockLister) {
				m.EXPECT().
					List(gomock.Any(), 0, 100).
					Return([]models.UserDB{{ID: 1}}, int64(1), nil)
			},
			expectedCode:  200,
			expectedUsers: 1,
			expectedCount: 1,
		},
		{
			name:   "page smaller than total",
			target: "/api/users/?skip=0&limit=2",
			mockSetup: func(m *MockLister) {
				m.EXPECT().
					List(gomock.Any(), 0, 2).
					Return([]models.UserDB{{ID: 1}, {ID: 2}}, int64(5), nil)
			},
			expectedCode:  200,
			expectedUsers: 2,
			expectedCount: 5,
		},
		{
			name:         "negative skip",
			target:       "/api/users/?skip=-1",
			expectedCode: 400,
		},
		{
			name:         "zero limit",
			target:       "/api/users/?limit=0",
			expectedCode: 400,
		},
		{
			name:         "limit above maximum",
			target:       "/api/users/?limit=101",
			expectedCode: 400,
		},
		{
			name:         "non-numeric skip",
			target:       "/api/users/?skip=abc",
			expectedCode: 400,
		},
		{
			name:   "internal server error",
			target: "/api/users/",
			mockSetup: func(m *MockLister) {
				m.EXPECT().
					List(gomock.Any(), 0, 100).
					Return(nil, int64(0), errors.New("database failure"))
			},
			expectedCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLister(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewListUsersHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == 200 {
				var resp models.UserListResponse
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Len(t, resp.Users, tt.expectedUsers)
				assert.Equal(t, tt.expectedCount, resp.Count)
			}
		})
	}
}
