package handler

import (
	"net/http"
	"strings"
	"testing"

	sessionapp "coffee-server/internal/application/session"
	"coffee-server/internal/domain/parent"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatusHandler_CheckStatus(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		setupMock       func(*MockStatusGateway)
		expectedStatus  int
		expectedBody    string
		expectedContain string
	}{
		{
			name: "正常系: 親アプリの応答をそのまま返す",
			body: `{"userId":"user123","projectId":"proj-1"}`,
			setupMock: func(m *MockStatusGateway) {
				m.On("CheckStatus", mock.Anything, "user123", "proj-1").
					Return(&parent.StatusResult{StatusCode: http.StatusOK, Body: []byte(`{"isAdmin":true,"credits":120}`)}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"isAdmin":true,"credits":120}`,
		},
		{
			name: "正常系: snake_caseも受け付ける",
			body: `{"user_id":"user123","project_id":"proj-1"}`,
			setupMock: func(m *MockStatusGateway) {
				m.On("CheckStatus", mock.Anything, "user123", "proj-1").
					Return(&parent.StatusResult{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{}`,
		},
		{
			name: "正常系: 親アプリのエラーステータスも中継",
			body: `{"userId":"user123","projectId":"proj-1"}`,
			setupMock: func(m *MockStatusGateway) {
				m.On("CheckStatus", mock.Anything, "user123", "proj-1").
					Return(&parent.StatusResult{StatusCode: http.StatusNotFound, Body: []byte(`{"error":"Project not found"}`)}, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Project not found"}`,
		},
		{
			name:            "異常系: projectIdがない",
			body:            `{"userId":"user123"}`,
			expectedStatus:  http.StatusBadRequest,
			expectedContain: `"error":"Missing userId or projectId"`,
		},
		{
			name: "異常系: 親アプリに接続できない",
			body: `{"userId":"user123","projectId":"proj-1"}`,
			setupMock: func(m *MockStatusGateway) {
				m.On("CheckStatus", mock.Anything, "user123", "proj-1").Return(nil, parent.ErrUnavailable)
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedContain: `"error":"Status check failed"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := new(MockStatusGateway)
			if tt.setupMock != nil {
				tt.setupMock(gateway)
			}
			service := sessionapp.NewSessionApplicationService(gateway, newTestLogger(), newTestMetrics(t))
			handler := NewStatusHandler(service)

			rec := serve(t, handler.CheckStatus, http.MethodPost, "/api/status", strings.NewReader(tt.body), nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, rec.Body.String())
			}
			if tt.expectedContain != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedContain)
			}
			gateway.AssertExpectations(t)
		})
	}
}
