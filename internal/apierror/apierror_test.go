package apierror

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		write          func(c *gin.Context)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "bad request",
			write:          func(c *gin.Context) { BadRequest(c, "age must be at least 0") },
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":{"code":"INVALID_REQUEST","message":"age must be at least 0"}}`,
		},
		{
			name:           "not found",
			write:          func(c *gin.Context) { NotFound(c, "member not found") },
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":{"code":"NOT_FOUND","message":"member not found"}}`,
		},
		{
			name:           "team exists",
			write:          func(c *gin.Context) { Write(c, http.StatusConflict, CodeTeamExists, "team name already exists") },
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":{"code":"TEAM_EXISTS","message":"team name already exists"}}`,
		},
		{
			name:           "internal",
			write:          Internal,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.write(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Abort(c, http.StatusServiceUnavailable, CodeInternal, "unavailable")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
