package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_WritesStructuredBodyAndAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-123")

	Error(c, http.StatusNotFound, CodeUserNotFound, "user with id 7 not found", nil)

	assert.True(t, c.IsAborted())
	require.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, CodeUserNotFound, body.Code)
	assert.Equal(t, "user with id 7 not found", body.Message)
	assert.Equal(t, "req-123", body.RequestID)
	assert.False(t, body.Timestamp.IsZero())
}

func TestError_ZeroStatusDefaultsToBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, 0, CodeValidationFailed, "validation failed", map[string]string{"name": "is required"})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeValidationFailed, body.Code)

	details, ok := body.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
}
