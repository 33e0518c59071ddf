package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"date": "date is required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, "date is required", body["error"].(map[string]interface{})["date"])
}

func TestHelpers_DefaultMessages(t *testing.T) {
	tests := []struct {
		write   func(http.ResponseWriter, string)
		status  int
		message string
	}{
		{BadRequest, http.StatusBadRequest, "Bad request"},
		{Unauthorized, http.StatusUnauthorized, "Unauthorized"},
		{NotFound, http.StatusNotFound, "Resource not found"},
		{Conflict, http.StatusConflict, "Conflict"},
		{InternalServerError, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		tt.write(rec, "")
		assert.Equal(t, tt.status, rec.Code)
		assert.Equal(t, tt.message, decode(t, rec)["message"])
	}
}

func TestJSON_RawArray(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, []string{})
	assert.JSONEq(t, `[]`, rec.Body.String())
}
