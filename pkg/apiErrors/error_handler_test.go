package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	recorder := httptest.NewRecorder()
	WriteError(recorder, ErrPipelineRunning, "a run is in progress", nil)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, APIError{Code: ErrPipelineRunning, Message: "a run is in progress"}, body)
}

func TestStatusFor_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor("NOPE"))
}

func TestFromError(t *testing.T) {
	assert.Equal(t, APIError{Code: ErrDatabaseOperation, Message: "boom"}, FromError(errors.New("boom"), ErrDatabaseOperation))
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrDatabaseOperation).Code)
}
