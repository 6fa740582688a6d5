package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
)

func TestWriteError_ValidationFieldInEnvelope(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	WriteError(rec, ErrorParams{
		Code:    http.StatusBadRequest,
		ErrCode: "validation_failed",
		Err:     apperrors.ValidationField("title", "a title is required"),
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "validation_failed", body["error"])
	assert.Equal(t, "title", body["field"])
	assert.Contains(t, body["message"], "a title is required")
}

func TestWriteError_FieldOmittedWhenAbsent(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	WriteError(rec, ErrorParams{
		Code:    http.StatusConflict,
		ErrCode: "conflict",
		Err:     apperrors.Conflict("upload already decided"),
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	_, present := body["field"]
	assert.False(t, present)
}
