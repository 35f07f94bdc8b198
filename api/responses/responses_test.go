package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/types"
)

func decodeError(t *testing.T, body []byte) types.ErrorEnvelope {
	t.Helper()
	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestWriteSuccessWrapsData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"status": "ok"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope types.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestWriteErrorPassesBackendMessageVerbatim(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeBackend, "Insufficient stock for product X"))

	assert.Equal(t, 422, rec.Code)
	envelope := decodeError(t, rec.Body.Bytes())
	assert.Equal(t, "BACKEND_REJECTION", envelope.Error.Code)
	assert.Equal(t, "Insufficient stock for product X", envelope.Error.Message)
}

func TestWriteErrorMasksInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "redis pool exhausted at 10.0.0.4"))

	assert.Equal(t, 500, rec.Code)
	envelope := decodeError(t, rec.Body.Bytes())
	assert.NotContains(t, envelope.Error.Message, "redis")
}

func TestWriteErrorUntypedBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, errors.New("boom"))

	assert.Equal(t, 500, rec.Code)
	envelope := decodeError(t, rec.Body.Bytes())
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)
}

func TestWriteErrorIncludesValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"quantity": "must be at least 1"})
	WriteError(context.Background(), nil, rec, err)

	assert.Equal(t, 400, rec.Code)
	envelope := decodeError(t, rec.Body.Bytes())
	details, ok := envelope.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "must be at least 1", details["quantity"])
}
