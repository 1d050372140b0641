package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/store"
)

func TestEnvelopeTransformer_AlwaysIncludesVersion(t *testing.T) {
	tests := []struct {
		name   string
		status string
		input  any
	}{
		{"success response", "200", map[string]string{"key": "value"}},
		{"no content response", "204", nil},
		{"plain error", "400", errors.New("invalid input")},
		{"coded error", "409", &APIError{Code: "CONFLICT", Message: "already answered"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, tt.status, tt.input)
			require.NoError(t, err)

			raw, err := json.Marshal(result)
			require.NoError(t, err)

			var envelope map[string]any
			require.NoError(t, json.Unmarshal(raw, &envelope))
			assert.Equal(t, float64(EnvelopeVersion), envelope["v"])
			assert.NotContains(t, envelope, "version")
		})
	}
}

func TestEnvelopeTransformer_SuccessResponse(t *testing.T) {
	data := map[string]string{"title": "Middlemarch"}

	result, err := EnvelopeTransformer(nil, "200", data)
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok)
	assert.True(t, envelope.Success)
	assert.Equal(t, data, envelope.Data)
	assert.Empty(t, envelope.Error)
}

func TestEnvelopeTransformer_CodedError(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "400", &APIError{
		Code:    "VALIDATION",
		Message: "username is required",
		Details: map[string]string{"username": "is required"},
	})
	require.NoError(t, err)

	envelope, ok := result.(APIErrorEnvelope)
	require.True(t, ok)
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.Equal(t, "username is required", envelope.Message)
	assert.Equal(t, "username is required", envelope.Error)
	assert.Equal(t, map[string]string{"username": "is required"}, envelope.Details)
}

func TestNewAPIError_MapsDomainAndStoreErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"domain not found", domainerrors.NotFound("no active book"), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped forbidden", errors.Join(errors.New("ctx"), domainerrors.Forbidden("nope")), http.StatusForbidden, "FORBIDDEN"},
		{"store conflict", store.ErrAlreadyExists, http.StatusConflict, "CONFLICT"},
		{"invalid credentials", domainerrors.InvalidCredentials("bad"), http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := newAPIError(http.StatusInternalServerError, "unexpected", tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.GetStatus())
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestNewAPIError_HumaValidationBecomes400(t *testing.T) {
	apiErr := newAPIError(http.StatusUnprocessableEntity, "validation failed",
		&huma.ErrorDetail{Location: "body.password", Message: "expected required property password to be present"})

	assert.Equal(t, http.StatusBadRequest, apiErr.GetStatus())
	assert.Equal(t, "VALIDATION", apiErr.Code)
	assert.Equal(t, "body.password: expected required property password to be present", apiErr.Message)
}

func TestNewAPIError_HidesInternalMessages(t *testing.T) {
	apiErr := newAPIError(http.StatusInternalServerError, "database is locked", errors.New("sqlite: busy"))
	assert.Equal(t, "internal server error", apiErr.Message)
	assert.Equal(t, "INTERNAL", apiErr.Code)
}
