package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/formation"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/roster"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/resilience"
	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusCreated, map[string]string{"team_id": "team-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "2.0", body["apiVersion"])
	assert.Contains(t, body, "data")
	assert.NotContains(t, body, "error")
}

func TestWriteError_HidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: connection refused to 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errorObj, ok := decodeEnvelope(t, rec)["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "internal server error", errorObj["message"])
	assert.Equal(t, "INTERNAL", errorObj["status"])
}

func TestWriteError_CarriesReason(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: price 7.00 over balance 5.00", roster.ErrInsufficientFunds))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errorObj, ok := decodeEnvelope(t, rec)["error"].(map[string]any)
	require.True(t, ok)
	items, ok := errorObj["errors"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item, _ := items[0].(map[string]any)
	assert.Equal(t, "insufficientFunds", item["reason"])
	assert.Equal(t, errorDomain, item["domain"])
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		reason string
	}{
		{roster.ErrMarketClosed, http.StatusConflict, "marketClosed"},
		{roster.ErrSquadFull, http.StatusUnprocessableEntity, "squadFull"},
		{roster.ErrSlotLimitExceeded, http.StatusUnprocessableEntity, "slotLimitExceeded"},
		{roster.ErrIncompleteSquad, http.StatusUnprocessableEntity, "incompleteSquad"},
		{roster.ErrNoCaptain, http.StatusUnprocessableEntity, "noCaptain"},
		{roster.ErrConfirmationRequired, http.StatusConflict, "confirmationRequired"},
		{usecase.ErrConfirmationExpired, http.StatusGone, "confirmationExpired"},
		{usecase.ErrInvalidCode, http.StatusNotFound, "invalidCode"},
		{usecase.ErrAlreadyMember, http.StatusConflict, "alreadyMember"},
		{usecase.ErrPlayerInUse, http.StatusConflict, "playerInUse"},
		{usecase.ErrPersistenceFailure, http.StatusServiceUnavailable, "persistenceFailure"},
		{resilience.ErrOpen, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{formation.ErrUnknownScheme, http.StatusBadRequest, "invalidInput"},
		{money.ErrInvalidAmount, http.StatusBadRequest, "invalidInput"},
		{usecase.ErrNotFound, http.StatusNotFound, "notFound"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			got := mapError(fmt.Errorf("wrapped: %w", tt.err))
			assert.Equal(t, tt.status, got.HTTPStatus)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}
