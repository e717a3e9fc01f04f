package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/formation"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/roster"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/resilience"
	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "cartola-paranaense"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// writeJSON encodes into a pooled buffer first so an encoding failure never
// leaves a half-written body behind a 2xx status.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":500,"message":"encode response","status":"INTERNAL"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "internal server error"
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, roster.ErrMarketClosed):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "marketClosed", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, roster.ErrSquadFull):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "squadFull", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, roster.ErrInsufficientFunds):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "insufficientFunds", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, roster.ErrSlotLimitExceeded):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "slotLimitExceeded", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, roster.ErrIncompleteSquad):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "incompleteSquad", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, roster.ErrNoCaptain):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "noCaptain", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, roster.ErrConfirmationRequired):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "confirmationRequired", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrConfirmationExpired):
		return mappedError{HTTPStatus: http.StatusGone, Reason: "confirmationExpired", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrInvalidCode):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "invalidCode", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrPlayerInUse):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "playerInUse", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrAlreadyMember):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "alreadyMember", Status: "ALREADY_EXISTS"}
	case errors.Is(err, usecase.ErrPersistenceFailure):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "persistenceFailure", Status: "UNAVAILABLE"}
	case errors.Is(err, usecase.ErrDependencyUnavailable), errors.Is(err, resilience.ErrOpen):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, formation.ErrUnknownScheme),
		errors.Is(err, money.ErrInvalidAmount):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}
