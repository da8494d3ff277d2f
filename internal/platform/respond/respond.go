// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes every HTTP response body of the API.

Success bodies carry a "data" member (plus "meta" on paginated lists); errors
carry "error", "code" and, for validation and conflict failures, "details"
naming each offending field, e.g. participants[2].from_entity_id.
*/
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/ctxutil"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

// # Envelopes

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// # Success

// JSON writes payload as-is with the given status.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

func Paginated(writer http.ResponseWriter, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: metadata})
}

func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// # Errors

// PayloadTooLarge is the code of a body cut off by [http.MaxBytesReader].
const PayloadTooLarge = "PAYLOAD_TOO_LARGE"

/*
Error renders err as an error envelope.

An [*apperr.AppError] anywhere in the chain is rendered as-is. A body that
overflowed its byte limit becomes 413. Anything else is an internal error:
its text never reaches the client, only the request log.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := classify(err)
	logger := ctxutil.Logger(request.Context())

	switch {
	case appError.HTTPStatus >= http.StatusInternalServerError:
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.RequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	default:
		logger.DebugContext(request.Context(), "api_client_error",
			slog.String("code", appError.Code),
			slog.Int("details", len(appError.Details)),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

func classify(err error) *apperr.AppError {
	if appError := apperr.As(err); appError != nil {
		return appError
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &apperr.AppError{
			Code:       PayloadTooLarge,
			Message:    "Request body is too large",
			HTTPStatus: http.StatusRequestEntityTooLarge,
			Cause:      err,
		}
	}

	return apperr.Internal(err)
}
