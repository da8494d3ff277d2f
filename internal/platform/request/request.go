// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path parameters and JSON bodies for the handlers.
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/ctxutil"
	"github.com/taibuivan/tabletop/internal/platform/sec"
	"github.com/taibuivan/tabletop/internal/platform/validate"
)

// MaxBodyBytes caps JSON request bodies. Catalog uploads set their own limit.
const MaxBodyBytes = 1 << 20

/*
DecodeJSON decodes the request body into target.

A body over [MaxBodyBytes] yields the underlying [*http.MaxBytesError] so it
renders as 413. Malformed JSON, a wrong field type or trailing data after the
document is a validation error; a type mismatch names the offending field.
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, MaxBodyBytes))

	if err := decoder.Decode(target); err != nil {
		return decodeError(err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.ValidationError("Request body must hold a single JSON document")
	}
	return nil
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}

	var typeError *json.UnmarshalTypeError
	if errors.As(err, &typeError) && typeError.Field != "" {
		return apperr.ValidationError("Invalid JSON payload", apperr.FieldError{
			Field:   typeError.Field,
			Message: fmt.Sprintf("Must be a %s", typeError.Type),
		})
	}

	return apperr.ValidationError("Invalid JSON payload")
}

// ID parses a positive integer path parameter such as {combatID}.
func ID(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return id, nil
}

func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns the caller's token claims, nil for anonymous viewers.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.Claims(request.Context())
}
