// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tabletop/internal/platform/request"
	"github.com/taibuivan/tabletop/internal/platform/respond"
	"github.com/taibuivan/tabletop/internal/platform/sec"
)

// Handler implements the authentication endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
Routes returns the /auth router.

	POST /token  exchanges the game master password for an access token
	GET  /me     reports the caller's role (viewer when anonymous)
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/token", handler.token)
	router.Get("/me", handler.me)

	return router
}

type tokenRequest struct {
	Password string `json:"password"`
}

func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.Login(request.Context(), input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, token)
}

type identity struct {
	Subject string `json:"subject,omitempty"`
	Role    string `json:"role"`
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Claims(request)
	if claims == nil {
		respond.OK(writer, identity{Role: string(sec.RoleViewer)})
		return
	}

	respond.OK(writer, identity{Subject: claims.Subject, Role: claims.Role})
}
