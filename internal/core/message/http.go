// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	requestutil "github.com/taibuivan/tabletop/internal/platform/request"
	"github.com/taibuivan/tabletop/internal/platform/respond"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

type Handler struct {
	service *Service
	guard   func(http.Handler) http.Handler
}

func NewHandler(service *Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, guard: guard}
}

// Routes returns the /messages router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMessages)
	router.Get("/random", handler.randomMessage)
	router.Get("/{messageID}", handler.getMessage)

	router.Group(func(gm chi.Router) {
		gm.Use(handler.guard)

		gm.Post("/", handler.createMessage)
		gm.Put("/{messageID}", handler.updateMessage)
		gm.Delete("/{messageID}", handler.deleteMessage)
	})

	return router
}

func (handler *Handler) listMessages(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	filter, sort, err := listing.FromQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, total, err := handler.service.ListMessages(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) randomMessage(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.RandomMessage(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) getMessage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "messageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetMessage(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) createMessage(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateMessage(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) updateMessage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "messageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateMessage(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteMessage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "messageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMessage(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
