// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rolltable

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

/*
Routes returns the /rolltables router.

	GET    /                     list (filter: name; sort: name, id)
	GET    /{rolltableID}
	POST   /                     GM only, rows nested
	PATCH  /{rolltableID}        GM only, rows replaced when sent
	DELETE /{rolltableID}        GM only
	POST   /{rolltableID}/rows   GM only, returns the table
	DELETE /rows/{rowID}         GM only, returns the table
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listRollTables)
	router.Get("/{rolltableID}", handler.getRollTable)

	router.Group(func(gm chi.Router) {
		gm.Use(handler.guard)

		gm.Post("/", handler.createRollTable)
		gm.Patch("/{rolltableID}", handler.updateRollTable)
		gm.Delete("/{rolltableID}", handler.deleteRollTable)
		gm.Post("/{rolltableID}/rows", handler.addRow)
		gm.Delete("/rows/{rowID}", handler.deleteRow)
	})

	return router
}

func (handler *Handler) listRollTables(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	filter, sort, err := listing.FromQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, total, err := handler.service.ListRollTables(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getRollTable(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "rolltableID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetRollTable(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) createRollTable(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateRollTable(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) updateRollTable(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "rolltableID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateRollTable(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteRollTable(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "rolltableID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteRollTable(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) addRow(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "rolltableID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RowInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.AddRow(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) deleteRow(writer http.ResponseWriter, request *http.Request) {
	rowID, err := requestutil.ID(request, "rowID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.DeleteRow(request.Context(), rowID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}
