// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	requestutil "github.com/taibuivan/tabletop/internal/platform/request"
	"github.com/taibuivan/tabletop/internal/platform/respond"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

// maxImportBytes caps the size of an uploaded catalog.
const maxImportBytes = 10 << 20

// # Handler Implementation

// Handler exposes the bestiary over HTTP.
type Handler struct {
	service  *Service
	importer *Importer
	guard    func(http.Handler) http.Handler
}

// NewHandler constructs a [Handler]. guard protects every mutating route.
func NewHandler(service *Service, importer *Importer, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, importer: importer, guard: guard}
}

// Routes returns the /entities router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listEntities)
	router.Get("/{entityID}", handler.getEntity)

	router.Group(func(gm chi.Router) {
		gm.Use(handler.guard)

		gm.Post("/", handler.createEntity)
		gm.Post("/import", handler.importEntities)
		gm.Patch("/{entityID}", handler.updateEntity)
		gm.Delete("/{entityID}", handler.deleteEntity)
	})

	return router
}

/*
GET /api/v1/entities.

Request:
  - name, is_PC, has_image, has_data, cr: listing filters
  - sort_by: name | id | ac | cr | initiative
  - sort_dir: asc | desc | none
  - page, limit: int

Response:
  - 200: []Entity (paginated)
*/
func (handler *Handler) listEntities(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	filter, sort, err := listing.FromQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, total, err := handler.service.ListEntities(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getEntity(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "entityID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetEntity(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) createEntity(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateEntity(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) updateEntity(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "entityID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateEntity(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteEntity(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "entityID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEntity(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/entities/import.

Description: Loads a catalog file sent as the raw request body. The format
comes from ?format=, else from a YAML Content-Type, else JSON.

Response:
  - 200: Report
*/
func (handler *Handler) importEntities(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get("format")
	if raw == "" {
		raw = string(FormatJSON)
		if strings.Contains(request.Header.Get("Content-Type"), "yaml") {
			raw = string(FormatYAML)
		}
	}

	format, err := ParseFormat(raw)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body := http.MaxBytesReader(writer, request.Body, maxImportBytes)
	report, err := handler.importer.Import(request.Context(), body, format)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}
