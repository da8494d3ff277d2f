// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

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

type setRequest struct {
	CollectionIDs []int64 `json:"collection_ids"`
}

// Routes returns the /collections router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCollections)
	router.Get("/orphans", handler.listOrphans)
	router.Get("/{collectionID}", handler.getCollection)

	router.Group(func(gm chi.Router) {
		gm.Use(handler.guard)

		gm.Post("/", handler.createCollection)
		gm.Patch("/{collectionID}", handler.renameCollection)
		gm.Delete("/{collectionID}", handler.deleteCollection)
	})

	return router
}

// ImageRoutes returns the router mounted at /images/{imageID}/collections.
func (handler *Handler) ImageRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listImageCollections)

	router.Group(func(gm chi.Router) {
		gm.Use(handler.guard)

		gm.Put("/", handler.setImageCollections)
		gm.Post("/{collectionID}", handler.addImage)
		gm.Delete("/{collectionID}", handler.removeImage)
	})

	return router
}

func (handler *Handler) listCollections(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	filter, sort, err := listing.FromQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, total, err := handler.service.ListCollections(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) listOrphans(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.service.Orphans(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

func (handler *Handler) getCollection(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "collectionID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetCollection(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) createCollection(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateCollection(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) renameCollection(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "collectionID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.RenameCollection(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteCollection(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "collectionID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCollection(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Membership

func (handler *Handler) listImageCollections(writer http.ResponseWriter, request *http.Request) {
	imageID, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, err := handler.service.CollectionsOf(request.Context(), imageID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

func (handler *Handler) setImageCollections(writer http.ResponseWriter, request *http.Request) {
	imageID, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, err := handler.service.SetCollections(request.Context(), imageID, input.CollectionIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

func (handler *Handler) addImage(writer http.ResponseWriter, request *http.Request) {
	imageID, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	collectionID, err := requestutil.ID(request, "collectionID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddImage(request.Context(), imageID, collectionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) removeImage(writer http.ResponseWriter, request *http.Request) {
	imageID, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	collectionID, err := requestutil.ID(request, "collectionID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveImage(request.Context(), imageID, collectionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
