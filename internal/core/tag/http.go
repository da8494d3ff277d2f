// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	requestutil "github.com/taibuivan/tabletop/internal/platform/request"
	"github.com/taibuivan/tabletop/internal/platform/respond"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

// # Handler Implementation

type Handler struct {
	service *Service
	guard   func(http.Handler) http.Handler
}

func NewHandler(service *Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, guard: guard}
}

type labelRequest struct {
	Label string `json:"label"`
}

type mergeRequest struct {
	SourceID int64 `json:"source_id"`
}

type setRequest struct {
	TagIDs []int64 `json:"tag_ids"`
}

// Routes returns the /tags router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTags)
	router.Get("/orphans", handler.listOrphans)
	router.Get("/by-label/{label}", handler.getTagByLabel)
	router.Get("/{tagID}", handler.getTag)

	router.Group(func(gm chi.Router) {
		gm.Use(handler.guard)

		gm.Post("/", handler.createTag)
		gm.Patch("/{tagID}", handler.renameTag)
		gm.Delete("/{tagID}", handler.deleteTag)
		gm.Post("/{tagID}/merge", handler.mergeTags)
	})

	return router
}

// ImageRoutes returns the router mounted at /images/{imageID}/tags.
func (handler *Handler) ImageRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listImageTags)

	router.Group(func(gm chi.Router) {
		gm.Use(handler.guard)

		gm.Post("/", handler.applyLabel)
		gm.Put("/", handler.setImageTags)
		gm.Post("/{tagID}", handler.applyTag)
		gm.Delete("/{tagID}", handler.removeTag)
	})

	return router
}

// # Tags

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	filter, sort, err := listing.FromQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, total, err := handler.service.ListTags(request.Context(), filter, sort, page)
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

func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "tagID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetTag(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) getTagByLabel(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.GetTagByLabel(request.Context(), requestutil.Param(request, "label"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
POST /api/v1/tags.

Request:
  - Body: {"label": string}

Response:
  - 201: Tag, when the label was new
  - 200: Tag, when it already existed
*/
func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	var input labelRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, created, err := handler.service.GetOrCreate(request.Context(), input.Label)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if created {
		respond.Created(writer, item)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) renameTag(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "tagID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input labelRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.RenameTag(request.Context(), id, input.Label)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "tagID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteTag(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/tags/{tagID}/merge.

Request:
  - Body: {"source_id": int64}; the path tag is the target

Response:
  - 200: MergeReport
*/
func (handler *Handler) mergeTags(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "tagID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input mergeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.MergeTags(request.Context(), id, input.SourceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

// # Image Tagging

func (handler *Handler) listImageTags(writer http.ResponseWriter, request *http.Request) {
	imageID, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, err := handler.service.TagsOf(request.Context(), imageID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

// applyLabel tags the image by label, creating the tag when it is new.
func (handler *Handler) applyLabel(writer http.ResponseWriter, request *http.Request) {
	imageID, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input labelRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.ApplyLabel(request.Context(), imageID, input.Label)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) setImageTags(writer http.ResponseWriter, request *http.Request) {
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

	items, err := handler.service.SetTags(request.Context(), imageID, input.TagIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

func (handler *Handler) applyTag(writer http.ResponseWriter, request *http.Request) {
	imageID, tagID, ok := handler.pair(writer, request)
	if !ok {
		return
	}

	if err := handler.service.ApplyTag(request.Context(), imageID, tagID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) removeTag(writer http.ResponseWriter, request *http.Request) {
	imageID, tagID, ok := handler.pair(writer, request)
	if !ok {
		return
	}

	if err := handler.service.RemoveTag(request.Context(), imageID, tagID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// pair reads both path ids, writing the error response itself on failure.
func (handler *Handler) pair(writer http.ResponseWriter, request *http.Request) (int64, int64, bool) {
	imageID, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return 0, 0, false
	}

	tagID, err := requestutil.ID(request, "tagID")
	if err != nil {
		respond.Error(writer, request, err)
		return 0, 0, false
	}
	return imageID, tagID, true
}
