// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	requestutil "github.com/taibuivan/tabletop/internal/platform/request"
	"github.com/taibuivan/tabletop/internal/platform/respond"
	"github.com/taibuivan/tabletop/pkg/convert"
	"github.com/taibuivan/tabletop/pkg/pagination"
	"github.com/taibuivan/tabletop/pkg/query"
)

// # HTTP Handler

// Handler serves /images. The tag and collection routers of one image are
// mounted beneath it.
type Handler struct {
	service     *Service
	guard       func(http.Handler) http.Handler
	tags        http.Handler
	collections http.Handler
}

func NewHandler(service *Service, guard func(http.Handler) http.Handler, tags, collections http.Handler) *Handler {
	return &Handler{service: service, guard: guard, tags: tags, collections: collections}
}

/*
Routes returns the /images router.

	GET    /                         list (filters: name, type, types)
	GET    /random?type=map          any image of a type
	GET    /match?tags=1,2&limit=5   rank by shared tags
	GET    /{imageID}
	GET    /{imageID}/thumbnail-size ?width=&height= or ?scale=
	POST   /                         GM only
	PATCH  /{imageID}                GM only
	DELETE /{imageID}                GM only
	/{imageID}/tags, /{imageID}/collections
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listImages)
	router.Get("/random", handler.randomImage)
	router.Get("/match", handler.matchImages)

	router.Route("/{imageID}", func(image chi.Router) {
		image.Get("/", handler.getImage)
		image.Get("/thumbnail-size", handler.thumbnailSize)

		image.With(handler.guard).Patch("/", handler.updateImage)
		image.With(handler.guard).Delete("/", handler.deleteImage)

		image.Mount("/tags", handler.tags)
		image.Mount("/collections", handler.collections)
	})

	router.With(handler.guard).Post("/", handler.createImage)

	return router
}

func (handler *Handler) listImages(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	filter, sort, err := listing.FromQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, total, err := handler.service.ListImages(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) randomImage(writer http.ResponseWriter, request *http.Request) {
	kind := Type(request.URL.Query().Get(FieldType))

	item, err := handler.service.RandomImage(request.Context(), kind)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) matchImages(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	tagIDs, err := query.IDs(values.Get(FieldTags))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid tag list",
			apperr.FieldError{Field: FieldTags, Message: err.Error()}))
		return
	}

	items, err := handler.service.Match(request.Context(), tagIDs, convert.ToIntD(values.Get("limit"), 0))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

func (handler *Handler) getImage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetImage(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) thumbnailSize(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	scale, err := scaleFromQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	size, err := handler.service.Thumbnail(request.Context(), id, scale)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, size)
}

func (handler *Handler) createImage(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateImage(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) updateImage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateImage(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteImage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "imageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteImage(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func scaleFromQuery(request *http.Request) (Scale, error) {
	values := request.URL.Query()
	var scale Scale
	var err error

	if scale.Width, err = convert.IntPointer(values.Get(FieldWidth)); err != nil {
		return scale, malformed(FieldWidth, err)
	}
	if scale.Height, err = convert.IntPointer(values.Get(FieldHeight)); err != nil {
		return scale, malformed(FieldHeight, err)
	}
	if scale.Scale, err = convert.FloatPointer(values.Get(FieldScale)); err != nil {
		return scale, malformed(FieldScale, err)
	}
	return scale, nil
}

func malformed(field string, err error) error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: err.Error()})
}
