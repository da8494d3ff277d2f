// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package combat

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	requestutil "github.com/taibuivan/tabletop/internal/platform/request"
	"github.com/taibuivan/tabletop/internal/platform/respond"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

// # Handler Implementation

// Handler exposes combats and participants over HTTP.
type Handler struct {
	service *Service
	guard   func(http.Handler) http.Handler
}

// NewHandler constructs a [Handler]. guard protects every mutating route.
func NewHandler(service *Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, guard: guard}
}

// addParticipantsRequest is the body of POST /combats/{combatID}/participants.
type addParticipantsRequest struct {
	Participants []ParticipantInput `json:"participants"`
}

// Routes returns the /combats router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCombats)
	router.Get("/{combatID}", handler.getCombat)

	router.Group(func(gm chi.Router) {
		gm.Use(handler.guard)

		gm.Post("/", handler.createCombat)
		gm.Patch("/{combatID}", handler.updateCombat)
		gm.Delete("/{combatID}", handler.deleteCombat)

		gm.Post("/{combatID}/participants", handler.addParticipants)
		gm.Delete("/{combatID}/participants/{participantID}", handler.removeParticipant)
	})

	return router
}

/*
GET /api/v1/combats.

Request:
  - title, combat_participants_at_least, combat_participants_at_most,
    combat_participants_name: listing filters
  - sort_by: title | id | num_participants
  - sort_dir: asc | desc | none

Response:
  - 200: []Combat (paginated, each with its roster)
*/
func (handler *Handler) listCombats(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	filter, sort, err := listing.FromQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, total, err := handler.service.ListCombats(request.Context(), filter, sort, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getCombat(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "combatID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetCombat(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) createCombat(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateCombat(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
PATCH /api/v1/combats/{combatID}.

Request:
  - Body: UpdateInput. "participants" elements with an id update that
    participant; elements without one are appended.

Response:
  - 200: Combat
  - 400: round moved back, or active_participant_id outside the roster
*/
func (handler *Handler) updateCombat(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "combatID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateCombat(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteCombat(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "combatID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCombat(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/combats/{combatID}/participants.

Request:
  - Body: {"participants": [ParticipantInput]}

Response:
  - 200: Combat with its full roster
  - 409: an element references a missing entity or image; details name it
*/
func (handler *Handler) addParticipants(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "combatID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addParticipantsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.AddParticipants(request.Context(), id, input.Participants)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) removeParticipant(writer http.ResponseWriter, request *http.Request) {
	combatID, err := requestutil.ID(request, "combatID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	participantID, err := requestutil.ID(request, "participantID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.RemoveParticipant(request.Context(), combatID, participantID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}
