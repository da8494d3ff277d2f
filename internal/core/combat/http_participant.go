// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package combat

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tabletop/internal/platform/request"
	"github.com/taibuivan/tabletop/internal/platform/respond"
)

// ParticipantRoutes returns the /participants router, for edits that address
// a participant directly rather than through its combat.
func (handler *Handler) ParticipantRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{participantID}", handler.getParticipant)

	router.Group(func(gm chi.Router) {
		gm.Use(handler.guard)

		gm.Patch("/{participantID}", handler.updateParticipant)
		gm.Delete("/{participantID}", handler.deleteParticipant)
	})

	return router
}

func (handler *Handler) getParticipant(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "participantID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetParticipant(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) updateParticipant(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "participantID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch ParticipantPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateParticipant(request.Context(), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

func (handler *Handler) deleteParticipant(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "participantID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteParticipant(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
