// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/tabletop/internal/platform/broadcast"
	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

// Event types written to a session channel.
const (
	EventUpdated = "session_updated"
	EventDeleted = "session_deleted"
)

// Service holds the session rules and announces every change.
type Service struct {
	repo      Repository
	publisher Publisher
	recorder  PublishRecorder
	logger    *slog.Logger
}

// NewService constructs a new [Service]. recorder may be nil.
func NewService(repo Repository, publisher Publisher, recorder PublishRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, recorder: recorder, logger: logger}
}

func (service *Service) ListSessions(context context.Context, page pagination.Params) ([]Session, int, error) {
	return service.repo.List(context, page)
}

func (service *Service) GetSession(context context.Context, id int64) (*Session, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) CreateSession(context context.Context, input CreateInput) (*Session, error) {
	title := strings.TrimSpace(input.Title)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, maxTitleLength)
	if input.MessageID != nil {
		validator.PositiveID(FieldMessageID, *input.MessageID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	mode, err := NewMode(input.Mode, input.ImageID, input.CombatID)
	if err != nil {
		return nil, err
	}

	created, err := service.repo.Create(context, Session{Title: title, Mode: mode, MessageID: input.MessageID})
	if err != nil {
		return nil, err
	}

	service.logger.Info("session_created",
		slog.Int64("session_id", created.ID),
		slog.String("mode", string(created.Mode.Name())),
	)
	return created, nil
}

/*
UpdateSession changes the title, the overlay message or the mode, then tells
the session's viewers.

Description: The update is committed before anything is published. A failed
publish is logged and counted but never fails the request: the stored state
is the source of truth and viewers resync on their next read.

Returns:
  - *Session: The session as stored
  - error: ValidationError on a bad body, NotFound, or Conflict when the new
    mode references a missing image or combat
*/
func (service *Service) UpdateSession(context context.Context, id int64, input UpdateInput) (*Session, error) {
	// 1. Validate
	change, err := validChange(input)
	if err != nil {
		return nil, err
	}

	// 2. Store
	updated, err := service.repo.Update(context, id, change)
	if err != nil {
		return nil, err
	}

	service.logger.Info("session_updated",
		slog.Int64("session_id", id),
		slog.String("mode", string(updated.Mode.Name())),
	)

	// 3. Announce
	service.publish(context, broadcast.Event{Type: EventUpdated, SessionID: id, Payload: updated})
	return updated, nil
}

func (service *Service) DeleteSession(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("session_deleted", slog.Int64("session_id", id))
	service.publish(context, broadcast.Event{Type: EventDeleted, SessionID: id})
	return nil
}

func (service *Service) publish(context context.Context, event broadcast.Event) {
	receivers, err := service.publisher.Publish(context, event)
	if service.recorder != nil {
		service.recorder.RecordPublish(err)
	}

	if err != nil {
		service.logger.Warn("session_publish_failed",
			slog.Int64("session_id", event.SessionID),
			slog.String("event", event.Type),
			slog.Any("error", err),
		)
		return
	}

	service.logger.Debug("session_published",
		slog.Int64("session_id", event.SessionID),
		slog.Int64("receivers", receivers),
	)
}

func validChange(input UpdateInput) (Change, error) {
	change := Change{MessageID: input.MessageID}

	validator := &validate.Validator{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, maxTitleLength)
		change.Title = &title
	}
	if input.MessageID.Present() && !input.MessageID.IsNull() {
		validator.PositiveID(FieldMessageID, input.MessageID.Get())
	}
	if err := validator.Err(); err != nil {
		return change, err
	}

	if input.Mode == nil {
		return change, modeless(input)
	}

	mode, err := NewMode(*input.Mode, input.ImageID, input.CombatID)
	if err != nil {
		return change, err
	}
	change.Mode = mode
	return change, nil
}
