// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListMessages(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Message, int, error) {
	return service.repo.List(context, filter, sort, page)
}

func (service *Service) GetMessage(context context.Context, id int64) (*Message, error) {
	return service.repo.FindByID(context, id)
}

// RandomMessage picks any stored message. NotFound when there are none.
func (service *Service) RandomMessage(context context.Context) (*Message, error) {
	return service.repo.Random(context)
}

func (service *Service) CreateMessage(context context.Context, input Input) (*Message, error) {
	text, err := validText(input.Message)
	if err != nil {
		return nil, err
	}

	created, err := service.repo.Create(context, text)
	if err != nil {
		return nil, err
	}

	service.logger.Info("message_created", slog.Int64("message_id", created.ID))
	return created, nil
}

func (service *Service) UpdateMessage(context context.Context, id int64, input Input) (*Message, error) {
	text, err := validText(input.Message)
	if err != nil {
		return nil, err
	}

	updated, err := service.repo.Update(context, id, text)
	if err != nil {
		return nil, err
	}

	service.logger.Info("message_updated", slog.Int64("message_id", id))
	return updated, nil
}

func (service *Service) DeleteMessage(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("message_deleted", slog.Int64("message_id", id))
	return nil
}

// validText trims text and checks it fits the column.
func validText(text string) (string, error) {
	text = strings.TrimSpace(text)

	validator := &validate.Validator{}
	validator.Required(FieldMessage, text).MaxLen(FieldMessage, text, MaxLength)
	return text, validator.Err()
}
