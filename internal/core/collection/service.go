// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

// Service holds the collection rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListCollections(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Collection, int, error) {
	return service.repo.List(context, filter, sort, page)
}

func (service *Service) GetCollection(context context.Context, id int64) (*Collection, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) Orphans(context context.Context) ([]Collection, error) {
	return service.repo.Orphans(context)
}

// CreateCollection stores a new collection. A taken name is a Conflict.
func (service *Service) CreateCollection(context context.Context, input Input) (*Collection, error) {
	name, err := validName(input.Name)
	if err != nil {
		return nil, err
	}

	created, err := service.repo.Create(context, name)
	if err != nil {
		return nil, err
	}

	service.logger.Info("collection_created",
		slog.Int64("collection_id", created.ID),
		slog.String("name", created.Name),
	)
	return created, nil
}

func (service *Service) RenameCollection(context context.Context, id int64, input Input) (*Collection, error) {
	name, err := validName(input.Name)
	if err != nil {
		return nil, err
	}

	renamed, err := service.repo.Rename(context, id, name)
	if err != nil {
		return nil, err
	}

	service.logger.Info("collection_renamed", slog.Int64("collection_id", id))
	return renamed, nil
}

func (service *Service) DeleteCollection(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("collection_deleted", slog.Int64("collection_id", id))
	return nil
}

// # Membership

// AddImage puts an image in a collection. Adding it twice, or with an
// unknown image or collection, is a Conflict.
func (service *Service) AddImage(context context.Context, imageID, collectionID int64) error {
	return service.repo.Apply(context, imageID, collectionID)
}

// RemoveImage takes an image out of a collection it must be in.
func (service *Service) RemoveImage(context context.Context, imageID, collectionID int64) error {
	return service.repo.Remove(context, imageID, collectionID)
}

// SetCollections makes the image a member of exactly collectionIDs,
// ignoring ids with no collection.
func (service *Service) SetCollections(context context.Context, imageID int64, collectionIDs []int64) ([]Collection, error) {
	validator := &validate.Validator{}
	for _, id := range collectionIDs {
		validator.PositiveID(FieldCollectionIDs, id)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	result, err := service.repo.SetCollections(context, imageID, collectionIDs)
	if err != nil {
		return nil, err
	}

	service.logger.Info("image_collections_set",
		slog.Int64("image_id", imageID),
		slog.Int("collections", len(result)),
	)
	return result, nil
}

func (service *Service) CollectionsOf(context context.Context, imageID int64) ([]Collection, error) {
	return service.repo.CollectionsOf(context, imageID)
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	return name, validator.Err()
}
