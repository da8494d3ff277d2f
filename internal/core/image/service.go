// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/tabletop/internal/core/tag"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/pagination"
	"github.com/taibuivan/tabletop/pkg/slice"
)

const maxNameLength = 200

// Service holds the image rules.
type Service struct {
	repo   Repository
	ranker Ranker
	logger *slog.Logger
}

func NewService(repo Repository, ranker Ranker, logger *slog.Logger) *Service {
	return &Service{repo: repo, ranker: ranker, logger: logger}
}

func (service *Service) ListImages(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Image, int, error) {
	return service.repo.List(context, filter, sort, page)
}

func (service *Service) GetImage(context context.Context, id int64) (*Image, error) {
	return service.repo.FindByID(context, id)
}

// RandomImage picks any image of kind. NotFound when there is none.
func (service *Service) RandomImage(context context.Context, kind Type) (*Image, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldType, string(kind), Types...)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	return service.repo.Random(context, kind)
}

func (service *Service) CreateImage(context context.Context, input CreateInput) (*Image, error) {
	input.Path = strings.TrimSpace(input.Path)
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldPath, input.Path)
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLength)
	validator.OneOf(FieldType, string(input.Type), Types...)
	validator.NonNegative(FieldDimensionX, input.DimensionX)
	validator.NonNegative(FieldDimensionY, input.DimensionY)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created, err := service.repo.Create(context, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("image_created",
		slog.Int64("image_id", created.ID),
		slog.String("type", string(created.Type)),
	)
	return created, nil
}

func (service *Service) UpdateImage(context context.Context, id int64, input UpdateInput) (*Image, error) {
	validator := &validate.Validator{}
	if input.Path != nil {
		*input.Path = strings.TrimSpace(*input.Path)
		validator.Required(FieldPath, *input.Path)
	}
	if input.Name != nil {
		*input.Name = strings.TrimSpace(*input.Name)
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, maxNameLength)
	}
	if input.Type != nil {
		validator.OneOf(FieldType, string(*input.Type), Types...)
	}
	if input.DimensionX != nil {
		validator.NonNegative(FieldDimensionX, *input.DimensionX)
	}
	if input.DimensionY != nil {
		validator.NonNegative(FieldDimensionY, *input.DimensionY)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	updated, err := service.repo.Update(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("image_updated", slog.Int64("image_id", id))
	return updated, nil
}

func (service *Service) DeleteImage(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("image_deleted", slog.Int64("image_id", id))
	return nil
}

// Thumbnail sizes a thumbnail of the stored image.
func (service *Service) Thumbnail(context context.Context, id int64, scale Scale) (Size, error) {
	image, err := service.repo.FindByID(context, id)
	if err != nil {
		return Size{}, err
	}
	return ThumbnailSize(image.DimensionX, image.DimensionY, scale)
}

/*
Match ranks images by how many of tagIDs they carry.

Description: The ranking comes from the tag index; the images are then
loaded in ranked order. An image deleted between the two steps is skipped.

Parameters:
  - tagIDs: []int64 (empty matches nothing)
  - limit: int (non-positive uses the configured default)

Returns:
  - []Match: Best match first
*/
func (service *Service) Match(context context.Context, tagIDs []int64, limit int) ([]Match, error) {
	validator := &validate.Validator{}
	for _, id := range tagIDs {
		validator.PositiveID(FieldTags, id)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 1. Rank
	ranked, err := service.ranker.RankImages(context, tagIDs, limit)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return []Match{}, nil
	}

	// 2. Load the ranked images
	found, err := service.repo.FindMany(context, slice.Map(ranked, rankedImage))
	if err != nil {
		return nil, err
	}
	byID := slice.Index(found, imageID)

	// 3. Zip in rank order
	matches := make([]Match, 0, len(ranked))
	for _, entry := range ranked {
		image, ok := byID[entry.ImageID]
		if !ok {
			continue
		}
		matches = append(matches, Match{Image: image, MatchCount: entry.MatchCount, TagIDs: entry.TagIDs})
	}
	return matches, nil
}

func rankedImage(entry tag.Match) int64 { return entry.ImageID }

func imageID(image Image) int64 { return image.ID }
