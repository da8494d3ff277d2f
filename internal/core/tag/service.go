// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

// # Service Layer

// Service holds the tagging rules.
type Service struct {
	repo       Repository
	matchLimit int
	logger     *slog.Logger
}

// NewService constructs a new [Service]. A non-positive matchLimit falls
// back to [DefaultMatchLimit].
func NewService(repo Repository, matchLimit int, logger *slog.Logger) *Service {
	if matchLimit <= 0 {
		matchLimit = DefaultMatchLimit
	}
	return &Service{repo: repo, matchLimit: matchLimit, logger: logger}
}

// # Lookups

func (service *Service) ListTags(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Tag, int, error) {
	return service.repo.List(context, filter, sort, page)
}

func (service *Service) GetTag(context context.Context, id int64) (*Tag, error) {
	return service.repo.FindByID(context, id)
}

// GetTagByLabel looks a tag up by label, in any case.
func (service *Service) GetTagByLabel(context context.Context, label string) (*Tag, error) {
	return service.repo.FindByLabel(context, NormaliseLabel(label))
}

// Orphans lists the tags no image carries.
func (service *Service) Orphans(context context.Context) ([]Tag, error) {
	return service.repo.Orphans(context)
}

// # Management

/*
GetOrCreate returns the tag for label, creating it when needed.

Description: The label is normalised first. When two callers race on a new
label, the loser's insert hits the unique index and it reads the winner's
row instead.

Returns:
  - *Tag: The existing or new tag
  - bool: Whether the tag was created by this call
  - error: ValidationError for an empty label
*/
func (service *Service) GetOrCreate(context context.Context, label string) (*Tag, bool, error) {
	label = NormaliseLabel(label)
	if err := validateLabel(label); err != nil {
		return nil, false, err
	}

	// 1. Existing
	existing, err := service.repo.FindByLabel(context, label)
	if err == nil {
		return existing, false, nil
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, false, err
	}

	// 2. New, or lost the race
	created, err := service.repo.Create(context, label)
	if dberr.IsUniqueViolation(err) {
		existing, err = service.repo.FindByLabel(context, label)
		return existing, false, err
	}
	if err != nil {
		return nil, false, err
	}

	service.logger.Info("tag_created",
		slog.Int64("tag_id", created.ID),
		slog.String("label", created.Label),
	)
	return created, true, nil
}

// RenameTag changes a label. Renaming onto a taken label is a Conflict.
func (service *Service) RenameTag(context context.Context, id int64, label string) (*Tag, error) {
	label = NormaliseLabel(label)
	if err := validateLabel(label); err != nil {
		return nil, err
	}

	renamed, err := service.repo.Rename(context, id, label)
	if err != nil {
		return nil, err
	}

	service.logger.Info("tag_renamed", slog.Int64("tag_id", id), slog.String("label", label))
	return renamed, nil
}

func (service *Service) DeleteTag(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("tag_deleted", slog.Int64("tag_id", id))
	return nil
}

/*
MergeTags moves every image of source onto target.

Description: An image carrying both keeps a single target link. The source
tag survives the merge with no images.

Returns:
  - MergeReport: What happened to each source link
  - error: ValidationError merging a tag into itself, NotFound for a missing tag
*/
func (service *Service) MergeTags(context context.Context, targetID, sourceID int64) (MergeReport, error) {
	validator := &validate.Validator{}
	validator.PositiveID(FieldSourceID, sourceID)
	validator.Custom(FieldSourceID, sourceID == targetID, "Cannot merge a tag into itself")
	if err := validator.Err(); err != nil {
		return MergeReport{}, err
	}

	report, err := service.repo.Merge(context, targetID, sourceID)
	if err != nil {
		return MergeReport{}, err
	}

	service.logger.Info("tag_merged",
		slog.Int64("target_id", targetID),
		slog.Int64("source_id", sourceID),
		slog.Int64("moved", report.Moved),
		slog.Int64("dropped", report.Dropped),
	)
	return report, nil
}

// # Image Tagging

// ApplyTag tags an image. Tagging twice, or with an unknown image or tag,
// is a Conflict.
func (service *Service) ApplyTag(context context.Context, imageID, tagID int64) error {
	return service.repo.Apply(context, imageID, tagID)
}

// ApplyLabel tags an image by label, creating the tag when needed.
func (service *Service) ApplyLabel(context context.Context, imageID int64, label string) (*Tag, error) {
	tag, _, err := service.GetOrCreate(context, label)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Apply(context, imageID, tag.ID); err != nil {
		return nil, err
	}
	return tag, nil
}

// RemoveTag untags an image. Removing a tag the image does not carry is a Conflict.
func (service *Service) RemoveTag(context context.Context, imageID, tagID int64) error {
	return service.repo.Remove(context, imageID, tagID)
}

// SetTags makes the image carry exactly tagIDs, ignoring ids with no tag.
func (service *Service) SetTags(context context.Context, imageID int64, tagIDs []int64) ([]Tag, error) {
	validator := &validate.Validator{}
	for _, id := range tagIDs {
		validator.PositiveID(FieldTagIDs, id)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	result, err := service.repo.SetTags(context, imageID, tagIDs)
	if err != nil {
		return nil, err
	}

	service.logger.Info("image_tags_set",
		slog.Int64("image_id", imageID),
		slog.Int("tags", len(result)),
	)
	return result, nil
}

func (service *Service) TagsOf(context context.Context, imageID int64) ([]Tag, error) {
	return service.repo.TagsOf(context, imageID)
}

/*
RankImages orders images by how many of tagIDs they carry, best first.

Parameters:
  - tagIDs: []int64 (an empty list ranks nothing)
  - limit: int (non-positive uses the configured limit)

Returns:
  - []Match: At most limit images; order among equal counts is unspecified
*/
func (service *Service) RankImages(context context.Context, tagIDs []int64, limit int) ([]Match, error) {
	if len(tagIDs) == 0 {
		return []Match{}, nil
	}
	if limit <= 0 {
		limit = service.matchLimit
	}
	return service.repo.RankImages(context, tagIDs, limit)
}

func validateLabel(label string) error {
	validator := &validate.Validator{}
	validator.Required(FieldLabel, label).MaxLen(FieldLabel, label, maxLabelLength)
	return validator.Err()
}
