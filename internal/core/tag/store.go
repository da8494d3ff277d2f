// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=tagmock github.com/taibuivan/tabletop/internal/core/tag Repository

// Repository defines the persistence contract for tags and image tagging.
type Repository interface {

	// # Tags

	List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Tag, int, error)
	FindByID(context context.Context, id int64) (*Tag, error)
	FindByLabel(context context.Context, label string) (*Tag, error)

	// Create inserts a normalised label. A taken label is a Conflict that
	// still carries the unique violation as its cause.
	Create(context context.Context, label string) (*Tag, error)
	Rename(context context.Context, id int64, label string) (*Tag, error)
	Delete(context context.Context, id int64) error

	// Orphans lists the tags no image carries.
	Orphans(context context.Context) ([]Tag, error)

	// Merge moves every image of source onto target in one transaction.
	Merge(context context.Context, targetID, sourceID int64) (MergeReport, error)

	// # Image Tagging

	Apply(context context.Context, imageID, tagID int64) error
	Remove(context context.Context, imageID, tagID int64) error
	SetTags(context context.Context, imageID int64, tagIDs []int64) ([]Tag, error)
	TagsOf(context context.Context, imageID int64) ([]Tag, error)

	// RankImages orders images by how many of tagIDs they carry.
	RankImages(context context.Context, tagIDs []int64, limit int) ([]Match, error)
}
