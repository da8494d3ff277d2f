// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"context"

	"github.com/taibuivan/tabletop/internal/core/tag"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=imagemock github.com/taibuivan/tabletop/internal/core/image Repository,Ranker

// Repository defines the persistence contract for image metadata. Every
// image it returns carries its tags.
type Repository interface {
	List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Image, int, error)
	FindByID(context context.Context, id int64) (*Image, error)

	// FindMany returns the images for ids in the order given, skipping
	// ids with no image.
	FindMany(context context.Context, ids []int64) ([]Image, error)

	// Random picks any image of the given type.
	Random(context context.Context, kind Type) (*Image, error)

	Create(context context.Context, input CreateInput) (*Image, error)
	Update(context context.Context, id int64, input UpdateInput) (*Image, error)
	Delete(context context.Context, id int64) error
}

// Ranker orders images by shared tags. *tag.Service satisfies it.
type Ranker interface {
	RankImages(context context.Context, tagIDs []int64, limit int) ([]tag.Match, error)
}
