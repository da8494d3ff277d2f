// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=collectionmock github.com/taibuivan/tabletop/internal/core/collection Repository

// Repository defines the persistence contract for collections and membership.
type Repository interface {
	List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Collection, int, error)
	FindByID(context context.Context, id int64) (*Collection, error)
	Create(context context.Context, name string) (*Collection, error)
	Rename(context context.Context, id int64, name string) (*Collection, error)
	Delete(context context.Context, id int64) error
	Orphans(context context.Context) ([]Collection, error)

	Apply(context context.Context, imageID, collectionID int64) error
	Remove(context context.Context, imageID, collectionID int64) error
	SetCollections(context context.Context, imageID int64, collectionIDs []int64) ([]Collection, error)
	CollectionsOf(context context.Context, imageID int64) ([]Collection, error)
}
