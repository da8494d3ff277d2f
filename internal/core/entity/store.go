// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity

import (
	"context"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/optional"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=entitymock github.com/taibuivan/tabletop/internal/core/entity Repository

// Repository defines the persistence contract for the bestiary.
type Repository interface {

	// List returns one page of entities matching filter, plus the total match count.
	List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Entity, int, error)

	// FindByID returns apperr NotFound when the entity does not exist.
	FindByID(context context.Context, id int64) (*Entity, error)

	// Create persists a single entity and returns it with its identity.
	Create(context context.Context, entity *Entity) (*Entity, error)

	// CreateMany inserts every entity in one transaction; any failure stores none.
	CreateMany(context context.Context, entities []Entity) (int, error)

	// Update applies a sparse update. CR has already been decoded by the caller.
	Update(context context.Context, id int64, input UpdateInput, cr optional.Value[float64]) (*Entity, error)

	// Delete removes an entity. Participants built from it keep their copy.
	Delete(context context.Context, id int64) error
}
