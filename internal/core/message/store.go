// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message

import (
	"context"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=messagemock github.com/taibuivan/tabletop/internal/core/message Repository

type Repository interface {
	List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]Message, int, error)
	FindByID(context context.Context, id int64) (*Message, error)
	Random(context context.Context) (*Message, error)
	Create(context context.Context, text string) (*Message, error)
	Update(context context.Context, id int64, text string) (*Message, error)
	Delete(context context.Context, id int64) error
}
