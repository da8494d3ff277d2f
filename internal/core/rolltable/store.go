// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rolltable

import (
	"context"

	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rolltablemock github.com/taibuivan/tabletop/internal/core/rolltable Repository

// Repository defines the persistence contract for roll tables. Rows arrive
// validated; the store derives their display names.
type Repository interface {
	List(context context.Context, filter listing.Filter, sort listing.Sort, page pagination.Params) ([]RollTable, int, error)
	FindByID(context context.Context, id int64) (*RollTable, error)
	Create(context context.Context, name string, rows []RowInput) (*RollTable, error)
	Update(context context.Context, id int64, input UpdateInput) (*RollTable, error)
	Delete(context context.Context, id int64) error

	AddRow(context context.Context, tableID int64, row RowInput) (*RollTable, error)

	// DeleteRow removes one row and returns the table it belonged to.
	DeleteRow(context context.Context, rowID int64) (*RollTable, error)
}
