// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"

	"github.com/taibuivan/tabletop/internal/platform/broadcast"
	"github.com/taibuivan/tabletop/pkg/pagination"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionmock github.com/taibuivan/tabletop/internal/core/session Repository,Publisher,PublishRecorder

// Repository defines the persistence contract for sessions. A mode
// referencing a missing image or combat is a Conflict.
type Repository interface {
	List(context context.Context, page pagination.Params) ([]Session, int, error)
	FindByID(context context.Context, id int64) (*Session, error)
	Create(context context.Context, session Session) (*Session, error)
	Update(context context.Context, id int64, change Change) (*Session, error)
	Delete(context context.Context, id int64) error
}

// Publisher delivers session events to live viewers.
// *broadcast.Publisher satisfies it.
type Publisher interface {
	Publish(context context.Context, event broadcast.Event) (int64, error)
}

// PublishRecorder counts publish outcomes. *metrics.Metrics satisfies it.
type PublishRecorder interface {
	RecordPublish(err error)
}
