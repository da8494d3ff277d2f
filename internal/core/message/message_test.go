// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taibuivan/tabletop/internal/core/message"
	messagemock "github.com/taibuivan/tabletop/internal/core/message/mock"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/testdb"
	"github.com/taibuivan/tabletop/pkg/pagination"
	"github.com/taibuivan/tabletop/pkg/pointer"
)

func newService(t *testing.T) (*message.Service, *messagemock.MockRepository) {
	repo := messagemock.NewMockRepository(gomock.NewController(t))
	return message.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCreateMessage_Length(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()

	// 400 runes of a multi-byte character still fit
	fits := strings.Repeat("ä", message.MaxLength)
	repo.EXPECT().Create(gomock.Any(), fits).Return(&message.Message{ID: 1, Message: fits}, nil)

	_, err := service.CreateMessage(ctx, message.Input{Message: fits})
	require.NoError(t, err)

	_, err = service.CreateMessage(ctx, message.Input{Message: fits + "ä"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.CreateMessage(ctx, message.Input{Message: "   "})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestUpdateMessage_Trims(t *testing.T) {
	service, repo := newService(t)

	repo.EXPECT().Update(gomock.Any(), int64(3), "The bridge collapses").
		Return(&message.Message{ID: 3, Message: "The bridge collapses"}, nil)

	updated, err := service.UpdateMessage(context.Background(), 3, message.Input{Message: " The bridge collapses\n"})

	require.NoError(t, err)
	assert.Equal(t, "The bridge collapses", updated.Message)
}

func TestPostgresRepository_Messages(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	repo := message.NewPostgresRepository(db.Pool, listing.NewComposer(db.Bun))

	_, err := repo.Random(ctx)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	thunder, err := repo.Create(ctx, "Thunder rolls over the hills")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "A raven lands nearby")
	require.NoError(t, err)

	t.Run("filter by text", func(t *testing.T) {
		items, total, err := repo.List(ctx, listing.Filter{Message: pointer.To("thunder")}, listing.DefaultSort, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, []message.Message{*thunder}, items)
	})

	t.Run("random picks a stored message", func(t *testing.T) {
		picked, err := repo.Random(ctx)
		require.NoError(t, err)
		assert.Contains(t, []string{"Thunder rolls over the hills", "A raven lands nearby"}, picked.Message)
	})

	t.Run("over-long text is rejected by the column", func(t *testing.T) {
		_, err := repo.Create(ctx, strings.Repeat("x", message.MaxLength+1))
		assert.Error(t, err)
	})
}
