// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taibuivan/tabletop/internal/core/collection"
	collectionmock "github.com/taibuivan/tabletop/internal/core/collection/mock"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/testdb"
)

func newService(t *testing.T) (*collection.Service, *collectionmock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := collectionmock.NewMockRepository(ctrl)
	return collection.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func TestCreateCollection_TrimsName(t *testing.T) {
	service, repo := newService(t)

	repo.EXPECT().Create(gomock.Any(), "Dungeon maps").Return(&collection.Collection{ID: 1, Name: "Dungeon maps"}, nil)

	created, err := service.CreateCollection(context.Background(), collection.Input{Name: "  Dungeon maps "})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestCreateCollection_RequiresName(t *testing.T) {
	service, _ := newService(t)

	_, err := service.CreateCollection(context.Background(), collection.Input{Name: " "})

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestSetCollections_RejectsBadIDs(t *testing.T) {
	service, _ := newService(t)

	_, err := service.SetCollections(context.Background(), 1, []int64{2, 0})

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestPostgresRepository_Membership(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	repo := collection.NewPostgresRepository(db.Pool, listing.NewComposer(db.Bun))

	var image int64
	require.NoError(t, db.Pool.QueryRow(ctx,
		`INSERT INTO images (path, name, type) VALUES ('/maps/crypt.png', 'crypt', 'map') RETURNING id`,
	).Scan(&image))

	maps, err := repo.Create(ctx, "Maps")
	require.NoError(t, err)
	dungeons, err := repo.Create(ctx, "Dungeons")
	require.NoError(t, err)

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		_, err := repo.Create(ctx, "Maps")
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	})

	require.NoError(t, repo.Apply(ctx, image, maps.ID))

	t.Run("apply twice and remove missing are conflicts", func(t *testing.T) {
		assert.True(t, apperr.HasCode(repo.Apply(ctx, image, maps.ID), apperr.CodeConflict))
		assert.True(t, apperr.HasCode(repo.Remove(ctx, image, dungeons.ID), apperr.CodeConflict))
	})

	t.Run("orphans", func(t *testing.T) {
		orphans, err := repo.Orphans(ctx)
		require.NoError(t, err)
		assert.Equal(t, []collection.Collection{*dungeons}, orphans)
	})

	t.Run("set replaces membership", func(t *testing.T) {
		result, err := repo.SetCollections(ctx, image, []int64{dungeons.ID, 404})
		require.NoError(t, err)
		assert.Equal(t, []collection.Collection{*dungeons}, result)

		found, err := repo.CollectionsOf(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, []collection.Collection{*dungeons}, found)
	})
}
