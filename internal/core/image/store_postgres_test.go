// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/core/image"
	"github.com/taibuivan/tabletop/internal/core/tag"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/testdb"
	"github.com/taibuivan/tabletop/pkg/optional"
	"github.com/taibuivan/tabletop/pkg/pagination"
	"github.com/taibuivan/tabletop/pkg/pointer"
)

func TestPostgresRepository_Images(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	composer := listing.NewComposer(db.Bun)
	images := image.NewPostgresRepository(db.Pool, composer)
	tags := tag.NewPostgresRepository(db.Pool, composer)

	keep, err := images.Create(ctx, image.CreateInput{
		Path: "/maps/keep.png", Name: "Keep", Type: image.TypeMap,
		DimensionX: 1200, DimensionY: 800, FocusX: pointer.To(600),
	})
	require.NoError(t, err)
	tavern, err := images.Create(ctx, image.CreateInput{Path: "/bg/tavern.png", Name: "Tavern", Type: image.TypeBackdrop})
	require.NoError(t, err)

	castle, err := tags.Create(ctx, "castle")
	require.NoError(t, err)
	night, err := tags.Create(ctx, "night")
	require.NoError(t, err)
	require.NoError(t, tags.Apply(ctx, keep.ID, night.ID))
	require.NoError(t, tags.Apply(ctx, keep.ID, castle.ID))

	t.Run("images carry their tags", func(t *testing.T) {
		found, err := images.FindByID(ctx, keep.ID)
		require.NoError(t, err)
		assert.Equal(t, []tag.Tag{*castle, *night}, found.Tags)
		assert.Equal(t, 600, *found.FocusX)

		bare, err := images.FindByID(ctx, tavern.ID)
		require.NoError(t, err)
		assert.Empty(t, bare.Tags)
	})

	t.Run("random by type", func(t *testing.T) {
		picked, err := images.Random(ctx, image.TypeBackdrop)
		require.NoError(t, err)
		assert.Equal(t, tavern.ID, picked.ID)

		_, err = images.Random(ctx, image.TypeHandout)
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("list by type sorted by size", func(t *testing.T) {
		filter := listing.Filter{Types: pointer.To("map|backdrop")}
		items, total, err := images.List(ctx, filter, listing.Sort{By: listing.SortDimensions, Dir: listing.Desc}, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, keep.ID, items[0].ID)
	})

	t.Run("update clears nullable fields", func(t *testing.T) {
		updated, err := images.Update(ctx, keep.ID, image.UpdateInput{
			Name:   pointer.To("Old Keep"),
			FocusX: optional.Null[int](),
		})
		require.NoError(t, err)
		assert.Equal(t, "Old Keep", updated.Name)
		assert.Nil(t, updated.FocusX)
		assert.Len(t, updated.Tags, 2)
	})

	t.Run("delete drops tag links", func(t *testing.T) {
		require.NoError(t, images.Delete(ctx, keep.ID))

		orphans, err := tags.Orphans(ctx)
		require.NoError(t, err)
		assert.Len(t, orphans, 2)

		assert.True(t, apperr.HasCode(images.Delete(ctx, keep.ID), apperr.CodeNotFound))
	})
}
