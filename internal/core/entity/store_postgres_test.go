// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/core/entity"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/testdb"
	"github.com/taibuivan/tabletop/pkg/optional"
	"github.com/taibuivan/tabletop/pkg/pagination"
	"github.com/taibuivan/tabletop/pkg/pointer"
)

func newStore(t *testing.T) *entity.PostgresRepository {
	db := testdb.New(t)
	return entity.NewPostgresRepository(db.Pool, listing.NewComposer(db.Bun))
}

func TestPostgresRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newStore(t)

	created, err := repo.Create(ctx, &entity.Entity{
		Name: "Goblin", HitDice: "2d6+2", AC: 15, CR: pointer.To(0.25), InitiativeModifier: 2,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Goblin", found.Name)
	assert.Equal(t, 0.25, *found.CR)

	// Sparse update: only AC changes, CR is cleared explicitly
	updated, err := repo.Update(ctx, created.ID, entity.UpdateInput{AC: pointer.To(17)}, optional.Null[float64]())
	require.NoError(t, err)
	assert.Equal(t, 17, updated.AC)
	assert.Nil(t, updated.CR)
	assert.Equal(t, "2d6+2", updated.HitDice)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	err = repo.Delete(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestPostgresRepository_CreateManyAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := newStore(t)

	count, err := repo.CreateMany(ctx, []entity.Entity{
		{Name: "Goblin", AC: 15, CR: pointer.To(0.25)},
		{Name: "Goblin Boss", AC: 17, CR: pointer.To(1.0)},
		{Name: "Ogre", AC: 11, CR: pointer.To(2.0), Data: []byte("stat block")},
		{Name: "Aggie", AC: 14, IsPC: true, Data: []byte("abc")},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	page := pagination.Params{Page: 1, Limit: 20}

	t.Run("cr list", func(t *testing.T) {
		items, total, err := repo.List(ctx, listing.Filter{CR: pointer.To("1/4|2")}, listing.DefaultSort, page)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, []string{"Goblin", "Ogre"}, names(items))
	})

	t.Run("name contains, case-insensitive", func(t *testing.T) {
		items, _, err := repo.List(ctx, listing.Filter{Name: pointer.To("GOBLIN")}, listing.DefaultSort, page)
		require.NoError(t, err)
		assert.Equal(t, []string{"Goblin", "Goblin Boss"}, names(items))
	})

	t.Run("has_data keeps the length threshold", func(t *testing.T) {
		items, _, err := repo.List(ctx, listing.Filter{HasData: pointer.To(true)}, listing.DefaultSort, page)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ogre"}, names(items))

		items, _, err = repo.List(ctx, listing.Filter{HasData: pointer.To(false)}, listing.DefaultSort, page)
		require.NoError(t, err)
		assert.Equal(t, []string{"Aggie"}, names(items))
	})

	t.Run("sort by ac descending", func(t *testing.T) {
		items, _, err := repo.List(ctx, listing.Filter{}, listing.Sort{By: listing.SortAC, Dir: listing.Desc}, page)
		require.NoError(t, err)
		assert.Equal(t, []string{"Goblin Boss", "Goblin", "Aggie", "Ogre"}, names(items))
	})

	t.Run("paging keeps the total", func(t *testing.T) {
		items, total, err := repo.List(ctx, listing.Filter{}, listing.DefaultSort, pagination.Params{Page: 2, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Equal(t, []string{"Aggie"}, names(items))
	})
}

func TestPostgresRepository_CreateManyIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := newStore(t)

	_, err := repo.CreateMany(ctx, []entity.Entity{
		{Name: "Goblin", AC: 15},
		{Name: "Ghost", AC: 11, ImageID: pointer.To(int64(404))},
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, total, err := repo.List(ctx, listing.Filter{}, listing.DefaultSort, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func names(items []entity.Entity) []string {
	out := make([]string, len(items))
	for index, item := range items {
		out[index] = item.Name
	}
	return out
}
