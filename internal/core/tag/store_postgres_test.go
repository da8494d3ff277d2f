// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/core/tag"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/internal/platform/testdb"
)

type fixture struct {
	repo *tag.PostgresRepository
	pool *pgxpool.Pool
}

func newFixture(t *testing.T) fixture {
	db := testdb.New(t)
	return fixture{repo: tag.NewPostgresRepository(db.Pool, listing.NewComposer(db.Bun)), pool: db.Pool}
}

func (fx fixture) image(t *testing.T, name string) int64 {
	t.Helper()

	var id int64
	err := fx.pool.QueryRow(context.Background(),
		`INSERT INTO images (path, name, type) VALUES ($1, $2, 'backdrop') RETURNING id`,
		"/img/"+name+".png", name,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func (fx fixture) tag(t *testing.T, label string) int64 {
	t.Helper()

	created, err := fx.repo.Create(context.Background(), label)
	require.NoError(t, err)
	return created.ID
}

func labels(items []tag.Tag) []string {
	out := make([]string, len(items))
	for index, item := range items {
		out[index] = item.Label
	}
	return out
}

func TestPostgresRepository_DuplicateLabel(t *testing.T) {
	fx := newFixture(t)
	fx.tag(t, "forest")

	_, err := fx.repo.Create(context.Background(), "forest")

	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.True(t, dberr.IsUniqueViolation(err))
}

func TestGetOrCreate_IsIdempotentAcrossCase(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	service := tag.NewService(fx.repo, 0, slog.Default())

	first, created, err := service.GetOrCreate(ctx, "Haunted Ruins")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := service.GetOrCreate(ctx, "HAUNTED RUINS")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestPostgresRepository_ApplyAndRemove(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	image := fx.image(t, "glade")
	forest := fx.tag(t, "forest")

	require.NoError(t, fx.repo.Apply(ctx, image, forest))

	t.Run("twice is a conflict", func(t *testing.T) {
		err := fx.repo.Apply(ctx, image, forest)
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	})

	t.Run("unknown tag is a conflict", func(t *testing.T) {
		err := fx.repo.Apply(ctx, image, 404)
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	})

	found, err := fx.repo.TagsOf(ctx, image)
	require.NoError(t, err)
	assert.Equal(t, []string{"forest"}, labels(found))

	require.NoError(t, fx.repo.Remove(ctx, image, forest))

	t.Run("removing a missing link is a conflict", func(t *testing.T) {
		err := fx.repo.Remove(ctx, image, forest)
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	})
}

func TestPostgresRepository_SetTags(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	image := fx.image(t, "glade")
	forest := fx.tag(t, "forest")
	night := fx.tag(t, "night")
	rain := fx.tag(t, "rain")

	require.NoError(t, fx.repo.Apply(ctx, image, forest))
	require.NoError(t, fx.repo.Apply(ctx, image, night))

	result, err := fx.repo.SetTags(ctx, image, []int64{night, rain, 404})
	require.NoError(t, err)
	assert.Equal(t, []string{"night", "rain"}, labels(result))

	found, err := fx.repo.TagsOf(ctx, image)
	require.NoError(t, err)
	assert.Equal(t, []string{"night", "rain"}, labels(found))

	cleared, err := fx.repo.SetTags(ctx, image, nil)
	require.NoError(t, err)
	assert.Empty(t, cleared)

	_, err = fx.repo.SetTags(ctx, 404, []int64{forest})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestPostgresRepository_MergeSkipsDuplicatePairs(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	both := fx.image(t, "both")
	onlySource := fx.image(t, "only-source")
	target := fx.tag(t, "forest")
	source := fx.tag(t, "woods")

	require.NoError(t, fx.repo.Apply(ctx, both, target))
	require.NoError(t, fx.repo.Apply(ctx, both, source))
	require.NoError(t, fx.repo.Apply(ctx, onlySource, source))

	report, err := fx.repo.Merge(ctx, target, source)
	require.NoError(t, err)
	assert.Equal(t, tag.MergeReport{Moved: 1, Dropped: 1}, report)

	for _, image := range []int64{both, onlySource} {
		found, err := fx.repo.TagsOf(ctx, image)
		require.NoError(t, err)
		assert.Equal(t, []string{"forest"}, labels(found))
	}

	// The source survives, now unused
	orphans, err := fx.repo.Orphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"woods"}, labels(orphans))

	_, err = fx.repo.Merge(ctx, target, 404)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestPostgresRepository_RankImages(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	forest := fx.tag(t, "forest")
	night := fx.tag(t, "night")
	rain := fx.tag(t, "rain")

	one := fx.image(t, "one")
	two := fx.image(t, "two")
	three := fx.image(t, "three")

	for _, link := range [][2]int64{
		{one, forest},
		{two, forest}, {two, night}, {two, rain},
		{three, night}, {three, rain},
	} {
		require.NoError(t, fx.repo.Apply(ctx, link[0], link[1]))
	}

	matches, err := fx.repo.RankImages(ctx, []int64{forest, night, rain}, 12)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, tag.Match{ImageID: two, MatchCount: 3, TagIDs: []int64{forest, night, rain}}, matches[0])
	assert.Equal(t, 2, matches[1].MatchCount)
	assert.Equal(t, 1, matches[2].MatchCount)

	limited, err := fx.repo.RankImages(ctx, []int64{rain}, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
