// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taibuivan/tabletop/internal/core/image"
	imagemock "github.com/taibuivan/tabletop/internal/core/image/mock"
	"github.com/taibuivan/tabletop/internal/core/tag"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/pkg/pointer"
)

type fixture struct {
	service *image.Service
	repo    *imagemock.MockRepository
	ranker  *imagemock.MockRanker
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	repo := imagemock.NewMockRepository(ctrl)
	ranker := imagemock.NewMockRanker(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return fixture{service: image.NewService(repo, ranker, logger), repo: repo, ranker: ranker}
}

func TestMatch_KeepsRankOrder(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.ranker.EXPECT().RankImages(gomock.Any(), []int64{1, 2}, 0).Return([]tag.Match{
		{ImageID: 9, MatchCount: 2, TagIDs: []int64{1, 2}},
		{ImageID: 4, MatchCount: 1, TagIDs: []int64{2}},
		{ImageID: 6, MatchCount: 1, TagIDs: []int64{1}},
	}, nil)

	// Image 6 went away between ranking and loading
	fx.repo.EXPECT().FindMany(gomock.Any(), []int64{9, 4, 6}).Return([]image.Image{
		{ID: 4, Name: "road"},
		{ID: 9, Name: "forest"},
	}, nil)

	matches, err := fx.service.Match(ctx, []int64{1, 2}, 0)

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "forest", matches[0].Image.Name)
	assert.Equal(t, 2, matches[0].MatchCount)
	assert.Equal(t, "road", matches[1].Image.Name)
	assert.Equal(t, []int64{2}, matches[1].TagIDs)
}

func TestMatch_NothingRanked(t *testing.T) {
	fx := newFixture(t)

	fx.ranker.EXPECT().RankImages(gomock.Any(), gomock.Any(), 5).Return([]tag.Match{}, nil)

	matches, err := fx.service.Match(context.Background(), []int64{3}, 5)

	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.NotNil(t, matches)
}

func TestMatch_RejectsBadTagIDs(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Match(context.Background(), []int64{1, -2}, 0)

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestCreateImage_Validates(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.CreateImage(context.Background(), image.CreateInput{
		Path:       " ",
		Name:       "tavern",
		Type:       "poster",
		DimensionX: -1,
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{image.FieldPath, image.FieldType, image.FieldDimensionX}, fields)
}

func TestCreateImage_Trims(t *testing.T) {
	fx := newFixture(t)

	fx.repo.EXPECT().Create(gomock.Any(), image.CreateInput{Path: "/maps/keep.png", Name: "Keep", Type: image.TypeMap}).
		Return(&image.Image{ID: 1, Name: "Keep", Type: image.TypeMap}, nil)

	created, err := fx.service.CreateImage(context.Background(), image.CreateInput{
		Path: " /maps/keep.png ",
		Name: "Keep ",
		Type: image.TypeMap,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestRandomImage_UnknownType(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.RandomImage(context.Background(), "poster")

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestThumbnail_UsesStoredSize(t *testing.T) {
	fx := newFixture(t)

	fx.repo.EXPECT().FindByID(gomock.Any(), int64(2)).Return(&image.Image{ID: 2, DimensionX: 1000, DimensionY: 500}, nil)

	size, err := fx.service.Thumbnail(context.Background(), 2, image.Scale{Width: pointer.To(100)})

	require.NoError(t, err)
	assert.Equal(t, image.Size{Width: 100, Height: 50}, size)
}
