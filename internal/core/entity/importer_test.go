// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taibuivan/tabletop/internal/core/entity"
	entitymock "github.com/taibuivan/tabletop/internal/core/entity/mock"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
)

const jsonCatalog = `[
	{"name": "Goblin", "hit_dice": "2d6+2", "ac": 15, "cr": "1/4", "initiative_modifier": 2, "source": "MM", "source_page": 166},
	{"name": "", "hit_dice": "1d4+0", "ac": 10, "cr": "0"},
	{"name": "Ogre", "hit_dice": "7d10+21", "ac": 11, "cr": 2},
	{"name": "Slime", "ac": -3},
	{"name": "Lich", "cr": "21"},
	{"name": "Broken", "ac": "high"},
	{"name": "Mystery", "cr": "1/3"}
]`

const yamlCatalog = `
- name: Yeti
  hit_dice: 6d10+18
  ac: 12
  cr: 3
  initiative_modifier: 1
- name: Ice Mephit
  hit_dice: 6d6+0
  ac: 11
  cr: 1/2
- ac: 4
`

func TestImport_JSONSkipsMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := entitymock.NewMockRepository(ctrl)
	importer := entity.NewImporter(repo, discardLogger())

	var stored []entity.Entity
	repo.EXPECT().
		CreateMany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch []entity.Entity) (int, error) {
			stored = batch
			return len(batch), nil
		})

	report, err := importer.Import(context.Background(), strings.NewReader(jsonCatalog), entity.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Imported)
	assert.Equal(t, 4, report.Skipped)
	assert.Len(t, report.Problems, 4)

	require.Len(t, stored, 3)
	assert.Equal(t, "Goblin", stored[0].Name)
	assert.Equal(t, 0.25, *stored[0].CR)
	assert.Equal(t, 166, *stored[0].SourcePage)
	assert.Equal(t, "Ogre", stored[1].Name)
	assert.Equal(t, 2.0, *stored[1].CR)
	assert.Equal(t, "Lich", stored[2].Name)
	assert.Equal(t, entity.DefaultAC, stored[2].AC)
}

func TestImport_YAML(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := entitymock.NewMockRepository(ctrl)
	importer := entity.NewImporter(repo, discardLogger())

	var stored []entity.Entity
	repo.EXPECT().
		CreateMany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch []entity.Entity) (int, error) {
			stored = batch
			return len(batch), nil
		})

	report, err := importer.Import(context.Background(), strings.NewReader(yamlCatalog), entity.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, stored, 2)
	assert.Equal(t, 3.0, *stored[0].CR)
	assert.Equal(t, 1, stored[0].InitiativeModifier)
	assert.Equal(t, 0.5, *stored[1].CR)
}

func TestImport_NotAList(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := entitymock.NewMockRepository(ctrl)
	importer := entity.NewImporter(repo, discardLogger())

	_, err := importer.Import(context.Background(), strings.NewReader(`{"name":"Goblin"}`), entity.FormatJSON)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestImport_EmptyDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	importer := entity.NewImporter(entitymock.NewMockRepository(ctrl), discardLogger())

	_, err := importer.Import(context.Background(), strings.NewReader("  \n"), entity.FormatYAML)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestImport_OversizedUploadKeepsReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	importer := entity.NewImporter(entitymock.NewMockRepository(ctrl), discardLogger())

	body := http.MaxBytesReader(nil, io.NopCloser(strings.NewReader(jsonCatalog)), 16)
	_, err := importer.Import(context.Background(), body, entity.FormatJSON)

	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, err, &tooLarge)
	assert.False(t, apperr.IsAppError(err))
}

func TestImport_StorageFailureImportsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := entitymock.NewMockRepository(ctrl)
	importer := entity.NewImporter(repo, discardLogger())

	repo.EXPECT().CreateMany(gomock.Any(), gomock.Any()).Return(0, errors.New("connection reset"))

	report, err := importer.Import(context.Background(), strings.NewReader(jsonCatalog), entity.FormatJSON)
	assert.Error(t, err)
	assert.Zero(t, report.Imported)
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]entity.Format{"json": entity.FormatJSON, "YAML": entity.FormatYAML, "yml": entity.FormatYAML} {
		got, err := entity.ParseFormat(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := entity.ParseFormat("csv")
	assert.Error(t, err)
}
