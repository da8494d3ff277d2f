// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rolltable_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taibuivan/tabletop/internal/core/rolltable"
	rolltablemock "github.com/taibuivan/tabletop/internal/core/rolltable/mock"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/pkg/pointer"
)

func TestSortableName(t *testing.T) {
	tests := map[string]string{
		"The Red Dragon":  "Red Dragon, The",
		"a Goblin Camp":   "Goblin Camp, a",
		"An Owlbear":      "Owlbear, An",
		"Another Tavern":  "Another Tavern",
		"The":             "The",
		"  Theatre Mask ": "Theatre Mask",
		"Red Dragon":      "Red Dragon",
	}

	for name, want := range tests {
		assert.Equal(t, want, rolltable.SortableName(name), name)
	}
}

func newService(t *testing.T) (*rolltable.Service, *rolltablemock.MockRepository) {
	repo := rolltablemock.NewMockRepository(gomock.NewController(t))
	return rolltable.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func detailFields(err error) []string {
	appError := apperr.As(err)
	if appError == nil {
		return nil
	}
	out := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		out = append(out, detail.Field)
	}
	return out
}

func TestCreateRollTable_ValidatesRows(t *testing.T) {
	service, _ := newService(t)

	_, err := service.CreateRollTable(context.Background(), rolltable.CreateInput{
		Name: "Loot",
		Rows: []rolltable.RowInput{
			{Name: pointer.To("Gold")},
			{},
			{Name: pointer.To("Gem"), ExtraData: &[]string{"red", " "}},
		},
	})

	assert.Equal(t, []string{"rows[1].name", "rows[2].extra_data[1]"}, detailFields(err))
}

func TestUpdateRollTable_ExistingRowsNeedNoName(t *testing.T) {
	service, repo := newService(t)

	rows := []rolltable.RowInput{{ID: pointer.To(int64(4))}, {Name: pointer.To(" Potion ")}}
	repo.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, input rolltable.UpdateInput) (*rolltable.RollTable, error) {
			assert.Equal(t, "Potion", *(*input.Rows)[1].Name)
			return &rolltable.RollTable{ID: 1}, nil
		})

	_, err := service.UpdateRollTable(context.Background(), 1, rolltable.UpdateInput{Rows: &rows})

	require.NoError(t, err)
}

func TestAddRow_RequiresName(t *testing.T) {
	service, _ := newService(t)

	_, err := service.AddRow(context.Background(), 1, rolltable.RowInput{})

	assert.Equal(t, []string{"name"}, detailFields(err))
}
