// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package crud

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tabletop/pkg/optional"
)

type widget struct {
	ID   int64
	Name string
}

var widgets = Table[widget]{
	Name:     "widgets",
	Resource: "Widget",
	Columns:  []string{"id", "name"},
	Scan: func(row pgx.Row) (*widget, error) {
		var w widget
		return &w, row.Scan(&w.ID, &w.Name)
	},
	Key: func(w *widget) int64 { return w.ID },
}

func TestBuildUpdate_OnlySetColumns(t *testing.T) {
	name := "Ambush"
	var skipped *int

	patch := NewPatch()
	Set(patch, "title", &name)
	Set(patch, "round", skipped)
	SetOptional(patch, "active_participant_id", optional.Null[int64]())
	SetOptional(patch, "colour", optional.Value[string]{})

	query, args := widgets.buildUpdate(7, patch, []Scope{{Column: "combat_id", Value: int64(3)}})

	assert.Equal(t,
		"UPDATE widgets SET title = $1, active_participant_id = $2 WHERE id = $3 AND combat_id = $4 RETURNING id, name",
		query)
	assert.Equal(t, []any{"Ambush", nil, int64(7), int64(3)}, args)
}

func TestBuildInsert(t *testing.T) {
	query, args := widgets.buildInsert(NewPatch().Put("name", "Goblin").Put("ac", 15))

	assert.Equal(t, "INSERT INTO widgets (name, ac) VALUES ($1, $2) RETURNING id, name", query)
	assert.Equal(t, []any{"Goblin", 15}, args)
}

func TestBuildInsert_DefaultValues(t *testing.T) {
	query, args := widgets.buildInsert(NewPatch())

	assert.Equal(t, "INSERT INTO widgets DEFAULT VALUES RETURNING id, name", query)
	assert.Empty(t, args)
}

func TestPatch_PutOverwrites(t *testing.T) {
	patch := NewPatch().Put("name", "a").Put("ac", 1).Put("name", "b")

	assert.Equal(t, []string{"name", "ac"}, patch.Columns())
	assert.True(t, patch.Has("ac"))
	assert.False(t, patch.Has("cr"))
	assert.False(t, patch.Empty())
	assert.True(t, (*Patch)(nil).Empty())
}

func TestWhereID(t *testing.T) {
	where, args := whereID(9, nil, 4)
	assert.Equal(t, "id = $4", where)
	assert.Equal(t, []any{int64(9)}, args)
}
