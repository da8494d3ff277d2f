// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rolltable keeps random tables: named lists of rows a game master
rolls against (wandering monsters, tavern names, loot).

Each row may carry extra lines of free text. Rows are listed by a sortable
display name in which a leading article moves to the end.
*/
package rolltable

import (
	"fmt"
	"strings"

	"github.com/taibuivan/tabletop/pkg/optional"
)

const (
	FieldName      = "name"
	FieldRows      = "rows"
	FieldRowID     = "id"
	FieldCategory  = "category"
	FieldExtraData = "extra_data"
)

const (
	ResourceRollTable = "RollTable"
	ResourceRow       = "RollTableRow"
)

const (
	maxNameLength     = 64
	maxCategoryLength = 100
	maxDataLength     = 500
)

// RollTable is a table and all of its rows, in insertion order.
type RollTable struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

type Row struct {
	ID          int64    `json:"id"`
	RollTableID int64    `json:"rolltable_id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Category    *string  `json:"category"`
	ExtraData   []string `json:"extra_data"`
}

// # Inputs

// RowInput creates a row, or with ID set, changes an existing one sparsely.
type RowInput struct {
	ID        *int64                 `json:"id"`
	Name      *string                `json:"name"`
	Category  optional.Value[string] `json:"category"`
	ExtraData *[]string              `json:"extra_data"`
}

type CreateInput struct {
	Name string     `json:"name"`
	Rows []RowInput `json:"rows"`
}

// UpdateInput renames the table and, when Rows is sent, replaces the rows:
// listed rows with an ID are updated, those without are created, and
// unlisted rows are deleted.
type UpdateInput struct {
	Name *string     `json:"name"`
	Rows *[]RowInput `json:"rows"`
}

// # Display Names

var articles = []string{"the", "a", "an"}

// SortableName moves a leading article to the end so tables sort by their
// first meaningful word: "The Red Dragon" becomes "Red Dragon, The".
func SortableName(name string) string {
	name = strings.TrimSpace(name)

	first, rest, found := strings.Cut(name, " ")
	if !found {
		return name
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return name
	}

	for _, article := range articles {
		if strings.EqualFold(first, article) {
			return fmt.Sprintf("%s, %s", rest, first)
		}
	}
	return name
}

func rowField(index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", FieldRows, index, field)
}
