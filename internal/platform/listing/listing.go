// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package listing composes the filtered, sorted and paged id queries behind every
list endpoint.

A [Filter] is a bag of optional predicates. [Composer.Filter] turns the ones
that are present into clauses on a bun SelectQuery for a given [Kind];
[Query.Sort] adds the ORDER BY. The query only selects ids: stores hydrate the
rows themselves, so one composer serves every table.

Participant-count filters and the num_participants sort need the participants
relation joined and grouped by combat. The [Query] tracks that join so it is
added at most once, however many clauses ask for it.
*/
package listing

// # Kinds

// Kind names a listable table.
type Kind string

const (
	KindCombat     Kind = "combat"
	KindEntity     Kind = "entity"
	KindImage      Kind = "image"
	KindMessage    Kind = "message"
	KindTag        Kind = "tag"
	KindCollection Kind = "collection"
	KindRollTable  Kind = "rolltable"
)

// source is the table and alias a kind selects from, plus the columns that
// back the text filters and sort keys it understands.
type source struct {
	table string
	alias string
	// text maps a text filter field ("name") to its column.
	text map[string]string
	// sorts maps a sort key to a SQL expression over the alias.
	sorts map[string]string
}

var sources = map[Kind]source{
	KindCombat: {
		table: "combats", alias: "c",
		text:  map[string]string{FieldTitle: "title"},
		sorts: map[string]string{SortTitle: "lower(c.title)"},
	},
	KindEntity: {
		table: "entities", alias: "e",
		text: map[string]string{FieldName: "name"},
		sorts: map[string]string{
			SortName:       "lower(e.name)",
			SortAC:         "e.ac",
			SortCR:         "e.cr",
			SortInitiative: "e.initiative_modifier",
		},
	},
	KindImage: {
		table: "images", alias: "i",
		text: map[string]string{FieldName: "name"},
		sorts: map[string]string{
			SortName:       "lower(i.name)",
			SortDimensions: "i.dimension_x * i.dimension_y",
		},
	},
	KindMessage: {
		table: "messages", alias: "m",
		text: map[string]string{FieldMessage: "message"},
	},
	KindTag: {
		table: "tags", alias: "t",
		text:  map[string]string{FieldTag: "label"},
		sorts: map[string]string{SortName: "lower(t.label)"},
	},
	KindCollection: {
		table: "collections", alias: "col",
		text:  map[string]string{FieldName: "name"},
		sorts: map[string]string{SortName: "lower(col.name)"},
	},
	KindRollTable: {
		table: "rolltables", alias: "rt",
		text:  map[string]string{FieldName: "name"},
		sorts: map[string]string{SortName: "lower(rt.name)"},
	},
}

// # Filters

// Filter field names, as accepted on the query string.
const (
	FieldMessage             = "message"
	FieldTag                 = "tag"
	FieldName                = "name"
	FieldTitle               = "title"
	FieldIsPC                = "is_PC"
	FieldHasImage            = "has_image"
	FieldHasData             = "has_data"
	FieldCR                  = "cr"
	FieldType                = "type"
	FieldTypes               = "types"
	FieldParticipantsAtLeast = "combat_participants_at_least"
	FieldParticipantsAtMost  = "combat_participants_at_most"
	FieldParticipantsInRange = "combat_participants_in_range"
	FieldParticipantsName    = "combat_participants_name"
)

// Filter holds optional predicates; nil fields are not applied.
// Fields that mean nothing for the listed kind are ignored.
type Filter struct {
	Message *string
	Tag     *string
	Name    *string
	Title   *string

	IsPC     *bool
	HasImage *bool
	// HasData matches length(data) > 4 when true and < 4 when false.
	HasData *bool

	// CR is a pipe-delimited list of challenge ratings ("1/4|2").
	CR *string
	// Type is one image type; Types is a pipe-delimited list of them.
	Type  *string
	Types *string

	ParticipantsAtLeast *int
	ParticipantsAtMost  *int
	// ParticipantsName is a pipe-delimited list of substrings that must all
	// occur somewhere in the combat's participant names.
	ParticipantsName *string
}

// # Sorting

// Sort keys.
const (
	SortTitle           = "title"
	SortName            = "name"
	SortID              = "id"
	SortNumParticipants = "num_participants"
	SortAC              = "ac"
	SortCR              = "cr"
	SortInitiative      = "initiative"
	SortDimensions      = "dimensions"
)

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
	// None leaves the result in storage order.
	None Direction = "none"
)

// Sort names a sort key and a direction. Unknown keys sort by id.
type Sort struct {
	By  string
	Dir Direction
}

// DefaultSort orders by id, ascending.
var DefaultSort = Sort{By: SortID, Dir: Asc}

// # Results

// Page is one page of ids plus the total number of matching rows.
type Page struct {
	IDs   []int64
	Total int
}
