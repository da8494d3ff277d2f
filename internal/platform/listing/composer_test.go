// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing_test

import (
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
	"github.com/taibuivan/tabletop/pkg/pointer"
)

// newComposer returns a composer over a handle that never connects;
// these tests only render SQL.
func newComposer(t *testing.T) *listing.Composer {
	t.Helper()
	db := bun.NewDB(stdlib.OpenDB(pgx.ConnConfig{}), pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return listing.NewComposer(db)
}

func TestFilter_SelectsOnlyIDs(t *testing.T) {
	sql := newComposer(t).Filter(listing.KindEntity, listing.Filter{}).String()

	assert.True(t, strings.HasPrefix(sql, "SELECT e.id FROM entities AS e"), sql)
	assert.NotContains(t, sql, "WHERE")
}

func TestFilter_TextIsCaseInsensitiveContains(t *testing.T) {
	sql := newComposer(t).Filter(listing.KindCombat, listing.Filter{Title: pointer.To("AmBush")}).String()

	assert.Contains(t, sql, "c.title ILIKE '%ambush%'")
}

func TestFilter_IgnoresFieldsForeignToKind(t *testing.T) {
	filter := listing.Filter{
		IsPC:                pointer.To(true),
		Type:                pointer.To("map"),
		ParticipantsAtLeast: pointer.To(2),
		Title:               pointer.To("ambush"),
	}

	sql := newComposer(t).Filter(listing.KindMessage, filter).String()

	assert.Equal(t, "SELECT m.id FROM messages AS m", sql)
}

func TestFilter_EntityPredicates(t *testing.T) {
	filter := listing.Filter{
		IsPC:     pointer.To(false),
		HasImage: pointer.To(true),
		HasData:  pointer.To(true),
		CR:       pointer.To("1/4|2"),
	}

	sql := newComposer(t).Filter(listing.KindEntity, filter).String()

	assert.Regexp(t, `(?i)\(e\.is_pc = false\)`, sql)
	assert.Contains(t, sql, "(e.image_id IS NOT NULL)")
	assert.Contains(t, sql, "(length(e.data) > 4)")
	assert.Contains(t, sql, "(e.cr IN (0.25, 2))")
}

func TestFilter_HasDataFalseKeepsThreshold(t *testing.T) {
	sql := newComposer(t).Filter(listing.KindEntity, listing.Filter{
		HasImage: pointer.To(false),
		HasData:  pointer.To(false),
	}).String()

	assert.Contains(t, sql, "(e.image_id IS NULL)")
	assert.Contains(t, sql, "(length(e.data) < 4)")
}

func TestFilter_ImageTypes(t *testing.T) {
	sql := newComposer(t).Filter(listing.KindImage, listing.Filter{
		Type:  pointer.To("map"),
		Types: pointer.To("backdrop|handout"),
	}).String()

	assert.Contains(t, sql, "(i.type = 'map')")
	assert.Contains(t, sql, "(i.type IN ('backdrop', 'handout'))")
}

func TestFilter_ParticipantRangeSharesOneGroup(t *testing.T) {
	sql := newComposer(t).Filter(listing.KindCombat, listing.Filter{
		ParticipantsAtLeast: pointer.To(2),
		ParticipantsAtMost:  pointer.To(4),
		ParticipantsName:    pointer.To("goblin|wolf"),
	}).String()

	assert.Equal(t, 1, strings.Count(sql, "LEFT JOIN participants AS p"), sql)
	assert.Equal(t, 1, strings.Count(sql, "GROUP BY"), sql)
	assert.Contains(t, sql,
		"HAVING (count(p.id) >= 2) AND (count(p.id) <= 4)"+
			" AND (string_agg(p.name, ';') ILIKE '%goblin%')"+
			" AND (string_agg(p.name, ';') ILIKE '%wolf%')")
}

func TestFilter_SingleBound(t *testing.T) {
	sql := newComposer(t).Filter(listing.KindCombat, listing.Filter{ParticipantsAtMost: pointer.To(0)}).String()

	assert.Contains(t, sql, "HAVING (count(p.id) <= 0)")
	assert.NotContains(t, sql, ">=")
}

func TestFilter_InvalidCRFailsOnExecution(t *testing.T) {
	query := newComposer(t).Filter(listing.KindEntity, listing.Filter{CR: pointer.To("1/3")})

	assert.True(t, apperr.HasCode(query.Err(), apperr.CodeValidation))
	assert.Empty(t, query.String())
}

func TestFilter_UnknownKind(t *testing.T) {
	query := newComposer(t).Filter(listing.Kind("spell"), listing.Filter{})

	assert.True(t, apperr.HasCode(query.Err(), apperr.CodeInternal))
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		kind listing.Kind
		sort listing.Sort
		want string
	}{
		{"title lowercased", listing.KindCombat, listing.Sort{By: "title", Dir: listing.Asc}, "ORDER BY lower(c.title) ASC"},
		{"name desc", listing.KindEntity, listing.Sort{By: "name", Dir: listing.Desc}, "ORDER BY lower(e.name) DESC"},
		{"initiative uses modifier", listing.KindEntity, listing.Sort{By: "initiative", Dir: listing.Asc}, "ORDER BY e.initiative_modifier ASC"},
		{"cr", listing.KindEntity, listing.Sort{By: "cr", Dir: listing.Desc}, "ORDER BY e.cr DESC"},
		{"ac", listing.KindEntity, listing.Sort{By: "ac", Dir: listing.Asc}, "ORDER BY e.ac ASC"},
		{"dimensions is area", listing.KindImage, listing.Sort{By: "dimensions", Dir: listing.Desc}, "ORDER BY i.dimension_x * i.dimension_y DESC"},
		{"unknown key falls back to id", listing.KindImage, listing.Sort{By: "colour", Dir: listing.Asc}, "ORDER BY i.id ASC"},
		{"key foreign to kind falls back to id", listing.KindMessage, listing.Sort{By: "title", Dir: listing.Desc}, "ORDER BY m.id DESC"},
		{"tag name is label", listing.KindTag, listing.Sort{By: "name", Dir: listing.Asc}, "ORDER BY lower(t.label) ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := newComposer(t).Filter(tt.kind, listing.Filter{}).Sort(tt.sort).String()
			assert.Contains(t, sql, tt.want)
		})
	}
}

func TestSort_NoneLeavesUnordered(t *testing.T) {
	sql := newComposer(t).Filter(listing.KindCombat, listing.Filter{}).
		Sort(listing.Sort{By: "title", Dir: listing.None}).String()

	assert.NotContains(t, sql, "ORDER BY")
}

func TestSort_NumParticipantsReusesFilterJoin(t *testing.T) {
	sql := newComposer(t).
		Filter(listing.KindCombat, listing.Filter{ParticipantsAtLeast: pointer.To(1)}).
		Sort(listing.Sort{By: "num_participants", Dir: listing.Desc}).
		String()

	assert.Equal(t, 1, strings.Count(sql, "LEFT JOIN participants AS p"), sql)
	assert.Contains(t, sql, "ORDER BY count(p.id) DESC")
}

func TestSort_NumParticipantsOnOtherKindsFallsBackToID(t *testing.T) {
	sql := newComposer(t).Filter(listing.KindEntity, listing.Filter{}).
		Sort(listing.Sort{By: "num_participants", Dir: listing.Asc}).String()

	assert.NotContains(t, sql, "participants")
	assert.Contains(t, sql, "ORDER BY e.id ASC")
}

func TestPage(t *testing.T) {
	sql := newComposer(t).Filter(listing.KindTag, listing.Filter{}).Page(20, 40).String()

	assert.Contains(t, sql, "LIMIT 20 OFFSET 40")
}
