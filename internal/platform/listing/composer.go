// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/pkg/pointer"
	"github.com/taibuivan/tabletop/pkg/rating"
)

// Composer builds list queries against one database handle.
type Composer struct {
	db *bun.DB
}

// NewComposer creates a Composer.
func NewComposer(db *bun.DB) *Composer {
	return &Composer{db: db}
}

// Query is a composed id query. It is not safe for concurrent use.
type Query struct {
	kind   Kind
	source source
	query  *bun.SelectQuery

	// participantsJoined is set once the participants relation has been
	// joined and the query grouped by combat id.
	participantsJoined bool
}

// clause is one present filter field with its decoded value.
type clause struct {
	field string
	value any
}

// inRange carries merged participant-count bounds.
type inRange struct {
	atLeast int
	atMost  int
}

// dispatch maps a field name to its predicate. Fields with no entry are ignored.
var dispatch = map[string]func(q *Query, value any){
	FieldMessage:             textContains(FieldMessage),
	FieldTag:                 textContains(FieldTag),
	FieldName:                textContains(FieldName),
	FieldTitle:               textContains(FieldTitle),
	FieldIsPC:                isPC,
	FieldHasImage:            hasImage,
	FieldHasData:             hasData,
	FieldCR:                  crIsOneOf,
	FieldType:                typeIs,
	FieldTypes:               typeIsOneOf,
	FieldParticipantsAtLeast: participantsAtLeast,
	FieldParticipantsAtMost:  participantsAtMost,
	FieldParticipantsInRange: participantsInRange,
	FieldParticipantsName:    participantsName,
}

// Filter starts a query over kind and applies every present filter field.
//
// An unknown kind produces a query that fails on execution.
func (c *Composer) Filter(kind Kind, filter Filter) *Query {
	src, known := sources[kind]
	q := &Query{kind: kind, source: src, query: c.db.NewSelect()}
	if !known {
		q.query.Err(apperr.Internal(fmt.Errorf("listing: unknown kind %q", kind)))
		return q
	}

	q.query.
		TableExpr(fmt.Sprintf("%s AS %s", src.table, src.alias)).
		ColumnExpr(src.alias + ".id")

	// 1. Collect present fields, merging both count bounds into one range
	//    clause so the two HAVING predicates always share a single group.
	clauses := collect(filter)

	// 2. Dispatch
	for _, current := range clauses {
		if apply, found := dispatch[current.field]; found {
			apply(q, current.value)
		}
	}

	return q
}

// collect lists the present fields of filter in a fixed order.
func collect(filter Filter) []clause {
	var clauses []clause
	add := func(field string, present bool, value any) {
		if present {
			clauses = append(clauses, clause{field: field, value: value})
		}
	}

	add(FieldMessage, filter.Message != nil, pointer.Val(filter.Message))
	add(FieldTag, filter.Tag != nil, pointer.Val(filter.Tag))
	add(FieldName, filter.Name != nil, pointer.Val(filter.Name))
	add(FieldTitle, filter.Title != nil, pointer.Val(filter.Title))
	add(FieldIsPC, filter.IsPC != nil, pointer.Val(filter.IsPC))
	add(FieldHasImage, filter.HasImage != nil, pointer.Val(filter.HasImage))
	add(FieldHasData, filter.HasData != nil, pointer.Val(filter.HasData))
	add(FieldCR, filter.CR != nil, pointer.Val(filter.CR))
	add(FieldType, filter.Type != nil, pointer.Val(filter.Type))
	add(FieldTypes, filter.Types != nil, pointer.Val(filter.Types))

	switch {
	case filter.ParticipantsAtLeast != nil && filter.ParticipantsAtMost != nil:
		add(FieldParticipantsInRange, true, inRange{
			atLeast: *filter.ParticipantsAtLeast,
			atMost:  *filter.ParticipantsAtMost,
		})
	case filter.ParticipantsAtLeast != nil:
		add(FieldParticipantsAtLeast, true, *filter.ParticipantsAtLeast)
	case filter.ParticipantsAtMost != nil:
		add(FieldParticipantsAtMost, true, *filter.ParticipantsAtMost)
	}

	add(FieldParticipantsName, filter.ParticipantsName != nil, pointer.Val(filter.ParticipantsName))
	return clauses
}

// # Predicates

func textContains(field string) func(q *Query, value any) {
	return func(q *Query, value any) {
		column, ok := q.source.text[field]
		if !ok {
			return
		}
		pattern := "%" + strings.ToLower(value.(string)) + "%"
		q.query.Where(fmt.Sprintf("%s.%s ILIKE ?", q.source.alias, column), pattern)
	}
}

func isPC(q *Query, value any) {
	if q.kind == KindEntity {
		q.query.Where("e.is_pc = ?", value.(bool))
	}
}

func hasImage(q *Query, value any) {
	if q.kind != KindEntity {
		return
	}
	if value.(bool) {
		q.query.Where("e.image_id IS NOT NULL")
	} else {
		q.query.Where("e.image_id IS NULL")
	}
}

// hasData keeps the historical threshold: present means longer than 4 bytes,
// absent means shorter than 4. NULL and exactly 4 bytes match neither.
func hasData(q *Query, value any) {
	if q.kind != KindEntity {
		return
	}
	if value.(bool) {
		q.query.Where("length(e.data) > 4")
	} else {
		q.query.Where("length(e.data) < 4")
	}
}

func crIsOneOf(q *Query, value any) {
	if q.kind != KindEntity {
		return
	}
	ratings, err := rating.ParseList(value.(string))
	if err != nil {
		q.query.Err(apperr.ValidationError("Invalid challenge rating", apperr.FieldError{
			Field:   FieldCR,
			Message: "Must be a pipe-delimited list such as 1/4|2",
		}))
		return
	}
	if len(ratings) == 0 {
		return
	}
	q.query.Where("e.cr IN (?)", bun.In(ratings))
}

func typeIs(q *Query, value any) {
	if q.kind == KindImage {
		q.query.Where("i.type = ?", value.(string))
	}
}

func typeIsOneOf(q *Query, value any) {
	if q.kind != KindImage {
		return
	}
	types := splitPipe(value.(string))
	if len(types) == 0 {
		return
	}
	q.query.Where("i.type IN (?)", bun.In(types))
}

func participantsAtLeast(q *Query, value any) {
	if q.joinParticipants() {
		q.query.Having("count(p.id) >= ?", value.(int))
	}
}

func participantsAtMost(q *Query, value any) {
	if q.joinParticipants() {
		q.query.Having("count(p.id) <= ?", value.(int))
	}
}

func participantsInRange(q *Query, value any) {
	bounds := value.(inRange)
	if q.joinParticipants() {
		q.query.
			Having("count(p.id) >= ?", bounds.atLeast).
			Having("count(p.id) <= ?", bounds.atMost)
	}
}

// participantsName ANDs one ILIKE per substring against all participant
// names of the combat joined together, so different participants may
// satisfy different substrings.
func participantsName(q *Query, value any) {
	names := splitPipe(value.(string))
	if len(names) == 0 || !q.joinParticipants() {
		return
	}
	for _, name := range names {
		q.query.Having("string_agg(p.name, ';') ILIKE ?", "%"+name+"%")
	}
}

// joinParticipants adds the participants join and combat grouping once.
// It reports false for kinds other than combat.
func (q *Query) joinParticipants() bool {
	if q.kind != KindCombat {
		return false
	}
	if !q.participantsJoined {
		q.query.
			Join("LEFT JOIN participants AS p ON p.combat_id = c.id").
			GroupExpr("c.id")
		q.participantsJoined = true
	}
	return true
}

// # Sorting, paging and execution

// Sort applies the ORDER BY for sort. Direction None leaves the query unordered.
func (q *Query) Sort(sort Sort) *Query {
	if sort.Dir == None {
		return q
	}

	direction := "ASC"
	if sort.Dir == Desc {
		direction = "DESC"
	}

	// The aggregate takes the direction itself; it shares the join and
	// grouping with any participant-count filter.
	if sort.By == SortNumParticipants && q.joinParticipants() {
		q.query.OrderExpr("count(p.id) " + direction)
		return q
	}

	expression := q.source.alias + ".id"
	if mapped, found := q.source.sorts[sort.By]; found {
		expression = mapped
	}

	q.query.OrderExpr(expression + " " + direction)
	return q
}

// Page limits the query to one page. A non-positive limit means no limit.
func (q *Query) Page(limit, offset int) *Query {
	if limit > 0 {
		q.query.Limit(limit)
	}
	if offset > 0 {
		q.query.Offset(offset)
	}
	return q
}

// IDs executes the query and returns the matching ids in order.
func (q *Query) IDs(context context.Context) ([]int64, error) {
	ids := []int64{}
	if err := q.query.Scan(context, &ids); err != nil {
		return nil, wrap(err)
	}
	return ids, nil
}

// Count returns the number of matching rows, ignoring paging and order.
func (q *Query) Count(context context.Context) (int, error) {
	total, err := q.query.Count(context)
	if err != nil {
		return 0, wrap(err)
	}
	return total, nil
}

// Fetch runs the count and the id query for one page.
func (q *Query) Fetch(context context.Context) (Page, error) {
	total, err := q.Count(context)
	if err != nil {
		return Page{}, err
	}

	ids, err := q.IDs(context)
	if err != nil {
		return Page{}, err
	}

	return Page{IDs: ids, Total: total}, nil
}

// Load fetches one page and hydrates its ids with load, keeping the page order.
func Load[T any](context context.Context, query *Query, load func(context.Context, []int64) ([]T, error)) ([]T, int, error) {
	page, err := query.Fetch(context)
	if err != nil {
		return nil, 0, err
	}

	items, err := load(context, page.IDs)
	if err != nil {
		return nil, 0, err
	}
	return items, page.Total, nil
}

// String renders the SQL, for logs and tests. A query that failed to
// compose renders as the empty string.
func (q *Query) String() string {
	rendered, err := q.query.AppendQuery(q.query.DB().QueryGen(), nil)
	if err != nil {
		return ""
	}
	return string(rendered)
}

// Err returns the composition error, if any.
func (q *Query) Err() error {
	if _, err := q.query.AppendQuery(q.query.DB().QueryGen(), nil); err != nil {
		return wrap(err)
	}
	return nil
}

func wrap(err error) error {
	if apperr.IsAppError(err) {
		return err
	}
	return apperr.Internal(fmt.Errorf("listing: %w", err))
}

func splitPipe(list string) []string {
	var parts []string
	for _, part := range strings.Split(list, "|") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
