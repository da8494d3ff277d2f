// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package crud

import "github.com/taibuivan/tabletop/pkg/optional"

// Patch is an ordered column/value list for INSERT and sparse UPDATE statements.
type Patch struct {
	columns []string
	values  []any
}

// NewPatch returns an empty patch.
func NewPatch() *Patch {
	return &Patch{}
}

// Put writes value to column unconditionally. A later Put on the same column wins.
func (p *Patch) Put(column string, value any) *Patch {
	for index, existing := range p.columns {
		if existing == column {
			p.values[index] = value
			return p
		}
	}
	p.columns = append(p.columns, column)
	p.values = append(p.values, value)
	return p
}

// Empty reports whether no column has been set.
func (p *Patch) Empty() bool {
	return p == nil || len(p.columns) == 0
}

// Has reports whether column has been set.
func (p *Patch) Has(column string) bool {
	for _, existing := range p.columns {
		if existing == column {
			return true
		}
	}
	return false
}

// Columns returns the set columns in the order they were added.
func (p *Patch) Columns() []string {
	return append([]string(nil), p.columns...)
}

// Set writes *value to column when value is non-nil; nil leaves the column untouched.
func Set[T any](p *Patch, column string, value *T) *Patch {
	if value != nil {
		p.Put(column, *value)
	}
	return p
}

// SetOptional writes a tri-state field: absent is skipped, null writes NULL.
func SetOptional[T any](p *Patch, column string, value optional.Value[T]) *Patch {
	switch {
	case !value.Present():
	case value.IsNull():
		p.Put(column, nil)
	default:
		p.Put(column, value.Get())
	}
	return p
}
