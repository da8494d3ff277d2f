// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entity manages the bestiary: reusable stat templates for creatures and
characters that seed combat participants.

Entities are read-mostly. Participants copy their stat fields at creation time
and keep only a nullable back-reference, so deleting an entity never touches a
running combat.
*/
package entity

import (
	"encoding/json"
	"strings"

	"github.com/taibuivan/tabletop/pkg/optional"
	"github.com/taibuivan/tabletop/pkg/rating"
)

// # Field Identifiers

const (
	FieldName               = "name"
	FieldHitDice            = "hit_dice"
	FieldAC                 = "ac"
	FieldCR                 = "cr"
	FieldInitiativeModifier = "initiative_modifier"
	FieldSourcePage         = "source_page"
	FieldImageID            = "image_id"
)

// DefaultAC is used when a new entity does not state its armour class.
const DefaultAC = 10

// # Domain Model

// Entity is a stat template.
//
// CR is stored as a float and travels as table notation ("1/4", "2") in JSON.
type Entity struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	HitDice            string   `json:"hit_dice"`
	AC                 int      `json:"ac"`
	CR                 *float64 `json:"-"`
	InitiativeModifier int      `json:"initiative_modifier"`
	IsPC               bool     `json:"is_PC"`
	ImageID            *int64   `json:"image_id"`
	Data               []byte   `json:"data,omitempty"`
	Source             *string  `json:"source"`
	SourcePage         *int     `json:"source_page"`
}

// MarshalJSON renders CR in table notation.
func (e Entity) MarshalJSON() ([]byte, error) {
	type plain Entity
	return json.Marshal(struct {
		plain
		CR *string `json:"cr"`
	}{plain(e), FormatCR(e.CR)})
}

// # Challenge Rating

// ParseCR decodes table notation. The empty string means "no rating".
func ParseCR(notation string) (*float64, error) {
	if strings.TrimSpace(notation) == "" {
		return nil, nil
	}

	value, err := rating.Parse(notation)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// FormatCR is the inverse of [ParseCR].
func FormatCR(value *float64) *string {
	if value == nil {
		return nil
	}
	notation := rating.Format(*value)
	return &notation
}

// # Inputs

// CreateInput is the payload for a new entity.
type CreateInput struct {
	Name               string  `json:"name"`
	HitDice            string  `json:"hit_dice"`
	AC                 *int    `json:"ac"`
	CR                 string  `json:"cr"`
	InitiativeModifier int     `json:"initiative_modifier"`
	IsPC               bool    `json:"is_PC"`
	ImageID            *int64  `json:"image_id"`
	Data               []byte  `json:"data"`
	Source             *string `json:"source"`
	SourcePage         *int    `json:"source_page"`
}

// UpdateInput is a sparse update. Absent fields are left untouched; nullable
// fields may be cleared with an explicit null.
type UpdateInput struct {
	Name               *string                `json:"name"`
	HitDice            *string                `json:"hit_dice"`
	AC                 *int                   `json:"ac"`
	CR                 optional.Value[string] `json:"cr"`
	InitiativeModifier *int                   `json:"initiative_modifier"`
	IsPC               *bool                  `json:"is_PC"`
	ImageID            optional.Value[int64]  `json:"image_id"`
	Data               optional.Value[[]byte] `json:"data"`
	Source             optional.Value[string] `json:"source"`
	SourcePage         optional.Value[int]    `json:"source_page"`
}
