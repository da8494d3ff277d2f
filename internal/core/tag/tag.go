// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tag classifies images with free-form lowercase labels.

Labels are unique after Unicode case folding, so "Forest" and "forest" are the
same tag. Tags can be merged: the source tag's images move to the target and
the source is left behind, empty, for the caller to delete or keep.
*/
package tag

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// # Field Identifiers

const (
	FieldLabel    = "label"
	FieldTagIDs   = "tag_ids"
	FieldSourceID = "source_id"
	FieldLimit    = "limit"
)

// ResourceTag names the row kind in client-facing errors.
const ResourceTag = "Tag"

// DefaultMatchLimit caps an image ranking when the caller does not.
const DefaultMatchLimit = 12

const maxLabelLength = 100

// # Domain Model

// Tag is one label.
type Tag struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Match is one image in a tag ranking.
type Match struct {
	ImageID    int64   `json:"image_id"`
	MatchCount int     `json:"match_count"`
	TagIDs     []int64 `json:"tag_ids"`
}

// MergeReport counts what a merge did with the source tag's images.
type MergeReport struct {
	// Moved images now carry the target tag instead of the source.
	Moved int64 `json:"moved"`
	// Dropped images already carried both; their source link was removed.
	Dropped int64 `json:"dropped"`
}

// NormaliseLabel trims and lowercases a label. A Caser keeps state between
// calls, so each call builds its own.
func NormaliseLabel(label string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(label))
}
