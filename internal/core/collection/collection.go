// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package collection groups images into named, curated sets.
//
// Unlike tags, collections are created deliberately: a taken name is a
// Conflict, never a lookup.
package collection

const (
	FieldName          = "name"
	FieldCollectionIDs = "collection_ids"
)

// ResourceCollection names the row kind in client-facing errors.
const ResourceCollection = "Collection"

const maxNameLength = 200

// Collection is a named set of images.
type Collection struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Input is the payload for creating or renaming a collection.
type Input struct {
	Name string `json:"name"`
}
