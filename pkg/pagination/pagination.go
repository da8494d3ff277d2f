// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pagination reads page/limit query parameters and builds the "meta"
member of paginated list responses.

Pages are 1-indexed. Parsing never fails: a missing or malformed value takes
its default, and a limit above [MaxLimit] is clamped to it.
*/
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultPage  = 1
)

// Params is a requested page window.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows before the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta accompanies every paginated list response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

func FromRequest(request *http.Request) Params {
	return FromQuery(request.URL.Query())
}

// FromQuery parses "page" and "limit" from query values.
func FromQuery(values url.Values) Params {
	page := intValue(values, "page", DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := intValue(values, "limit", DefaultLimit)
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

func intValue(values url.Values, key string, fallback int) int {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil {
		return fallback
	}
	return n
}
