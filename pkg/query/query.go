// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters such as "?tags=1,2,3".
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// List splits a comma-separated value into trimmed, non-empty parts.
func List(raw string) []string {
	if raw == "" {
		return nil
	}

	var parts []string
	for _, part := range strings.Split(raw, ",") {
		if clean := strings.TrimSpace(part); clean != "" {
			parts = append(parts, clean)
		}
	}
	return parts
}

// IDs parses a comma-separated list of positive ids. The first malformed
// entry fails the whole list.
func IDs(raw string) ([]int64, error) {
	parts := List(raw)

	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("query: %q is not a valid id", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
