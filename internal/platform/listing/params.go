// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/rating"
)

// ParseFilter reads filter fields from a query string.
//
// Empty values count as absent. Malformed booleans, integers and challenge
// ratings are reported together as one validation error.
func ParseFilter(values url.Values) (Filter, error) {
	var (
		filter    Filter
		validator validate.Validator
	)

	text := func(field string) *string {
		if raw := strings.TrimSpace(values.Get(field)); raw != "" {
			return &raw
		}
		return nil
	}

	boolean := func(field string) *bool {
		raw := strings.TrimSpace(values.Get(field))
		if raw == "" {
			return nil
		}
		parsed, err := strconv.ParseBool(raw)
		validator.Custom(field, err != nil, "Must be true or false")
		return &parsed
	}

	count := func(field string) *int {
		raw := strings.TrimSpace(values.Get(field))
		if raw == "" {
			return nil
		}
		parsed, err := strconv.Atoi(raw)
		validator.Custom(field, err != nil || parsed < 0, "Must be a non-negative integer")
		return &parsed
	}

	filter.Message = text(FieldMessage)
	filter.Tag = text(FieldTag)
	filter.Name = text(FieldName)
	filter.Title = text(FieldTitle)
	filter.IsPC = boolean(FieldIsPC)
	filter.HasImage = boolean(FieldHasImage)
	filter.HasData = boolean(FieldHasData)
	filter.CR = text(FieldCR)
	filter.Type = text(FieldType)
	filter.Types = text(FieldTypes)
	filter.ParticipantsAtLeast = count(FieldParticipantsAtLeast)
	filter.ParticipantsAtMost = count(FieldParticipantsAtMost)
	filter.ParticipantsName = text(FieldParticipantsName)

	if filter.CR != nil {
		_, err := rating.ParseList(*filter.CR)
		validator.Custom(FieldCR, err != nil, "Must be a pipe-delimited list such as 1/4|2")
	}

	if err := validator.Err(); err != nil {
		return Filter{}, err
	}
	return filter, nil
}

// ParseSort reads sort_by and sort_dir. Missing values fall back to [DefaultSort].
func ParseSort(values url.Values) (Sort, error) {
	sort := DefaultSort

	if by := strings.TrimSpace(values.Get("sort_by")); by != "" {
		sort.By = by
	}

	if dir := strings.ToLower(strings.TrimSpace(values.Get("sort_dir"))); dir != "" {
		var validator validate.Validator
		validator.OneOf("sort_dir", dir, string(Asc), string(Desc), string(None))
		if err := validator.Err(); err != nil {
			return Sort{}, err
		}
		sort.Dir = Direction(dir)
	}

	return sort, nil
}

// FromQuery parses both the filter and the sort of a list request.
func FromQuery(values url.Values) (Filter, Sort, error) {
	filter, err := ParseFilter(values)
	if err != nil {
		return Filter{}, Sort{}, err
	}

	sort, err := ParseSort(values)
	if err != nil {
		return Filter{}, Sort{}, err
	}
	return filter, sort, nil
}
