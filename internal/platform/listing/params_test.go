// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/listing"
)

func TestParseFilter(t *testing.T) {
	values := url.Values{
		"name":                         {"goblin"},
		"is_PC":                        {"false"},
		"cr":                           {"1/4|1"},
		"combat_participants_at_least": {"2"},
		"title":                        {""},
	}

	filter, err := listing.ParseFilter(values)
	require.NoError(t, err)

	require.NotNil(t, filter.Name)
	assert.Equal(t, "goblin", *filter.Name)
	require.NotNil(t, filter.IsPC)
	assert.False(t, *filter.IsPC)
	assert.Equal(t, "1/4|1", *filter.CR)
	assert.Equal(t, 2, *filter.ParticipantsAtLeast)
	assert.Nil(t, filter.Title)
	assert.Nil(t, filter.ParticipantsAtMost)
}

func TestParseFilter_ReportsEveryBadField(t *testing.T) {
	values := url.Values{
		"has_image":                   {"maybe"},
		"combat_participants_at_most": {"-1"},
		"cr":                          {"1/3"},
	}

	_, err := listing.ParseFilter(values)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Len(t, appErr.Details, 3)
}

func TestParseSort(t *testing.T) {
	sort, err := listing.ParseSort(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, listing.DefaultSort, sort)

	sort, err = listing.ParseSort(url.Values{"sort_by": {"num_participants"}, "sort_dir": {"DESC"}})
	require.NoError(t, err)
	assert.Equal(t, listing.Sort{By: "num_participants", Dir: listing.Desc}, sort)

	_, err = listing.ParseSort(url.Values{"sort_dir": {"sideways"}})
	assert.Error(t, err)
}
