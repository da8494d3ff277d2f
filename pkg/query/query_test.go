// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/pkg/query"
)

func TestList(t *testing.T) {
	assert.Nil(t, query.List(""))
	assert.Equal(t, []string{"a", "b c"}, query.List(" a,, b c ,"))
}

func TestIDs(t *testing.T) {
	ids, err := query.IDs("3, 1,2")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)

	empty, err := query.IDs("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, raw := range []string{"1,x", "0", "-4"} {
		_, err := query.IDs(raw)
		assert.Error(t, err, raw)
	}
}
