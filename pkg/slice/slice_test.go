// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tabletop/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"GOBLIN", "OGRE"}, slice.Map([]string{"goblin", "ogre"}, strings.ToUpper))
	assert.Nil(t, slice.Map[int, int](nil, func(v int) int { return v }))
}

func TestIndex(t *testing.T) {
	type row struct {
		ID   int64
		Name string
	}
	byID := slice.Index([]row{{1, "forest"}, {2, "cave"}, {1, "swamp"}}, func(r row) int64 { return r.ID })

	assert.Len(t, byID, 2)
	assert.Equal(t, "swamp", byID[1].Name)
}
