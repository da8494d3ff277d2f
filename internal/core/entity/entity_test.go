// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/core/entity"
	"github.com/taibuivan/tabletop/pkg/pointer"
)

func TestParseCR(t *testing.T) {
	tests := []struct {
		in      string
		want    *float64
		wantErr bool
	}{
		{"1/8", pointer.To(0.125), false},
		{"1/4", pointer.To(0.25), false},
		{"1/2", pointer.To(0.5), false},
		{"3", pointer.To(3.0), false},
		{"", nil, false},
		{"  ", nil, false},
		{"1/3", nil, true},
		{"-1", nil, true},
		{"abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := entity.ParseCR(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCR(t *testing.T) {
	assert.Nil(t, entity.FormatCR(nil))
	assert.Equal(t, "1/4", *entity.FormatCR(pointer.To(0.25)))
	assert.Equal(t, "12", *entity.FormatCR(pointer.To(12.0)))
}

func TestEntity_MarshalJSON(t *testing.T) {
	goblin := entity.Entity{ID: 7, Name: "Goblin", HitDice: "2d6+2", AC: 15, CR: pointer.To(0.25)}

	raw, err := json.Marshal(goblin)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "1/4", decoded["cr"])
	assert.Equal(t, "Goblin", decoded["name"])
	assert.EqualValues(t, 15, decoded["ac"])

	raw, err = json.Marshal(entity.Entity{Name: "Commoner"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"cr":null`)
}
