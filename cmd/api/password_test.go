// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/platform/sec"
)

func TestPasswordCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("critical hit\n"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"gm-password"})

	require.NoError(t, rootCmd.Execute())

	hash := strings.TrimSpace(out.String())
	assert.True(t, sec.CheckPasswordHash("critical hit", hash))
}

func TestPasswordCommand_Blank(t *testing.T) {
	rootCmd.SetIn(strings.NewReader("   \n"))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"gm-password"})

	assert.Error(t, rootCmd.Execute())
}
