// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tabletop/internal/platform/sec"
)

// passwordCmd prints the bcrypt hash to put in GM_PASSWORD_HASH.
var passwordCmd = &cobra.Command{
	Use:   "gm-password",
	Short: "Hash a game master password read from stdin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}

		password := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(password) == "" {
			return errors.New("password must not be blank")
		}

		hash, err := sec.HashPassword(password)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
