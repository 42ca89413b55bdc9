package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mchmarny/navmenu/internal/config"
	"github.com/mchmarny/navmenu/pkg/menu"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that a menu definition loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}

			m, err := loadMenu(cmd, s)
			if err != nil {
				return err
			}

			count := 0
			m.Walk(func(*menu.Item, int) bool {
				count++
				return true
			})

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d items)\n", s.File, count)
			return err
		},
	}
}
