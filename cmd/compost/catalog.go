package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/compost/pkg/bind"
)

func catalogCmd(c *cli) *cobra.Command {
	var (
		with    []string
		without []string
		attrs   bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the event catalog",
		Long: `Print the event kinds scanned for, one per line, in scan order.

The default catalog is adjusted by the config file's catalog.with and
catalog.without lists, then by the flags.

Examples:
  compost catalog
  compost catalog --without wheel --without scroll
  compost catalog --with animationend --attrs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := effectiveCatalog(c, with, without)
			lines := []string(catalog)
			if attrs {
				lines = catalog.Attrs(c.cfg.Prefix)
			}
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&with, "with", nil, "Add event kinds")
	cmd.Flags().StringSliceVar(&without, "without", nil, "Remove event kinds")
	cmd.Flags().BoolVar(&attrs, "attrs", false, "Print marker attribute names instead of kinds")

	return cmd
}

func effectiveCatalog(c *cli, with, without []string) bind.Catalog {
	return c.cfg.EffectiveCatalog().With(with...).Without(without...)
}
