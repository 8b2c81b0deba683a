package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	cerrors "github.com/vango-dev/compost/internal/errors"
	"github.com/vango-dev/compost/pkg/bind"
	"github.com/vango-dev/compost/pkg/vdom"
)

func scanCmd(c *cli) *cobra.Command {
	var (
		handlers []string
		compact  bool
	)

	cmd := &cobra.Command{
		Use:   "scan <file.html>",
		Short: "List the bindings a template declares",
		Long: `List every marker attribute in a template, in the order a component
would bind them.

With --handlers, each marker is also resolved against the given handler
names and every marker that would fail to bind is reported. --compact
prints one line per failure instead of a block.

Examples:
  compost scan todo.html
  compost scan todo.html --handlers add,toggle,remove
  compost scan todo.html --handlers add --compact`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := parseFile(args[0])
			if err != nil {
				return err
			}

			matches := bind.Scan(root, c.cfg.EffectiveCatalog(), c.cfg.Prefix)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tHANDLER\tELEMENT")
			for _, m := range matches {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Kind, m.Handler, m.Element.Path())
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if !cmd.Flags().Changed("handlers") {
				return nil
			}

			errs := bind.Check(matches, noopHandlers(handlers))
			for _, err := range errs {
				ce, ok := err.(*cerrors.CompostError)
				switch {
				case !ok:
					cerrors.Fprint(cmd.ErrOrStderr(), err)
				case compact:
					fmt.Fprintln(cmd.ErrOrStderr(), ce.FormatCompact())
				default:
					fmt.Fprint(cmd.ErrOrStderr(), ce.Format())
				}
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d bindings cannot be resolved", len(errs), len(matches))
			}
			success(cmd.OutOrStdout(), "All %d bindings resolve", len(matches))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&handlers, "handlers", nil, "Handler names to resolve against")
	cmd.Flags().BoolVar(&compact, "compact", false, "Report each failure on one line")

	return cmd
}

func parseFile(path string) (*vdom.VNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return vdom.Parse(f)
}

func noopHandlers(names []string) bind.Handlers {
	h := make(bind.Handlers, len(names))
	for _, name := range names {
		h[name] = func(*vdom.Event) {}
	}
	return h
}
