package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/compost"
	"github.com/vango-dev/compost/pkg/bind"
	"github.com/vango-dev/compost/pkg/bridge"
	"github.com/vango-dev/compost/pkg/vdom"
)

func serveCmd(c *cli) *cobra.Command {
	var (
		addr     string
		handlers []string
		sanitize bool
	)

	cmd := &cobra.Command{
		Use:   "serve <file.html>",
		Short: "Serve a template with a live instance per browser",
		Long: `Serve a template over HTTP. Each browser tab gets its own Go instance,
connected over a websocket; every bound event is logged as it arrives.

Handlers default to the names the template declares. Use --sanitize for
templates from untrusted sources.

Examples:
  compost serve todo.html
  compost serve todo.html --addr :8080 --log-level debug`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			return runServe(cmd, c, string(markup), handlers, sanitize)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().StringSliceVar(&handlers, "handlers", nil, "Handler names to provide")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Strip scripts and native inline handlers from the template")

	return cmd
}

func runServe(cmd *cobra.Command, c *cli, markup string, names []string, sanitize bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog := c.cfg.EffectiveCatalog()
	if len(names) == 0 {
		root, err := vdom.ParseString(markup)
		if err != nil {
			return err
		}
		names = declaredHandlers(bind.Scan(root, catalog, c.cfg.Prefix))
	}

	reg := prometheus.NewRegistry()
	opts := []compost.DefineOption{
		compost.WithCatalog(catalog),
		compost.WithPrefix(c.cfg.Prefix),
		compost.WithLogger(c.logger),
		compost.WithMetrics(bind.NewMetrics(
			bind.WithNamespace(c.cfg.Metrics.Namespace),
			bind.WithRegistry(reg),
		)),
	}
	if sanitize {
		opts = append(opts, compost.WithSanitize())
	}
	def := compost.Define("x-preview", markup, opts...)

	b := bridge.New(func() (*compost.Instance, error) {
		return def.New(loggingHandlers(c.logger, names))
	}, &bridge.Config{
		Addr:            c.cfg.Server.Addr,
		WSPath:          c.cfg.Server.WSPath,
		ReadBufferSize:  c.cfg.Server.ReadBufferSize,
		WriteBufferSize: c.cfg.Server.WriteBufferSize,
		ReadLimit:       c.cfg.Server.ReadLimit,
		Forward:         c.cfg.Server.Forward,
		Namespace:       c.cfg.Metrics.Namespace,
		Registerer:      reg,
		Gatherer:        reg,
		Logger:          c.logger,
	})

	success(cmd.OutOrStdout(), "Serving %d handlers", len(names))
	info(cmd.OutOrStdout(), "http://%s", c.cfg.Server.Addr)
	return b.ListenAndServe(ctx)
}

// declaredHandlers returns the distinct non-empty handler names in matches.
func declaredHandlers(matches []bind.Match) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		if m.Handler == "" || seen[m.Handler] {
			continue
		}
		seen[m.Handler] = true
		names = append(names, m.Handler)
	}
	return names
}

// loggingHandlers provides a handler per name that logs each event.
func loggingHandlers(logger *slog.Logger, names []string) bind.Handlers {
	h := make(bind.Handlers, len(names))
	for _, name := range names {
		h[name] = func(e *vdom.Event) {
			logger.Info("event",
				"handler", name,
				"type", e.Type,
				"element", e.Target.Path(),
				"detail", fmt.Sprint(e.Detail))
		}
	}
	return h
}
