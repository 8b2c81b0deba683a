package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/compost/internal/config"
	cerrors "github.com/vango-dev/compost/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cli holds state shared by every command, filled in before each run.
type cli struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		cerrors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "compost",
		Short: "Inspect and serve components with declarative event bindings",
		Long: `compost works with component markup whose elements declare their own
event bindings through on-<event> attributes:

  <form on-submit="save">
    <input name="title" on-input="validate">
  </form>

Use it to list the event catalog, check which bindings a template declares,
and serve a template with a live Go instance behind it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file (default: compost.json or compost.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config)")

	rootCmd.AddCommand(
		catalogCmd(c),
		scanCmd(c),
		serveCmd(c),
		versionCmd(),
	)

	return rootCmd
}

// setup loads configuration and builds the logger.
func (c *cli) setup(stderr io.Writer) error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	if c.logLevel != "" {
		c.cfg.Log.Level = c.logLevel
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	level, _ := c.cfg.LogLevel()
	c.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(c.logger)
	return nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
