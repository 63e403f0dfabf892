// Package cli defines the tmux-overview command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/atomicstack/tmux-overview/internal/app"
	"github.com/atomicstack/tmux-overview/internal/config"
	"github.com/atomicstack/tmux-overview/internal/logging"
	"github.com/atomicstack/tmux-overview/internal/logging/events"
	"github.com/spf13/cobra"
)

type cli struct {
	args    []string
	binding *config.Binding
	cfg     config.Config

	// runOverlay starts the interactive popup; replaced in tests.
	runOverlay func(app.Config) error
}

// NewRootCommand builds the command tree. args are parsed when the command
// executes; environ supplies TMUX_OVERVIEW_* flag defaults.
func NewRootCommand(args, environ []string) *cobra.Command {
	return newRootCommand(&cli{args: append([]string(nil), args...), runOverlay: app.Run}, environ)
}

func newRootCommand(c *cli, environ []string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tmux-overview",
		Short: "Window overview and switcher for tmux",
		Long: `tmux-overview shows every tmux window as a card with a live preview of
its active pane. Type to filter, move with the arrow keys or alt+h/j/k/l,
press enter to switch and escape to close.

Run it from a key binding inside display-popup; "tmux-overview bind"
registers the configured shortcut for you.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runOverlay(c.cfg.App)
		},
	}
	c.binding = config.Bind(root.PersistentFlags(), environ)
	root.SetArgs(c.args)

	root.AddCommand(
		c.newListCommand(),
		c.newShortcutCommand(),
		c.newBindCommand(),
		c.newSettingsCommand(),
		c.newThumbnailsCommand(),
	)
	return root
}

// Execute runs the command tree against the process arguments.
func Execute() {
	root := NewRootCommand(os.Args[1:], os.Environ())
	if err := root.Execute(); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Close()
		os.Exit(1)
	}
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := c.binding.Resolve(c.args)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	c.cfg = cfg
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	traceStartup(cmd.CommandPath(), cfg)
	return nil
}

func (c *cli) teardown(cmd *cobra.Command, _ []string) error {
	events.App.Exit(cmd.CommandPath())
	logging.Close()
	return nil
}

// openRuntime wires the engine for a subcommand. Callers must Close it.
func (c *cli) openRuntime(ctx context.Context) (*app.Runtime, error) {
	return app.Open(ctx, c.cfg.App)
}
