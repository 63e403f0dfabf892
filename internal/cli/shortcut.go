package cli

import (
	"fmt"

	"github.com/atomicstack/tmux-overview/internal/settings"
	"github.com/spf13/cobra"
)

func (c *cli) newShortcutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcut",
		Short: "Show the global shortcut",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()
			fmt.Fprintln(cmd.OutOrStdout(), rt.Service.Shortcut())
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "set <shortcut>",
		Short:   "Change, register and save the global shortcut",
		Example: "  tmux-overview shortcut set ctrl+alt+o",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := rt.Service.SetShortcut(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shortcut set to %s\n", rt.Service.Shortcut())
			return nil
		},
	})
	return cmd
}

func (c *cli) newBindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bind",
		Short: "Register the saved shortcut with tmux",
		Long: `Bind the saved shortcut in tmux's root key table so it opens the
overview in a popup. Run it from your tmux.conf, e.g.

  run-shell "tmux-overview bind"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()
			saved := rt.Service.Shortcut()
			if err := rt.Service.SetShortcut(saved); err != nil {
				return err
			}
			sc, _ := settings.ParseShortcut(saved)
			key, _ := sc.TmuxKey()
			fmt.Fprintf(cmd.OutOrStdout(), "bound %s (%s)\n", sc, key)
			return nil
		},
	}
}
