package cli

import (
	"fmt"
	"os"

	"github.com/atomicstack/tmux-overview/internal/settings"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (c *cli) newSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()
			cur := rt.Settings.Current()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:        %s\n", rt.Settings.Path())
			fmt.Fprintf(out, "shortcut:    %s\n", cur.Shortcut)
			fmt.Fprintf(out, "disable_ime: %t\n", cur.DisableIME)
			return nil
		},
	}

	var accessible bool
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Edit the settings interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.openRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()
			cur := rt.Settings.Current()
			shortcut := cur.Shortcut
			disableIME := cur.DisableIME

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Global shortcut").
						Description("e.g. alt+space, ctrl+alt+o, f12").
						Value(&shortcut).
						Validate(validateShortcut),
					huh.NewConfirm().
						Title("Switch to an English input source when the overview opens?").
						Affirmative("Yes").
						Negative("No").
						Value(&disableIME),
				),
			).WithTheme(huh.ThemeDracula())
			if accessible || !term.IsTerminal(int(os.Stdin.Fd())) {
				form = form.WithAccessible(true)
			}
			if err := form.Run(); err != nil {
				return fmt.Errorf("settings form: %w", err)
			}

			if shortcut != cur.Shortcut {
				if err := rt.Service.SetShortcut(shortcut); err != nil {
					return err
				}
			}
			if disableIME != cur.DisableIME {
				if err := rt.Settings.SetDisableIME(disableIME); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", rt.Settings.Path())
			return nil
		},
	}
	edit.Flags().BoolVar(&accessible, "accessible", false, "use plain prompts instead of the form UI")
	cmd.AddCommand(edit)
	return cmd
}

func validateShortcut(value string) error {
	_, err := settings.ParseShortcut(value)
	return err
}
