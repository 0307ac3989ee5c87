package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/prefs"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ec27e"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

func newPrefsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change stored preferences",
		Long: `Show or change stored preferences.

Keys:
  theme            light | dark
  shortcutEnabled  true | false
  shortcutKey      ` + strings.Join(common.SupportedShortcuts, " | ") + `
  alwaysOnTop      true | false

A running ChatDock picks up changes on its next start.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			p, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			return printPreferences(cmd.OutOrStdout(), p)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one preference",
		Example: `  chatdock prefs set theme light
  chatdock prefs set shortcutKey Ctrl+Space`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			key, value := args[0], strings.TrimSpace(args[1])
			if err := store.SetValue(cmd.Context(), key, value); err != nil {
				if errors.Is(err, common.ErrUnknownPreference) {
					return fmt.Errorf("%w (known keys: %s)", err, strings.Join(prefs.Keys, ", "))
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ "+key+" = "+value))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore every preference to its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Preferences reset"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Edit preferences interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("prefs edit needs an interactive terminal; use prefs set instead")
			}

			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			return runEditor(cmd.Context(), store)
		},
	})

	return cmd
}

// printPreferences renders p as a two-column table.
func printPreferences(w io.Writer, p prefs.Preferences) error {
	rows := make([][]string, 0, len(prefs.Keys))
	for _, key := range prefs.Keys {
		value, err := p.Encode(key)
		if err != nil {
			return err
		}
		rows = append(rows, []string{key, value})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("KEY", "VALUE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, hintStyle.Render("Change a value with: chatdock prefs set <key> <value>"))
	return nil
}
