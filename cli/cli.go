// Package cli provides the ChatDock command tree. Without a subcommand it
// launches the GUI; the prefs subcommands edit stored preferences from the
// terminal without starting it.
//
// The GUI is passed in as a GUIFunc so that the preference and version
// commands never link the windowing libraries.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/prefs"
)

// BuildInfo carries the values injected via ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	CommitSHA string
}

// GUIOptions is what the root command hands to the GUI.
type GUIOptions struct {
	Verbose   bool
	PrefsPath string
	Version   string
}

// GUIFunc starts the desktop application and blocks until it exits.
type GUIFunc func(ctx context.Context, opts GUIOptions) error

type rootOptions struct {
	verbose   bool
	prefsPath string
}

// Execute runs the command tree and returns the process exit code.
func Execute(info BuildInfo, gui GUIFunc) int {
	cmd := NewRootCommand(info, gui)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the full command tree.
func NewRootCommand(info BuildInfo, gui GUIFunc) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "chatdock",
		Short:         "Chat assistant in a tray window",
		Long:          "ChatDock keeps a chat site one global shortcut away.\nRun without a command to start the desktop app.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if gui == nil {
				return errors.New("this build has no desktop app")
			}
			path, err := opts.resolvePrefsPath()
			if err != nil {
				return err
			}
			return gui(cmd.Context(), GUIOptions{
				Verbose:   opts.verbose,
				PrefsPath: path,
				Version:   info.Version,
			})
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&opts.prefsPath, "prefs-file", "", "Preference database (default: config directory)")
	_ = root.PersistentFlags().MarkHidden("prefs-file")

	root.AddCommand(newPrefsCommand(opts))
	root.AddCommand(newVersionCommand(info))

	return root
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout(), info)
		},
	}
}

func printVersion(w io.Writer, info BuildInfo) {
	fmt.Fprintf(w, "%s v%s\n", common.AppName, info.Version)
	if info.BuildTime != "" && info.BuildTime != "unknown" {
		fmt.Fprintf(w, "  Build:  %s\n", info.BuildTime)
		fmt.Fprintf(w, "  Commit: %s\n", info.CommitSHA)
	}
}

// resolvePrefsPath returns --prefs-file or the default database path.
func (o *rootOptions) resolvePrefsPath() (string, error) {
	if o.prefsPath != "" {
		return o.prefsPath, nil
	}
	return prefs.DefaultPath()
}

// openStore opens the preference database named by --prefs-file or the
// default one.
func (o *rootOptions) openStore() (*prefs.Store, error) {
	path, err := o.resolvePrefsPath()
	if err != nil {
		return nil, err
	}
	return prefs.Open(path)
}
