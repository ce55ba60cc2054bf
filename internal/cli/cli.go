// Package cli implements the pytonium-shell command line:
// `pytonium-shell [--widgets-dir <path>] [--config <path>] [--theme <name>]`,
// plus `config` and `doctor` diagnostic subcommands. Grounded on the Cobra
// root-command shape in internal/cli/cmd/root.go, adapted from its
// GTK-browser flag set to this project's three flags and its
// PersistentPreRunE app-context pattern dropped in favor of simple flag
// binding, since this shell has no subcommand-shared app handle to
// construct.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Maximilian-Winter/pytonium-shell/internal/config"
	"github.com/Maximilian-Winter/pytonium-shell/internal/logging"
	"github.com/Maximilian-Winter/pytonium-shell/internal/shell"
)

// Flags holds the three top-level flags the root command accepts.
type Flags struct {
	WidgetsDir string
	ConfigPath string
	Theme      string
}

// NewRootCmd builds the pytonium-shell root command and its subcommands.
func NewRootCmd() *cobra.Command {
	flags := &Flags{}

	root := &cobra.Command{
		Use:           "pytonium-shell",
		Short:         "A desktop widget framework composing embedded-browser windows into a shell",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.WidgetsDir, "widgets-dir", "", "directory containing widget subdirectories (default: bundled example widgets)")
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to shell config JSON (default: none)")
	root.PersistentFlags().StringVar(&flags.Theme, "theme", "default", "theme name")

	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newDoctorCmd(flags))
	return root
}

// Execute runs the root command, translating a failed run into a non-zero
// exit code (0 on clean shutdown).
func Execute() {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveWidgetsDir(flags *Flags) (string, error) {
	if flags.WidgetsDir != "" {
		return flags.WidgetsDir, nil
	}
	dataDir, err := config.DataDir()
	if err != nil {
		return "", fmt.Errorf("resolve bundled widgets directory: %w", err)
	}
	return dataDir + string(os.PathSeparator) + "widgets", nil
}

func runShell(ctx context.Context, flags *Flags) error {
	widgetsDir, err := resolveWidgetsDir(flags)
	if err != nil {
		return err
	}
	if _, err := os.Stat(widgetsDir); err != nil {
		return fmt.Errorf("widgets directory %s does not exist: %w", widgetsDir, err)
	}

	logCfg := logging.Config{Level: "info", Format: "console"}
	if cfgMgr, err := config.NewManager(flags.ConfigPath); err == nil && cfgMgr.Load() == nil {
		lc := cfgMgr.Get().Logging
		logCfg = logging.Config{Level: lc.Level, Format: lc.Format}
	}
	logger := logging.New(logCfg)
	ctx = logging.WithContext(ctx, logger)

	mgr, err := shell.New(ctx, shell.Options{
		WidgetsDir: widgetsDir,
		ConfigPath: flags.ConfigPath,
		ThemeName:  flags.Theme,
	})
	if err != nil {
		return err
	}
	return mgr.Run(ctx, widgetsDir)
}
