package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Maximilian-Winter/pytonium-shell/internal/config"
)

// newConfigCmd prints the effective shell configuration (defaults merged
// with any file and environment overrides), useful for confirming what a
// given --config flag actually resolves to.
func newConfigCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective shell configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := config.NewManager(flags.ConfigPath)
			if err != nil {
				return err
			}
			if err := mgr.Load(); err != nil {
				return err
			}
			cfg := mgr.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", cfg)
			return nil
		},
	}
	cmd.AddCommand(newConfigSchemaCmd())
	return cmd
}

// newConfigSchemaCmd prints a JSON Schema document describing shell.json,
// for widget authors and editor tooling to validate against.
func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for shell.json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
}
