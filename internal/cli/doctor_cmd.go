package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Maximilian-Winter/pytonium-shell/internal/winapi"
)

// newDoctorCmd runs a handful of environment checks useful before filing a
// bug report: whether the widgets directory resolves and exists, and how
// many monitors the Win32 layer can enumerate.
func newDoctorCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the local environment for common setup problems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			widgetsDir, err := resolveWidgetsDir(flags)
			if err != nil {
				fmt.Fprintf(out, "widgets directory: ERROR resolving: %v\n", err)
			} else if _, statErr := os.Stat(widgetsDir); statErr != nil {
				fmt.Fprintf(out, "widgets directory: MISSING %s\n", widgetsDir)
			} else {
				fmt.Fprintf(out, "widgets directory: OK %s\n", widgetsDir)
			}

			monitors, err := winapi.EnumMonitors()
			if err != nil {
				fmt.Fprintf(out, "monitors: ERROR %v\n", err)
			} else {
				fmt.Fprintf(out, "monitors: OK (%d detected)\n", len(monitors))
			}

			return nil
		},
	}
}
