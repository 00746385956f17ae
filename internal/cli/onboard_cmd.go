package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/talia-baeva/slotline/internal/cli/formatter"
)

var errNotATerminal = errors.New("onboard needs an interactive terminal; use signup and open for scripted runs")

// newOnboardCmd runs the interactive onboarding wizard, resuming whatever
// signup is in progress or starting a fresh one.
func newOnboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Run the interactive onboarding wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return errNotATerminal
			}

			session, err := resumeWizard(cmd.Context(), app)
			if err != nil {
				return err
			}
			if session == nil {
				cmd.Println(formatter.Dim("No signup in progress; starting from plan selection."))
			}
			return runWizard(app, session)
		},
	}
}
