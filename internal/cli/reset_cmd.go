package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/talia-baeva/slotline/internal/cli/formatter"
)

func newResetCmd(app *App) *cobra.Command {
	var dropSession bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the onboarding draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := app.Drafts.Reset(ctx); err != nil {
				return err
			}
			fmt.Println(formatter.Success("Draft discarded."))

			if dropSession {
				if err := app.Sessions.Discard(ctx); err != nil {
					return err
				}
				fmt.Println(formatter.Success("Registration session discarded."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dropSession, "session", false, "Also discard the registration session")
	return cmd
}
