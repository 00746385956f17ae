package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/talia-baeva/slotline/internal/cli/formatter"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the onboarding draft and current step",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			session, err := resumeWizard(ctx, app)
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Println(formatter.Dim("No signup in progress. Run slotline plans to get started."))
				return nil
			}

			fmt.Print(formatter.DraftSummary(app.Drafts.Get(), session.Plan.Name))
			if session.Expired(time.Now()) {
				fmt.Println(formatter.Errorf("Registration expired %s; run slotline reset --session and sign up again.",
					session.ExpiresAt.Local().Format(time.RFC822)))
			} else if !session.ExpiresAt.IsZero() {
				fmt.Println(formatter.Dim("Registration valid until " + session.ExpiresAt.Local().Format(time.RFC822) + "."))
			}
			return nil
		},
	}
}
