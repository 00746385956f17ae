package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/talia-baeva/slotline/internal/cli/formatter"
	"github.com/talia-baeva/slotline/internal/domain"
)

func newSignupCmd(app *App) *cobra.Command {
	var planID, name, email, phone string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Select a plan and start a registration session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			session, err := app.Sessions.StartSignup(ctx, planID, domain.Identity{
				Name:  name,
				Email: email,
				Phone: phone,
			})
			if err != nil {
				return err
			}

			fmt.Println(formatter.Success(fmt.Sprintf("Signed up for the %s plan.", session.Plan.Name)))
			fmt.Printf("Registration valid until %s. Run %s to continue.\n",
				session.ExpiresAt.Local().Format(time.RFC822),
				formatter.Bold("slotline onboard"))
			return nil
		},
	}

	cmd.Flags().StringVar(&planID, "plan", "", "Plan ID (see slotline plans)")
	cmd.Flags().StringVar(&name, "name", "", "Your full name")
	cmd.Flags().StringVar(&email, "email", "", "Your email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
