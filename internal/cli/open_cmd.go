package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/talia-baeva/slotline/internal/cli/formatter"
	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/onboarding"
)

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <route>",
		Short: "Navigate to a wizard route (/plan, /team, ...)",
		Long: `Navigate to a wizard route the way a saved link would. The step guard
applies the same consistency rules as in-wizard navigation: routes ahead of
the current step redirect back, and protected routes without a live
registration session redirect to /plan.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			route := args[0]

			session, err := resumeWizard(ctx, app)
			if err != nil {
				return err
			}
			if session == nil {
				if route != domain.StepPlan.Route() {
					fmt.Println(formatter.Warn("No registration session; redirected to /plan."))
				}
				fmt.Println(formatter.Dim("Run slotline plans, then slotline signup."))
				return nil
			}

			guard := onboarding.NewStepGuard(app.Drafts, true)
			resolved := guard.ResolveRoute(route)
			if resolved != route {
				fmt.Println(formatter.Warn(fmt.Sprintf("Redirected %s → %s", route, resolved)))
			}

			step, _ := domain.StepForRoute(resolved)
			if step < guard.Current() {
				if err := app.Drafts.SetStep(ctx, step); err != nil {
					return err
				}
			}

			if app.IsInteractive != nil && app.IsInteractive() {
				return runWizard(app, session)
			}
			fmt.Printf("Now at %s (%s).\n", formatter.Bold(resolved), step)
			return nil
		},
	}
}
