package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/talia-baeva/slotline/internal/cli/formatter"
)

func newPlansCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plans [plan-id]",
		Short: "List available subscription plans",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			plans, err := app.Catalog.ListPlans(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				for _, p := range plans {
					if p.ID == args[0] {
						fmt.Print(formatter.PlanDetail(p))
						return nil
					}
				}
				return fmt.Errorf("plan %s not found", args[0])
			}

			fmt.Print(formatter.PlanTable(plans))
			return nil
		},
	}
}
