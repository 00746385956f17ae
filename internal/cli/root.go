package cli

import (
	"github.com/spf13/cobra"
	"github.com/talia-baeva/slotline/internal/onboarding"
	"github.com/talia-baeva/slotline/internal/store"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Catalog    onboarding.CatalogService
	Sessions   onboarding.SessionService
	Completion onboarding.CompletionService
	Drafts     *store.DraftStore

	// IsInteractive reports whether stdin is an interactive terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "slotline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "slotline",
		Short: "Booking platform signup and onboarding",
	}

	root.AddCommand(
		newPlansCmd(app),
		newSignupCmd(app),
		newStatusCmd(app),
		newOpenCmd(app),
		newOnboardCmd(app),
		newResetCmd(app),
	)

	return root
}
