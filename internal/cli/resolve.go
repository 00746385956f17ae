package cli

import (
	"context"
	"errors"

	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/store"
)

// resumeWizard validates the stored registration session and rehydrates the
// draft. A nil session with a nil error means there is no signup in progress
// (or the stored one was invalid and has been cleared).
func resumeWizard(ctx context.Context, app *App) (*domain.RegistrationSession, error) {
	session, err := app.Sessions.ResumeFromStorage(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if !app.Drafts.Loaded() {
		if err := app.Drafts.Load(ctx); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			// Session without a draft: seed a fresh one from the stored
			// session so the wizard can continue.
			if err := app.Drafts.Seed(ctx, domain.Identity{}); err != nil {
				return nil, err
			}
		}
	}
	return session, nil
}
