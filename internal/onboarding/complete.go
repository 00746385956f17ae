package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/talia-baeva/slotline/internal/api"
	"github.com/talia-baeva/slotline/internal/db"
	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/store"
)

type completionService struct {
	client api.Client
	state  store.StateRepo
	drafts *store.DraftStore
	uow    db.UnitOfWork
}

// NewCompletionService creates the service that turns the accumulated draft
// into the single all-or-nothing completion call.
func NewCompletionService(client api.Client, state store.StateRepo, drafts *store.DraftStore, uow db.UnitOfWork) CompletionService {
	return &completionService{client: client, state: state, drafts: drafts, uow: uow}
}

// Complete re-validates the draft, submits it, and on success tears down all
// local state. Any non-2xx outcome leaves the draft and session untouched so
// the user can correct input and retry; a consumed token is surfaced as
// api.ErrTokenConsumed, for which the only recovery is a fresh signup.
func (c *completionService) Complete(ctx context.Context) (*api.CompletionResult, error) {
	draft := c.drafts.Get()
	if draft == nil {
		return nil, fmt.Errorf("complete: %w", ErrNoSession)
	}

	token, err := c.state.Get(ctx, store.KeyRegistrationToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("complete: %w", ErrNoSession)
		}
		return nil, err
	}

	// The earlier steps nudge the same checks, but this is the one point
	// that must never submit an invalid payload.
	if err := c.validate(draft); err != nil {
		return nil, err
	}

	result, err := c.client.CompleteOnboarding(ctx, api.NewCompletionRequest(token, draft))
	if err != nil {
		return nil, err
	}

	if err := store.ClearAll(ctx, c.uow); err != nil {
		// The backend applied the transaction; stale local state must not
		// resurrect the wizard, so surface the cleanup failure loudly.
		return result, fmt.Errorf("onboarding completed but clearing local state failed: %w", err)
	}
	c.drafts.Forget()
	return result, nil
}

func (c *completionService) validate(d *domain.OnboardingDraft) error {
	if !d.Organization.Complete() {
		return fmt.Errorf("%w: organization name, email and phone are required", ErrDraftIncomplete)
	}
	if d.ProfessionalCount() < 1 {
		return fmt.Errorf("%w: at least one professional is required", ErrDraftIncomplete)
	}
	for i, m := range d.TeamMembers {
		if !m.Complete() {
			return fmt.Errorf("%w: team member %d is missing name or email", ErrDraftIncomplete, i)
		}
	}
	if len(d.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrDraftIncomplete)
	}
	for _, s := range d.Services {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrDraftIncomplete, err)
		}
	}
	return nil
}
