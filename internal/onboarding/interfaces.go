package onboarding

import (
	"context"
	"errors"

	"github.com/talia-baeva/slotline/internal/api"
	"github.com/talia-baeva/slotline/internal/domain"
)

var (
	// ErrNoSession indicates an operation that needs a live registration
	// session found none in storage.
	ErrNoSession = errors.New("no registration session")

	// ErrDraftIncomplete indicates the draft fails the submission-time
	// checks and nothing was sent to the backend.
	ErrDraftIncomplete = errors.New("onboarding draft is incomplete")

	// ErrStepBlocked indicates a forward transition was refused by the step
	// guard.
	ErrStepBlocked = errors.New("step requirements not met")
)

// SessionService manages the anonymous registration session anchoring the
// wizard before any account exists.
type SessionService interface {
	// StartSignup creates a session for the given plan. Plans marked
	// coming-soon are rejected locally before any signup call.
	StartSignup(ctx context.Context, planID string, identity domain.Identity) (*domain.RegistrationSession, error)

	// Validate checks a token with the backend. Invalid, expired, and
	// unknown tokens resolve to Valid == false, never to an error.
	Validate(ctx context.Context, token string) (*api.ValidationResult, error)

	// ResumeFromStorage rebuilds the session from the persisted token. An
	// absent or invalid token yields (nil, nil); an invalid token also
	// clears the persisted session so it is never silently resumed.
	ResumeFromStorage(ctx context.Context) (*domain.RegistrationSession, error)

	// Discard drops the persisted session.
	Discard(ctx context.Context) error
}

// CatalogService lists the subscription plans offered by the platform.
type CatalogService interface {
	ListPlans(ctx context.Context) ([]domain.Plan, error)
}

// CompletionService submits the accumulated draft as one atomic transaction.
type CompletionService interface {
	Complete(ctx context.Context) (*api.CompletionResult, error)
}
