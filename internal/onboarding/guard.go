package onboarding

import (
	"context"
	"fmt"

	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/store"
)

// stepPredicates gates forward motion out of each step. A predicate sees only
// the current draft and the session's validity, so navigation behavior after
// a reload is identical to before it: no history is replayed.
//
// The services step is deliberately a soft gate. Entering and leaving it with
// zero services is allowed; the completion transaction is the hard gate that
// refuses to submit without a valid service.
var stepPredicates = [domain.StepCount]func(d *domain.OnboardingDraft, sessionValid bool) bool{
	domain.StepPlan: func(d *domain.OnboardingDraft, sessionValid bool) bool {
		return sessionValid
	},
	domain.StepRegister: func(d *domain.OnboardingDraft, sessionValid bool) bool {
		// Identity was already captured at signup.
		return sessionValid
	},
	domain.StepTeam: func(d *domain.OnboardingDraft, sessionValid bool) bool {
		if d.ProfessionalCount() < 1 {
			return false
		}
		for _, m := range d.TeamMembers {
			if !m.Complete() {
				return false
			}
		}
		return true
	},
	domain.StepServices: func(d *domain.OnboardingDraft, sessionValid bool) bool {
		return true
	},
	domain.StepOrganization: func(d *domain.OnboardingDraft, sessionValid bool) bool {
		return d.Organization.Complete()
	},
	domain.StepWelcome: func(d *domain.OnboardingDraft, sessionValid bool) bool {
		return true
	},
}

// CanProceedFrom reports whether the draft may leave the given step forward.
// Pure: callers pass the snapshot they are rendering.
func CanProceedFrom(d *domain.OnboardingDraft, sessionValid bool, step domain.Step) bool {
	if !step.Valid() {
		return false
	}
	return stepPredicates[step](d, sessionValid)
}

// StepGuard drives wizard progression over the draft store. All transition
// rules derive from (currentStep, completedSteps, session validity) alone.
type StepGuard struct {
	drafts       *store.DraftStore
	sessionValid bool
}

// NewStepGuard creates a guard over the given store. sessionValid reflects
// the most recent backend verdict on the registration token.
func NewStepGuard(drafts *store.DraftStore, sessionValid bool) *StepGuard {
	return &StepGuard{drafts: drafts, sessionValid: sessionValid}
}

// Current returns the wizard's current step.
func (g *StepGuard) Current() domain.Step {
	d := g.drafts.Get()
	if d == nil {
		return domain.StepPlan
	}
	return d.CurrentStep
}

// CanProceed reports whether the current step's exit predicate holds.
func (g *StepGuard) CanProceed() bool {
	d := g.drafts.Get()
	if d == nil {
		return false
	}
	return CanProceedFrom(d, g.sessionValid, d.CurrentStep)
}

// Advance moves one step forward, marking the departed step completed.
// Returns ErrStepBlocked when the exit predicate fails, and refuses to leave
// the terminal welcome step (its only exit is the completion transaction).
func (g *StepGuard) Advance(ctx context.Context) (domain.Step, error) {
	d := g.drafts.Get()
	if d == nil {
		return domain.StepPlan, fmt.Errorf("advance: %w", ErrNoSession)
	}
	current := d.CurrentStep
	if current >= domain.StepWelcome {
		return current, fmt.Errorf("advance from %s: %w", current, ErrStepBlocked)
	}
	if !CanProceedFrom(d, g.sessionValid, current) {
		return current, fmt.Errorf("advance from %s: %w", current, ErrStepBlocked)
	}
	if err := g.drafts.MarkStepCompleted(ctx, current); err != nil {
		return current, err
	}
	next := current + 1
	if err := g.drafts.SetStep(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

// Retreat moves one step back. Always allowed above the first step and never
// un-marks a completed step. At the first step it is a no-op.
func (g *StepGuard) Retreat(ctx context.Context) (domain.Step, error) {
	d := g.drafts.Get()
	if d == nil {
		return domain.StepPlan, fmt.Errorf("retreat: %w", ErrNoSession)
	}
	if d.CurrentStep <= domain.StepPlan {
		return d.CurrentStep, nil
	}
	prev := d.CurrentStep - 1
	if err := g.drafts.SetStep(ctx, prev); err != nil {
		return d.CurrentStep, err
	}
	return prev, nil
}

// ResolveRoute runs the navigation-consistency check on a requested route and
// returns the route that should actually be shown:
//
//   - the bare root and unknown routes land on the current step;
//   - a route more than one step ahead of the current step is pulled back to
//     the current step (no skipping ahead via a bookmarked address);
//   - any route past the register step requires a valid session, otherwise
//     the plan route is forced.
func (g *StepGuard) ResolveRoute(route string) string {
	current := g.Current()

	target, ok := domain.StepForRoute(route)
	if !ok {
		return current.Route()
	}
	if target > domain.StepRegister && !g.sessionValid {
		return domain.StepPlan.Route()
	}
	if target > current+1 {
		return current.Route()
	}
	return target.Route()
}
