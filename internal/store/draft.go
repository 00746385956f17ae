package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/talia-baeva/slotline/internal/domain"
)

// DraftStore owns the in-progress onboarding draft. It is the only place the
// draft is mutated or persisted: every public mutator applies its change to a
// clone, writes the clone to durable storage, and only then commits it to
// memory. A failed write therefore leaves the in-memory draft untouched and
// the mutation reports the failure.
//
// The store is single-writer; one wizard session runs per process.
type DraftStore struct {
	repo  StateRepo
	draft *domain.OnboardingDraft
}

// NewDraftStore creates a DraftStore persisting through repo. The store holds
// no draft until Seed or Load is called.
func NewDraftStore(repo StateRepo) *DraftStore {
	return &DraftStore{repo: repo}
}

// Seed initializes a fresh draft with the owner roster row and persists it.
func (s *DraftStore) Seed(ctx context.Context, identity domain.Identity) error {
	draft := domain.NewOnboardingDraft(uuid.New().String(), identity)
	if err := s.persist(ctx, draft); err != nil {
		return err
	}
	s.draft = draft
	return nil
}

// Load rehydrates the draft from durable storage. Returns ErrNotFound when no
// draft has been persisted.
func (s *DraftStore) Load(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, KeyOnboardingDraft)
	if err != nil {
		return err
	}
	var draft domain.OnboardingDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return fmt.Errorf("decoding stored draft: %w", err)
	}
	if draft.CompletedSteps == nil {
		draft.CompletedSteps = make(map[domain.Step]bool)
	}
	s.draft = &draft
	return nil
}

// Loaded reports whether the store currently holds a draft.
func (s *DraftStore) Loaded() bool {
	return s.draft != nil
}

// Get returns a read-only snapshot of the draft. Mutating the snapshot has no
// effect on the store.
func (s *DraftStore) Get() *domain.OnboardingDraft {
	if s.draft == nil {
		return nil
	}
	return s.draft.Clone()
}

// UpdateOrganization applies a partial update to the organization profile.
func (s *DraftStore) UpdateOrganization(ctx context.Context, patch domain.OrganizationPatch) error {
	return s.mutate(ctx, func(d *domain.OnboardingDraft) error {
		patch.Apply(&d.Organization)
		return nil
	})
}

// AddTeamMember appends an empty roster row with the given role and returns
// its index. Admission control is the roster builder's concern, not the
// store's; the store accepts any row it is handed.
func (s *DraftStore) AddTeamMember(ctx context.Context, role domain.Role) (int, error) {
	index := -1
	err := s.mutate(ctx, func(d *domain.OnboardingDraft) error {
		d.TeamMembers = append(d.TeamMembers, domain.TeamMemberDraft{
			ID:   uuid.New().String(),
			Role: role,
		})
		index = len(d.TeamMembers) - 1
		return nil
	})
	if err != nil {
		return -1, err
	}
	return index, nil
}

// UpdateTeamMember applies a partial update to the roster row at index.
// The owner row at index 0 is read-only.
func (s *DraftStore) UpdateTeamMember(ctx context.Context, index int, patch domain.TeamMemberPatch) error {
	return s.mutate(ctx, func(d *domain.OnboardingDraft) error {
		if index <= 0 || index >= len(d.TeamMembers) {
			return s.rosterIndexErr(index, len(d.TeamMembers))
		}
		patch.Apply(&d.TeamMembers[index])
		return nil
	})
}

// RemoveTeamMember deletes the roster row at index, preserving order.
// The owner row at index 0 cannot be removed.
func (s *DraftStore) RemoveTeamMember(ctx context.Context, index int) error {
	return s.mutate(ctx, func(d *domain.OnboardingDraft) error {
		if index <= 0 || index >= len(d.TeamMembers) {
			return s.rosterIndexErr(index, len(d.TeamMembers))
		}
		d.TeamMembers = append(d.TeamMembers[:index], d.TeamMembers[index+1:]...)
		return nil
	})
}

// AddService appends a service entry and returns its index. When seed is nil
// an inactive empty entry is created for the form to fill in.
func (s *DraftStore) AddService(ctx context.Context, seed *domain.ServiceDraft) (int, error) {
	index := -1
	err := s.mutate(ctx, func(d *domain.OnboardingDraft) error {
		svc := domain.ServiceDraft{Active: true}
		if seed != nil {
			svc = *seed
		}
		if svc.ID == "" {
			svc.ID = uuid.New().String()
		}
		d.Services = append(d.Services, svc)
		index = len(d.Services) - 1
		return nil
	})
	if err != nil {
		return -1, err
	}
	return index, nil
}

// UpdateService applies a partial update to the service entry at index.
func (s *DraftStore) UpdateService(ctx context.Context, index int, patch domain.ServicePatch) error {
	return s.mutate(ctx, func(d *domain.OnboardingDraft) error {
		if index < 0 || index >= len(d.Services) {
			return fmt.Errorf("service %d of %d: %w", index, len(d.Services), domain.ErrIndexOutOfRange)
		}
		patch.Apply(&d.Services[index])
		return nil
	})
}

// RemoveService deletes the service entry at index, preserving order.
func (s *DraftStore) RemoveService(ctx context.Context, index int) error {
	return s.mutate(ctx, func(d *domain.OnboardingDraft) error {
		if index < 0 || index >= len(d.Services) {
			return fmt.Errorf("service %d of %d: %w", index, len(d.Services), domain.ErrIndexOutOfRange)
		}
		d.Services = append(d.Services[:index], d.Services[index+1:]...)
		return nil
	})
}

// SetStep moves the wizard to the given step.
func (s *DraftStore) SetStep(ctx context.Context, step domain.Step) error {
	return s.mutate(ctx, func(d *domain.OnboardingDraft) error {
		if !step.Valid() {
			return fmt.Errorf("step %d: %w", step, domain.ErrIndexOutOfRange)
		}
		d.CurrentStep = step
		return nil
	})
}

// MarkStepCompleted records the step in the completed set. Idempotent.
func (s *DraftStore) MarkStepCompleted(ctx context.Context, step domain.Step) error {
	return s.mutate(ctx, func(d *domain.OnboardingDraft) error {
		if !step.Valid() {
			return fmt.Errorf("step %d: %w", step, domain.ErrIndexOutOfRange)
		}
		d.CompletedSteps[step] = true
		return nil
	})
}

// Reset clears the in-memory draft and its durable copy. The registration
// session keys are not touched.
func (s *DraftStore) Reset(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeyOnboardingDraft); err != nil {
		return err
	}
	s.draft = nil
	return nil
}

// Forget drops the in-memory draft without touching storage. Used after a
// completion transaction has already cleared the durable keys.
func (s *DraftStore) Forget() {
	s.draft = nil
}

func (s *DraftStore) rosterIndexErr(index, size int) error {
	if index == 0 && size > 0 {
		return domain.ErrOwnerImmutable
	}
	return fmt.Errorf("team member %d of %d: %w", index, size, domain.ErrIndexOutOfRange)
}

// mutate runs fn against a clone of the draft, persists the clone, and swaps
// it in. Any error leaves the in-memory draft unchanged.
func (s *DraftStore) mutate(ctx context.Context, fn func(d *domain.OnboardingDraft) error) error {
	if s.draft == nil {
		return fmt.Errorf("onboarding draft: %w", ErrNotFound)
	}
	next := s.draft.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.draft = next
	return nil
}

func (s *DraftStore) persist(ctx context.Context, d *domain.OnboardingDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	return s.repo.Put(ctx, KeyOnboardingDraft, string(data))
}
