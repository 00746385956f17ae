package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/talia-baeva/slotline/internal/api"
	"github.com/talia-baeva/slotline/internal/db"
	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/store"
)

type sessionService struct {
	client  api.Client
	catalog CatalogService
	state   store.StateRepo
	drafts  *store.DraftStore
	uow     db.UnitOfWork
}

// NewSessionService creates a SessionService persisting through state and
// seeding new drafts into drafts.
func NewSessionService(client api.Client, catalog CatalogService, state store.StateRepo, drafts *store.DraftStore, uow db.UnitOfWork) SessionService {
	return &sessionService{client: client, catalog: catalog, state: state, drafts: drafts, uow: uow}
}

func (s *sessionService) StartSignup(ctx context.Context, planID string, identity domain.Identity) (*domain.RegistrationSession, error) {
	plans, err := s.catalog.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	var plan *domain.Plan
	for i := range plans {
		if plans[i].ID == planID {
			plan = &plans[i]
			break
		}
	}
	if plan == nil || !plan.Selectable() {
		return nil, fmt.Errorf("plan %s: %w", planID, api.ErrPlanUnavailable)
	}

	session, err := s.client.StartSignup(ctx, api.SignupRequest{
		Email:    identity.Email,
		PlanID:   planID,
		Identity: identity,
	})
	if err != nil {
		return nil, err
	}

	// Token and plan summary land together or not at all.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := store.NewSQLiteStateRepo(tx)
		if err := repo.Put(ctx, store.KeyRegistrationToken, session.Token); err != nil {
			return err
		}
		planJSON, err := json.Marshal(session.Plan)
		if err != nil {
			return fmt.Errorf("encoding plan summary: %w", err)
		}
		return repo.Put(ctx, store.KeySelectedPlan, string(planJSON))
	})
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Seed(ctx, identity); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (*api.ValidationResult, error) {
	return s.client.ValidateRegistration(ctx, token)
}

func (s *sessionService) ResumeFromStorage(ctx context.Context) (*domain.RegistrationSession, error) {
	token, err := s.state.Get(ctx, store.KeyRegistrationToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	res, err := s.client.ValidateRegistration(ctx, token)
	if err != nil {
		// Transport failure is not an invalidity verdict; keep the stored
		// session so the caller can retry.
		return nil, err
	}
	if !res.Valid {
		if err := s.Discard(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	session := &domain.RegistrationSession{Token: token, ExpiresAt: res.ExpiresAt}
	if res.Plan != nil {
		session.Plan = *res.Plan
	} else if err := s.loadStoredPlan(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Discard(ctx context.Context) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := store.NewSQLiteStateRepo(tx)
		if err := repo.Delete(ctx, store.KeyRegistrationToken); err != nil {
			return err
		}
		return repo.Delete(ctx, store.KeySelectedPlan)
	})
}

// loadStoredPlan falls back to the persisted plan summary when the
// validation response omits the plan.
func (s *sessionService) loadStoredPlan(ctx context.Context, session *domain.RegistrationSession) error {
	raw, err := s.state.Get(ctx, store.KeySelectedPlan)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal([]byte(raw), &session.Plan); err != nil {
		return fmt.Errorf("decoding stored plan summary: %w", err)
	}
	return nil
}
