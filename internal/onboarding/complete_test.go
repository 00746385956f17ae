package onboarding

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talia-baeva/slotline/internal/api"
	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/store"
	"github.com/talia-baeva/slotline/internal/testutil"
)

type completionFixture struct {
	client *fakeClient
	state  *store.SQLiteStateRepo
	drafts *store.DraftStore
	svc    CompletionService
}

// newCompletionFixture prepares a fully submittable draft behind a stored
// token.
func newCompletionFixture(t *testing.T) *completionFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	state := store.NewSQLiteStateRepo(database)
	drafts := store.NewDraftStore(state)
	uow := testutil.NewTestUoW(database)
	client := &fakeClient{}
	ctx := context.Background()

	require.NoError(t, state.Put(ctx, store.KeyRegistrationToken, "tok-1"))
	require.NoError(t, state.Put(ctx, store.KeySelectedPlan, "{}"))
	require.NoError(t, drafts.Seed(ctx, testutil.NewTestIdentity()))

	idx, err := drafts.AddTeamMember(ctx, domain.RoleProfessional)
	require.NoError(t, err)
	name, email, specialty := "Ana", "ana@example.com", "stylist"
	require.NoError(t, drafts.UpdateTeamMember(ctx, idx, domain.TeamMemberPatch{
		Name: &name, Email: &email, Specialty: &specialty,
	}))

	idx, err = drafts.AddTeamMember(ctx, domain.RoleReception)
	require.NoError(t, err)
	rName, rEmail := "Bea", "bea@example.com"
	require.NoError(t, drafts.UpdateTeamMember(ctx, idx, domain.TeamMemberPatch{Name: &rName, Email: &rEmail}))

	svc := testutil.NewTestService("Haircut")
	_, err = drafts.AddService(ctx, &svc)
	require.NoError(t, err)

	oName, oEmail, oPhone := "Studio", "hi@studio.example", "+34600"
	require.NoError(t, drafts.UpdateOrganization(ctx, domain.OrganizationPatch{
		Name: &oName, Email: &oEmail, Phone: &oPhone,
	}))

	return &completionFixture{
		client: client,
		state:  state,
		drafts: drafts,
		svc:    NewCompletionService(client, state, drafts, uow),
	}
}

func TestComplete_SuccessClearsAllLocalState(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.client.completeResult = &api.CompletionResult{
		OrganizationID: "org-1",
		UserID:         "user-1",
		SubscriptionID: "sub-1",
	}

	result, err := f.svc.Complete(ctx)
	require.NoError(t, err)
	assert.Equal(t, "org-1", result.OrganizationID)

	for _, key := range []string{store.KeyRegistrationToken, store.KeySelectedPlan, store.KeyOnboardingDraft} {
		_, err := f.state.Get(ctx, key)
		assert.ErrorIs(t, err, store.ErrNotFound, key)
	}
	assert.False(t, f.drafts.Loaded())
}

func TestComplete_SendsOnlyProfessionals(t *testing.T) {
	f := newCompletionFixture(t)
	f.client.completeResult = &api.CompletionResult{OrganizationID: "org-1"}

	_, err := f.svc.Complete(context.Background())
	require.NoError(t, err)

	req := f.client.completeReq
	assert.Equal(t, "tok-1", req.RegistrationToken)
	// The owner and reception rows stay local.
	require.Len(t, req.Professionals, 1)
	assert.Equal(t, "Ana", req.Professionals[0].Name)
	assert.Equal(t, "stylist", req.Professionals[0].Specialty)
	require.Len(t, req.Services, 1)
	assert.Equal(t, "Haircut", req.Services[0].Name)
	assert.Equal(t, "Studio", req.Organization.Name)
}

func TestComplete_RejectionLeavesStateUntouched(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.client.completeErr = fmt.Errorf("status 422: %w", api.ErrValidationRejected)

	_, err := f.svc.Complete(ctx)
	require.ErrorIs(t, err, api.ErrValidationRejected)

	tok, err := f.state.Get(ctx, store.KeyRegistrationToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.True(t, f.drafts.Loaded())

	// A corrected draft can be resubmitted with the same token.
	f.client.completeErr = nil
	f.client.completeResult = &api.CompletionResult{OrganizationID: "org-1"}
	_, err = f.svc.Complete(ctx)
	assert.NoError(t, err)
}

func TestComplete_ConsumedToken(t *testing.T) {
	f := newCompletionFixture(t)
	f.client.completeErr = api.ErrTokenConsumed

	_, err := f.svc.Complete(context.Background())
	assert.ErrorIs(t, err, api.ErrTokenConsumed)
	assert.True(t, f.drafts.Loaded())
}

func TestComplete_IncompleteDraftNeverSubmits(t *testing.T) {
	tests := []struct {
		name  string
		mangle func(t *testing.T, f *completionFixture)
	}{
		{
			name: "no services",
			mangle: func(t *testing.T, f *completionFixture) {
				require.NoError(t, f.drafts.RemoveService(context.Background(), 0))
			},
		},
		{
			name: "invalid service price",
			mangle: func(t *testing.T, f *completionFixture) {
				price := 0
				require.NoError(t, f.drafts.UpdateService(context.Background(), 0, domain.ServicePatch{PriceCents: &price}))
			},
		},
		{
			name: "no professional",
			mangle: func(t *testing.T, f *completionFixture) {
				require.NoError(t, f.drafts.RemoveTeamMember(context.Background(), 1))
			},
		},
		{
			name: "organization missing phone",
			mangle: func(t *testing.T, f *completionFixture) {
				phone := ""
				require.NoError(t, f.drafts.UpdateOrganization(context.Background(), domain.OrganizationPatch{Phone: &phone}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCompletionFixture(t)
			tt.mangle(t, f)

			_, err := f.svc.Complete(context.Background())
			assert.ErrorIs(t, err, ErrDraftIncomplete)
			assert.Zero(t, f.client.completeCalls, "an invalid draft must never reach the backend")
		})
	}
}

func TestComplete_NoSession(t *testing.T) {
	database := testutil.NewTestDB(t)
	state := store.NewSQLiteStateRepo(database)
	drafts := store.NewDraftStore(state)
	svc := NewCompletionService(&fakeClient{}, state, drafts, testutil.NewTestUoW(database))

	_, err := svc.Complete(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestComplete_DraftWithoutToken(t *testing.T) {
	database := testutil.NewTestDB(t)
	state := store.NewSQLiteStateRepo(database)
	drafts := store.NewDraftStore(state)
	require.NoError(t, drafts.Seed(context.Background(), testutil.NewTestIdentity()))
	svc := NewCompletionService(&fakeClient{}, state, drafts, testutil.NewTestUoW(database))

	_, err := svc.Complete(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}
