package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/testutil"
)

func newTestDraftStore(t *testing.T) (*DraftStore, *SQLiteStateRepo) {
	t.Helper()
	repo := NewSQLiteStateRepo(testutil.NewTestDB(t))
	store := NewDraftStore(repo)
	require.NoError(t, store.Seed(context.Background(), testutil.NewTestIdentity()))
	return store, repo
}

func TestDraftStore_SeedAndReload(t *testing.T) {
	store, repo := newTestDraftStore(t)
	ctx := context.Background()

	_, err := store.AddTeamMember(ctx, domain.RoleProfessional)
	require.NoError(t, err)
	require.NoError(t, store.SetStep(ctx, domain.StepTeam))

	// A second store over the same repo sees exactly the persisted draft.
	reloaded := NewDraftStore(repo)
	require.NoError(t, reloaded.Load(ctx))

	d := reloaded.Get()
	require.NotNil(t, d)
	assert.Equal(t, domain.StepTeam, d.CurrentStep)
	require.Len(t, d.TeamMembers, 2)
	assert.Equal(t, domain.RoleOwner, d.TeamMembers[0].Role)
	assert.Equal(t, domain.RoleProfessional, d.TeamMembers[1].Role)
	assert.True(t, d.CompletedSteps[domain.StepPlan])
}

func TestDraftStore_Load_NothingStored(t *testing.T) {
	repo := NewSQLiteStateRepo(testutil.NewTestDB(t))
	store := NewDraftStore(repo)

	err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, store.Loaded())
}

func TestDraftStore_Get_SnapshotIsIsolated(t *testing.T) {
	store, _ := newTestDraftStore(t)

	snap := store.Get()
	snap.TeamMembers[0].Name = "hijacked"
	snap.CompletedSteps[domain.StepWelcome] = true

	fresh := store.Get()
	assert.NotEqual(t, "hijacked", fresh.TeamMembers[0].Name)
	assert.False(t, fresh.CompletedSteps[domain.StepWelcome])
}

func TestDraftStore_OwnerRowIsImmutable(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()

	name := "Impostor"
	err := store.UpdateTeamMember(ctx, 0, domain.TeamMemberPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrOwnerImmutable)

	err = store.RemoveTeamMember(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrOwnerImmutable)

	d := store.Get()
	assert.Equal(t, testutil.NewTestIdentity().Name, d.TeamMembers[0].Name)
}

func TestDraftStore_RosterIndexOutOfRange(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()

	name := "Nobody"
	assert.ErrorIs(t, store.UpdateTeamMember(ctx, 5, domain.TeamMemberPatch{Name: &name}), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, store.RemoveTeamMember(ctx, -1), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, store.UpdateService(ctx, 0, domain.ServicePatch{}), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, store.RemoveService(ctx, 0), domain.ErrIndexOutOfRange)
}

func TestDraftStore_TeamMemberLifecycle(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()

	idx, err := store.AddTeamMember(ctx, domain.RoleProfessional)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	name, email := "Ana", "ana@example.com"
	require.NoError(t, store.UpdateTeamMember(ctx, idx, domain.TeamMemberPatch{Name: &name, Email: &email}))

	d := store.Get()
	assert.Equal(t, "Ana", d.TeamMembers[idx].Name)
	assert.Equal(t, "ana@example.com", d.TeamMembers[idx].Email)
	assert.NotEmpty(t, d.TeamMembers[idx].ID)

	require.NoError(t, store.RemoveTeamMember(ctx, idx))
	assert.Len(t, store.Get().TeamMembers, 1)
}

func TestDraftStore_RemovePreservesOrder(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()

	for _, n := range []string{"Ana", "Bea", "Cruz"} {
		idx, err := store.AddTeamMember(ctx, domain.RoleProfessional)
		require.NoError(t, err)
		name := n
		require.NoError(t, store.UpdateTeamMember(ctx, idx, domain.TeamMemberPatch{Name: &name}))
	}

	require.NoError(t, store.RemoveTeamMember(ctx, 2))

	d := store.Get()
	require.Len(t, d.TeamMembers, 3)
	assert.Equal(t, "Ana", d.TeamMembers[1].Name)
	assert.Equal(t, "Cruz", d.TeamMembers[2].Name)
}

func TestDraftStore_ServiceLifecycle(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()

	idx, err := store.AddService(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	d := store.Get()
	assert.True(t, d.Services[0].Active)
	assert.NotEmpty(t, d.Services[0].ID)

	name, price, duration := "Haircut", 2500, 45
	require.NoError(t, store.UpdateService(ctx, idx, domain.ServicePatch{
		Name: &name, PriceCents: &price, DurationMin: &duration,
	}))

	svc := store.Get().Services[0]
	assert.Equal(t, "Haircut", svc.Name)
	assert.Equal(t, 2500, svc.PriceCents)
	assert.Equal(t, 45, svc.DurationMin)

	require.NoError(t, store.RemoveService(ctx, idx))
	assert.Empty(t, store.Get().Services)
}

func TestDraftStore_AddService_WithSeed(t *testing.T) {
	store, _ := newTestDraftStore(t)

	seed := testutil.NewTestService("Massage", testutil.WithPrice(6000), testutil.WithDuration(60))
	idx, err := store.AddService(context.Background(), &seed)
	require.NoError(t, err)

	svc := store.Get().Services[idx]
	assert.Equal(t, "Massage", svc.Name)
	assert.Equal(t, 6000, svc.PriceCents)
	assert.Equal(t, seed.ID, svc.ID)
}

func TestDraftStore_MarkStepCompleted_Idempotent(t *testing.T) {
	store, _ := newTestDraftStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkStepCompleted(ctx, domain.StepRegister))
	require.NoError(t, store.MarkStepCompleted(ctx, domain.StepRegister))

	d := store.Get()
	assert.True(t, d.CompletedSteps[domain.StepRegister])
	assert.True(t, d.CompletedSteps[domain.StepPlan])
}

func TestDraftStore_SetStep_RejectsInvalid(t *testing.T) {
	store, _ := newTestDraftStore(t)

	err := store.SetStep(context.Background(), domain.Step(99))
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.Equal(t, domain.StepRegister, store.Get().CurrentStep)
}

func TestDraftStore_Reset_LeavesSessionKeys(t *testing.T) {
	store, repo := newTestDraftStore(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, KeyRegistrationToken, "tok"))
	require.NoError(t, repo.Put(ctx, KeySelectedPlan, "{}"))

	require.NoError(t, store.Reset(ctx))
	assert.False(t, store.Loaded())

	_, err := repo.Get(ctx, KeyOnboardingDraft)
	assert.ErrorIs(t, err, ErrNotFound)

	tok, err := repo.Get(ctx, KeyRegistrationToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}

// failingRepo wraps a StateRepo and fails every Put after a threshold, to
// exercise the persist-or-rollback contract.
type failingRepo struct {
	StateRepo
	fail bool
}

var errDiskFull = errors.New("disk full")

func (f *failingRepo) Put(ctx context.Context, key, value string) error {
	if f.fail {
		return errDiskFull
	}
	return f.StateRepo.Put(ctx, key, value)
}

func TestDraftStore_FailedPersistLeavesDraftUntouched(t *testing.T) {
	inner := NewSQLiteStateRepo(testutil.NewTestDB(t))
	repo := &failingRepo{StateRepo: inner}
	store := NewDraftStore(repo)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx, testutil.NewTestIdentity()))
	idx, err := store.AddTeamMember(ctx, domain.RoleProfessional)
	require.NoError(t, err)

	repo.fail = true

	name := "Ana"
	err = store.UpdateTeamMember(ctx, idx, domain.TeamMemberPatch{Name: &name})
	require.ErrorIs(t, err, errDiskFull)

	// In-memory state did not pick up the half-applied change.
	assert.Empty(t, store.Get().TeamMembers[idx].Name)

	_, err = store.AddService(ctx, nil)
	require.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, store.Get().Services)

	// The durable copy still matches what the store reports.
	repo.fail = false
	reloaded := NewDraftStore(inner)
	require.NoError(t, reloaded.Load(ctx))
	assert.Empty(t, reloaded.Get().TeamMembers[idx].Name)
	assert.Empty(t, reloaded.Get().Services)
}

func TestDraftStore_MutateWithoutDraft(t *testing.T) {
	store := NewDraftStore(NewSQLiteStateRepo(testutil.NewTestDB(t)))

	err := store.SetStep(context.Background(), domain.StepTeam)
	assert.ErrorIs(t, err, ErrNotFound)
}
