package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talia-baeva/slotline/internal/api"
	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/store"
	"github.com/talia-baeva/slotline/internal/testutil"
)

type stubSessions struct {
	session    *domain.RegistrationSession
	resumeErr  error
	signupErr  error
	discarded  bool
	lastPlanID string
	drafts     *store.DraftStore
}

func (s *stubSessions) StartSignup(ctx context.Context, planID string, identity domain.Identity) (*domain.RegistrationSession, error) {
	s.lastPlanID = planID
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	if s.drafts != nil {
		if err := s.drafts.Seed(ctx, identity); err != nil {
			return nil, err
		}
	}
	return s.session, nil
}

func (s *stubSessions) Validate(ctx context.Context, token string) (*api.ValidationResult, error) {
	return &api.ValidationResult{Valid: s.session != nil}, nil
}

func (s *stubSessions) ResumeFromStorage(ctx context.Context) (*domain.RegistrationSession, error) {
	return s.session, s.resumeErr
}

func (s *stubSessions) Discard(ctx context.Context) error {
	s.discarded = true
	s.session = nil
	return nil
}

type stubCatalog struct {
	plans []domain.Plan
	err   error
}

func (c *stubCatalog) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return c.plans, c.err
}

type stubCompletion struct {
	result *api.CompletionResult
	err    error
	calls  int
}

func (c *stubCompletion) Complete(ctx context.Context) (*api.CompletionResult, error) {
	c.calls++
	return c.result, c.err
}

type testApp struct {
	app      *App
	sessions *stubSessions
	catalog  *stubCatalog
	drafts   *store.DraftStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	drafts := store.NewDraftStore(store.NewSQLiteStateRepo(testutil.NewTestDB(t)))
	sessions := &stubSessions{drafts: drafts}
	catalog := &stubCatalog{plans: []domain.Plan{testutil.NewTestPlan("pro", "Pro")}}
	app := &App{
		Catalog:       catalog,
		Sessions:      sessions,
		Completion:    &stubCompletion{},
		Drafts:        drafts,
		IsInteractive: func() bool { return false },
	}
	return &testApp{app: app, sessions: sessions, catalog: catalog, drafts: drafts}
}

func execute(t *testing.T, f *testApp, args ...string) error {
	t.Helper()
	root := NewRootCmd(f.app)
	root.SetArgs(args)
	return root.Execute()
}

func seedSession(t *testing.T, f *testApp) {
	t.Helper()
	session := testutil.NewTestSession("tok-1", testutil.NewTestPlan("pro", "Pro"))
	f.sessions.session = &session
	require.NoError(t, f.drafts.Seed(context.Background(), testutil.NewTestIdentity()))
}

func TestPlansCmd_UnknownPlan(t *testing.T) {
	f := newTestApp(t)

	err := execute(t, f, "plans", "nope")
	assert.ErrorContains(t, err, "not found")
}

func TestPlansCmd_List(t *testing.T) {
	f := newTestApp(t)

	assert.NoError(t, execute(t, f, "plans"))
	assert.NoError(t, execute(t, f, "plans", "pro"))
}

func TestSignupCmd_RequiresFlags(t *testing.T) {
	f := newTestApp(t)

	err := execute(t, f, "signup", "--plan", "pro")
	assert.Error(t, err, "name and email are required")
}

func TestSignupCmd_StartsSession(t *testing.T) {
	f := newTestApp(t)
	session := testutil.NewTestSession("tok-1", testutil.NewTestPlan("pro", "Pro"))
	f.sessions.session = &session

	err := execute(t, f, "signup",
		"--plan", "pro", "--name", "Sam Owner", "--email", "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, "pro", f.sessions.lastPlanID)
	assert.True(t, f.drafts.Loaded())
}

func TestStatusCmd_NoSession(t *testing.T) {
	f := newTestApp(t)

	assert.NoError(t, execute(t, f, "status"))
}

func TestStatusCmd_WithDraft(t *testing.T) {
	f := newTestApp(t)
	seedSession(t, f)

	assert.NoError(t, execute(t, f, "status"))
}

func TestOpenCmd_NoSessionIsAdvisory(t *testing.T) {
	f := newTestApp(t)

	assert.NoError(t, execute(t, f, "open", "/team"))
}

func TestOpenCmd_GoingBackMovesTheStep(t *testing.T) {
	f := newTestApp(t)
	seedSession(t, f)
	require.NoError(t, f.drafts.SetStep(context.Background(), domain.StepTeam))

	require.NoError(t, execute(t, f, "open", "/register"))
	assert.Equal(t, domain.StepRegister, f.drafts.Get().CurrentStep)
}

func TestOpenCmd_SkippingAheadDoesNotMoveTheStep(t *testing.T) {
	f := newTestApp(t)
	seedSession(t, f)

	require.NoError(t, execute(t, f, "open", "/welcome"))
	assert.Equal(t, domain.StepRegister, f.drafts.Get().CurrentStep)
}

func TestResetCmd_DraftOnly(t *testing.T) {
	f := newTestApp(t)
	seedSession(t, f)

	require.NoError(t, execute(t, f, "reset"))
	assert.False(t, f.drafts.Loaded())
	assert.False(t, f.sessions.discarded)
}

func TestResetCmd_WithSession(t *testing.T) {
	f := newTestApp(t)
	seedSession(t, f)

	require.NoError(t, execute(t, f, "reset", "--session"))
	assert.False(t, f.drafts.Loaded())
	assert.True(t, f.sessions.discarded)
}

func TestOnboardCmd_RefusesNonInteractive(t *testing.T) {
	f := newTestApp(t)

	err := execute(t, f, "onboard")
	assert.ErrorIs(t, err, errNotATerminal)
}
