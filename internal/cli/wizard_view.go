package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/talia-baeva/slotline/internal/api"
	"github.com/talia-baeva/slotline/internal/cli/formatter"
	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/onboarding"
)

// formKind identifies which wizard form is on screen, so form completion can
// be dispatched without callback plumbing.
type formKind int

const (
	formSignup formKind = iota
	formRegister
	formTeamMenu
	formMember
	formServicesMenu
	formService
	formOrganization
	formWelcome
)

type wizardPhase int

const (
	phaseForm wizardPhase = iota
	phaseBusy
	phaseDone
)

// Async outcomes delivered back into the model.
type plansLoadedMsg struct {
	plans []domain.Plan
	err   error
}

type signupDoneMsg struct {
	session *domain.RegistrationSession
	err     error
}

type completionDoneMsg struct {
	result *api.CompletionResult
	err    error
}

// wizardModel hosts the step forms. Network calls run as commands with a
// spinner; the model serializes them by switching to the busy phase, so no
// two state-mutating requests are ever in flight at once.
type wizardModel struct {
	app     *App
	session *domain.RegistrationSession

	phase   wizardPhase
	kind    formKind
	form    *huh.Form
	spin    spinner.Model
	busyMsg string
	notice  string
	err     error
	result  *api.CompletionResult

	plans    []domain.Plan
	planID   string
	identity domain.Identity
	action   string

	memberIdx  int
	memberRole domain.Role
	member     memberInput
	svcIdx     int
	svc        serviceInput
	org        orgInput
	proceed    bool
	submit     bool
}

// runWizard starts the interactive wizard. A nil session begins at the plan
// step; otherwise the wizard resumes at the draft's current step.
func runWizard(app *App, session *domain.RegistrationSession) error {
	m := newWizardModel(app, session)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(wizardModel); ok {
		if fm.err != nil {
			return fm.err
		}
		if fm.result != nil {
			fmt.Println(formatter.Success("Organization created. Welcome aboard!"))
			fmt.Printf("Organization %s, subscription %s.\n", fm.result.OrganizationID, fm.result.SubscriptionID)
		}
	}
	return nil
}

func newWizardModel(app *App, session *domain.RegistrationSession) wizardModel {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StyleHeader),
	)
	m := wizardModel{app: app, session: session, spin: sp}

	if session == nil {
		m.phase = phaseBusy
		m.busyMsg = "Loading plans…"
		return m
	}
	return m.showStep(m.guard().Current())
}

func (m wizardModel) Init() tea.Cmd {
	if m.phase == phaseBusy {
		return tea.Batch(m.spin.Tick, m.loadPlansCmd())
	}
	return m.form.Init()
}

func (m wizardModel) sessionValid() bool {
	return m.session != nil
}

func (m wizardModel) guard() *onboarding.StepGuard {
	return onboarding.NewStepGuard(m.app.Drafts, m.sessionValid())
}

// ── commands ────────────────────────────────────────────────────────────────

func (m wizardModel) loadPlansCmd() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		plans, err := app.Catalog.ListPlans(context.Background())
		return plansLoadedMsg{plans: plans, err: err}
	}
}

func (m wizardModel) signupCmd() tea.Cmd {
	app, planID, identity := m.app, m.planID, m.identity
	return func() tea.Msg {
		session, err := app.Sessions.StartSignup(context.Background(), planID, identity)
		return signupDoneMsg{session: session, err: err}
	}
}

func (m wizardModel) completeCmd() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		result, err := app.Completion.Complete(context.Background())
		return completionDoneMsg{result: result, err: err}
	}
}

// ── update ──────────────────────────────────────────────────────────────────

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		// Escape leaves the wizard; the draft is already persisted.
		if key.Matches(msg, key.NewBinding(key.WithKeys("esc"))) && m.phase != phaseBusy {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.phase == phaseBusy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case plansLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.plans = msg.plans
		m.phase = phaseForm
		m.kind = formSignup
		m.form = wizardSignupForm(m.plans, &m.planID, &m.identity)
		return m, m.form.Init()

	case signupDoneMsg:
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			m.phase = phaseForm
			m.kind = formSignup
			m.form = wizardSignupForm(m.plans, &m.planID, &m.identity)
			return m, m.form.Init()
		}
		m.session = msg.session
		next := m.showStep(domain.StepRegister)
		return next, next.form.Init()

	case completionDoneMsg:
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			next := m.showStep(domain.StepWelcome)
			return next, next.form.Init()
		}
		m.result = msg.result
		m.phase = phaseDone
		return m, tea.Quit
	}

	if m.phase != phaseForm || m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m.handleFormComplete()
	}
	return m, cmd
}

// handleFormComplete dispatches on the form that just finished.
func (m wizardModel) handleFormComplete() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	m.notice = ""

	switch m.kind {

	case formSignup:
		m.phase = phaseBusy
		m.busyMsg = "Creating your registration…"
		return m, tea.Batch(m.spin.Tick, m.signupCmd())

	case formRegister:
		if !m.proceed {
			return m, tea.Quit
		}
		return m.advance(ctx)

	case formTeamMenu:
		verb, idx := parseIndexAction(m.action)
		switch verb {
		case "add":
			m.memberIdx = -1
			m.memberRole = domain.Role(m.action[len("add:"):])
			m.member = memberInput{}
			return m.showForm(formMember, wizardMemberForm(m.memberRole, &m.member))
		case "edit":
			d := m.app.Drafts.Get()
			if idx < 1 || idx >= len(d.TeamMembers) {
				return m.redraw()
			}
			m.memberIdx = idx
			m.memberRole = d.TeamMembers[idx].Role
			m.member = memberInputFrom(d.TeamMembers[idx])
			return m.showForm(formMember, wizardMemberForm(m.memberRole, &m.member))
		case "remove":
			if err := m.app.Drafts.RemoveTeamMember(ctx, idx); err != nil {
				m.notice = errorNotice(err)
			}
			return m.redraw()
		case actionBack:
			return m.retreat(ctx)
		default:
			return m.advance(ctx)
		}

	case formMember:
		idx := m.memberIdx
		if idx < 0 {
			newIdx, err := m.app.Drafts.AddTeamMember(ctx, m.memberRole)
			if err != nil {
				m.notice = errorNotice(err)
				return m.redraw()
			}
			idx = newIdx
		}
		if err := m.app.Drafts.UpdateTeamMember(ctx, idx, m.member.patch()); err != nil {
			m.notice = errorNotice(err)
		}
		return m.redraw()

	case formServicesMenu:
		verb, idx := parseIndexAction(m.action)
		switch verb {
		case "add":
			m.svcIdx = -1
			m.svc = serviceInput{}
			return m.showForm(formService, wizardServiceForm(&m.svc))
		case "edit":
			d := m.app.Drafts.Get()
			if idx < 0 || idx >= len(d.Services) {
				return m.redraw()
			}
			m.svcIdx = idx
			m.svc = serviceInputFrom(d.Services[idx])
			return m.showForm(formService, wizardServiceForm(&m.svc))
		case "remove":
			if err := m.app.Drafts.RemoveService(ctx, idx); err != nil {
				m.notice = errorNotice(err)
			}
			return m.redraw()
		case actionBack:
			return m.retreat(ctx)
		default:
			return m.advance(ctx)
		}

	case formService:
		if m.svcIdx < 0 {
			seed := m.svc.draft()
			if _, err := m.app.Drafts.AddService(ctx, &seed); err != nil {
				m.notice = errorNotice(err)
			}
		} else if err := m.app.Drafts.UpdateService(ctx, m.svcIdx, m.svc.patch()); err != nil {
			m.notice = errorNotice(err)
		}
		return m.redraw()

	case formOrganization:
		if err := m.app.Drafts.UpdateOrganization(ctx, m.org.patch()); err != nil {
			m.notice = errorNotice(err)
			return m.redraw()
		}
		return m.advance(ctx)

	case formWelcome:
		if !m.submit {
			return m.retreat(ctx)
		}
		m.phase = phaseBusy
		m.busyMsg = "Creating your organization…"
		return m, tea.Batch(m.spin.Tick, m.completeCmd())
	}

	return m, nil
}

// advance asks the guard to move forward; a refusal becomes an advisory
// notice, never an error.
func (m wizardModel) advance(ctx context.Context) (tea.Model, tea.Cmd) {
	next, err := m.guard().Advance(ctx)
	if err != nil {
		if errors.Is(err, onboarding.ErrStepBlocked) {
			m.notice = blockNotice(m.app.Drafts.Get())
			return m.redraw()
		}
		m.notice = errorNotice(err)
		return m.redraw()
	}
	out := m.showStep(next)
	return out, out.form.Init()
}

func (m wizardModel) retreat(ctx context.Context) (tea.Model, tea.Cmd) {
	step, err := m.guard().Retreat(ctx)
	if err != nil {
		m.notice = errorNotice(err)
		return m.redraw()
	}
	out := m.showStep(step)
	return out, out.form.Init()
}

// redraw rebuilds the current step's form against the latest draft snapshot.
func (m wizardModel) redraw() (tea.Model, tea.Cmd) {
	out := m.showStep(m.guard().Current())
	return out, out.form.Init()
}

func (m wizardModel) showForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	m.kind = kind
	m.form = form
	m.phase = phaseForm
	return m, form.Init()
}

// showStep builds the form for the given step.
func (m wizardModel) showStep(step domain.Step) wizardModel {
	m.phase = phaseForm
	d := m.app.Drafts.Get()

	switch step {
	case domain.StepPlan:
		m.kind = formSignup
		m.form = wizardSignupForm(m.plans, &m.planID, &m.identity)
	case domain.StepRegister:
		m.kind = formRegister
		m.proceed = true
		owner := domain.TeamMemberDraft{}
		if d != nil && len(d.TeamMembers) > 0 {
			owner = d.TeamMembers[0]
		}
		m.form = wizardRegisterForm(m.session, owner, &m.proceed)
	case domain.StepTeam:
		m.kind = formTeamMenu
		m.action = ""
		m.form = wizardTeamMenu(d, m.session.Plan.Limits, &m.action)
	case domain.StepServices:
		m.kind = formServicesMenu
		m.action = ""
		m.form = wizardServicesMenu(d, &m.action)
	case domain.StepOrganization:
		m.kind = formOrganization
		m.org = orgInputFrom(d.Organization)
		m.form = wizardOrganizationForm(&m.org)
	default:
		m.kind = formWelcome
		m.submit = true
		m.form = wizardWelcomeForm(d, &m.submit)
	}
	return m
}

// ── view ────────────────────────────────────────────────────────────────────

func (m wizardModel) View() string {
	if m.phase == phaseDone {
		return ""
	}

	header := formatter.Header("Slotline onboarding")
	if d := m.app.Drafts.Get(); d != nil {
		header += "\n" + formatter.StepProgress(d)
	}

	if m.phase == phaseBusy {
		return fmt.Sprintf("%s\n\n %s %s\n", header, m.spin.View(), formatter.Dim(m.busyMsg))
	}

	out := header + "\n\n" + m.form.View()
	if m.notice != "" {
		out += "\n" + formatter.Warn(m.notice)
	}
	out += "\n" + formatter.Dim("enter select · esc leave (progress is saved)")
	return out
}

// errorNotice renders a failure as a single advisory line, classified per
// the error taxonomy.
func errorNotice(err error) string {
	switch {
	case errors.Is(err, api.ErrTokenConsumed):
		return "This registration was already completed. Run slotline reset --session and sign up again."
	case errors.Is(err, api.ErrPlanUnavailable):
		return "That plan is not open for signup yet. Pick another plan."
	case errors.Is(err, api.ErrValidationRejected):
		return "The server rejected the submission: " + err.Error()
	case errors.Is(err, api.ErrNetwork):
		return "Could not reach the server. Check your connection and try again."
	case errors.Is(err, api.ErrServer):
		return "The server had a problem. Nothing was lost; try again in a moment."
	case errors.Is(err, onboarding.ErrDraftIncomplete):
		return err.Error()
	default:
		return err.Error()
	}
}

// blockNotice explains why the guard refused to move forward from the
// draft's current step.
func blockNotice(d *domain.OnboardingDraft) string {
	if d == nil {
		return "No registration session. Start with plan selection."
	}
	switch d.CurrentStep {
	case domain.StepTeam:
		if d.ProfessionalCount() < 1 {
			return "Add at least one professional before continuing."
		}
		return "Every team member needs a name and an email."
	case domain.StepOrganization:
		return "Business name, email and phone are required."
	default:
		return "This step is not finished yet."
	}
}
