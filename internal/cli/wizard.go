package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/talia-baeva/slotline/internal/cli/formatter"
	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/onboarding"
)

// slotlineHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func slotlineHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(slotlineHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(s string) error {
	if !strings.Contains(s, "@") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validatePositiveInt(field string) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v <= 0 {
			return fmt.Errorf("%s must be a positive number", field)
		}
		return nil
	}
}

func validateOptionalInt(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v < 0 {
			return fmt.Errorf("%s must be a non-negative number", field)
		}
		return nil
	}
}

// parseIntOr parses s as an integer, returning fallback when s is empty or
// invalid. Used after huh validation has already accepted the string.
func parseIntOr(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}

// wizardSignupForm collects the plan choice and the signup identity in one
// screen. Coming-soon plans are listed but cannot be chosen.
func wizardSignupForm(plans []domain.Plan, planID *string, identity *domain.Identity) *huh.Form {
	options := make([]huh.Option[string], 0, len(plans))
	for _, p := range plans {
		if !p.Selectable() {
			continue
		}
		label := fmt.Sprintf("%s · %s/mo, up to %d team members",
			p.Name, formatter.Price(p.PriceMonthlyCents, p.Currency), p.Limits.MaxUsers)
		options = append(options, huh.NewOption(label, p.ID))
	}

	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which plan?").
				Options(options...).
				Value(planID),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Validate(validateRequired("name")).
				Value(&identity.Name),
			huh.NewInput().
				Title("Your email").
				Validate(validateEmail).
				Value(&identity.Email),
			huh.NewInput().
				Title("Phone (optional)").
				Value(&identity.Phone),
		),
	)
}

// wizardRegisterForm shows the registration summary; the identity was
// captured at signup and the owner entry is read-only.
func wizardRegisterForm(session *domain.RegistrationSession, owner domain.TeamMemberDraft, proceed *bool) *huh.Form {
	summary := fmt.Sprintf("Plan: %s\nOwner: %s <%s>\n\nThe owner account is created from your signup details.",
		session.Plan.Name, owner.Name, owner.Email)

	return newForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Registration").
				Description(summary),
			huh.NewConfirm().
				Title("Continue to team setup?").
				Affirmative("Continue").
				Negative("Leave wizard").
				Value(proceed),
		),
	)
}

// Team step actions. Encoded as "verb" or "verb:index" select values.
const (
	actionContinue = "continue"
	actionBack     = "back"
)

func addAction(role domain.Role) string { return "add:" + string(role) }

func editAction(i int) string { return fmt.Sprintf("edit:%d", i) }

func removeAction(i int) string { return fmt.Sprintf("remove:%d", i) }

func parseIndexAction(a string) (string, int) {
	parts := strings.SplitN(a, ":", 2)
	if len(parts) != 2 {
		return a, -1
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil {
		return parts[0], -1
	}
	return parts[0], i
}

// wizardTeamMenu builds the roster action menu. Roles whose admission is
// denied are left out; the caller surfaces the denial reasons alongside.
func wizardTeamMenu(d *domain.OnboardingDraft, limits domain.PlanLimits, action *string) *huh.Form {
	var options []huh.Option[string]

	for _, role := range []domain.Role{domain.RoleProfessional, domain.RoleReception, domain.RoleStaff} {
		if dec := onboarding.Admit(limits, d.TeamMembers, role); dec.Allowed {
			options = append(options, huh.NewOption("Add "+string(role), addAction(role)))
		}
	}
	for i := 1; i < len(d.TeamMembers); i++ {
		m := d.TeamMembers[i]
		label := m.Name
		if label == "" {
			label = "(unnamed)"
		}
		options = append(options,
			huh.NewOption(fmt.Sprintf("Edit %s (%s)", label, m.Role), editAction(i)),
			huh.NewOption(fmt.Sprintf("Remove %s (%s)", label, m.Role), removeAction(i)),
		)
	}
	options = append(options,
		huh.NewOption("Continue to services", actionContinue),
		huh.NewOption("Back", actionBack),
	)

	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Team").
				Options(options...).
				Value(action),
		),
	)
}

// memberInput holds the string form state for one roster row.
type memberInput struct {
	Name      string
	Email     string
	Specialty string
	Color     string
	WalkIns   bool
}

func memberInputFrom(m domain.TeamMemberDraft) memberInput {
	return memberInput{
		Name:      m.Name,
		Email:     m.Email,
		Specialty: m.Specialty,
		Color:     m.Color,
		WalkIns:   m.AcceptsWalkIns,
	}
}

func (in memberInput) patch() domain.TeamMemberPatch {
	return domain.TeamMemberPatch{
		Name:           &in.Name,
		Email:          &in.Email,
		Specialty:      &in.Specialty,
		Color:          &in.Color,
		AcceptsWalkIns: &in.WalkIns,
	}
}

// wizardMemberForm edits one roster row. Professionals get the scheduling
// attributes the booking system consumes later.
func wizardMemberForm(role domain.Role, in *memberInput) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Validate(validateRequired("name")).
			Value(&in.Name),
		huh.NewInput().
			Title("Email").
			Validate(validateEmail).
			Value(&in.Email),
	}

	if role == domain.RoleProfessional {
		colors := []huh.Option[string]{
			huh.NewOption("Green", "#8ec07c"),
			huh.NewOption("Yellow", "#fabd2f"),
			huh.NewOption("Blue", "#83a598"),
			huh.NewOption("Red", "#fb4934"),
		}
		fields = append(fields,
			huh.NewInput().
				Title("Specialty").
				Value(&in.Specialty),
			huh.NewSelect[string]().
				Title("Calendar color").
				Options(colors...).
				Value(&in.Color),
			huh.NewConfirm().
				Title("Accepts walk-ins?").
				Value(&in.WalkIns),
		)
	}

	return newForm(huh.NewGroup(fields...))
}

// wizardServicesMenu builds the service catalog action menu.
func wizardServicesMenu(d *domain.OnboardingDraft, action *string) *huh.Form {
	var options []huh.Option[string]
	options = append(options, huh.NewOption("Add service", "add:service"))
	for i, s := range d.Services {
		label := s.Name
		if label == "" {
			label = "(unnamed)"
		}
		options = append(options,
			huh.NewOption("Edit "+label, editAction(i)),
			huh.NewOption("Remove "+label, removeAction(i)),
		)
	}
	options = append(options,
		huh.NewOption("Continue to organization", actionContinue),
		huh.NewOption("Back", actionBack),
	)

	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Services").
				Options(options...).
				Value(action),
		),
	)
}

// serviceInput holds the string form state for one service entry.
type serviceInput struct {
	Name         string
	Category     string
	Price        string
	Duration     string
	BufferBefore string
	BufferAfter  string
	Preparation  bool
}

func serviceInputFrom(s domain.ServiceDraft) serviceInput {
	in := serviceInput{
		Name:        s.Name,
		Category:    s.Category,
		Price:       strconv.Itoa(s.PriceCents),
		Duration:    strconv.Itoa(s.DurationMin),
		Preparation: s.RequiresPreparation,
	}
	if s.BufferBeforeMin > 0 {
		in.BufferBefore = strconv.Itoa(s.BufferBeforeMin)
	}
	if s.BufferAfterMin > 0 {
		in.BufferAfter = strconv.Itoa(s.BufferAfterMin)
	}
	return in
}

func (in serviceInput) draft() domain.ServiceDraft {
	return domain.ServiceDraft{
		Name:                strings.TrimSpace(in.Name),
		Category:            strings.TrimSpace(in.Category),
		PriceCents:          parseIntOr(in.Price, 0),
		DurationMin:         parseIntOr(in.Duration, 0),
		BufferBeforeMin:     parseIntOr(in.BufferBefore, 0),
		BufferAfterMin:      parseIntOr(in.BufferAfter, 0),
		Active:              true,
		RequiresPreparation: in.Preparation,
	}
}

func (in serviceInput) patch() domain.ServicePatch {
	d := in.draft()
	return domain.ServicePatch{
		Name:                &d.Name,
		Category:            &d.Category,
		PriceCents:          &d.PriceCents,
		DurationMin:         &d.DurationMin,
		BufferBeforeMin:     &d.BufferBeforeMin,
		BufferAfterMin:      &d.BufferAfterMin,
		RequiresPreparation: &d.RequiresPreparation,
	}
}

// wizardServiceForm edits one service entry.
func wizardServiceForm(in *serviceInput) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Service name").
				Validate(validateRequired("name")).
				Value(&in.Name),
			huh.NewInput().
				Title("Category").
				Value(&in.Category),
			huh.NewInput().
				Title("Price (cents)").
				Validate(validatePositiveInt("price")).
				Value(&in.Price),
			huh.NewInput().
				Title("Duration (minutes)").
				Validate(validatePositiveInt("duration")).
				Value(&in.Duration),
			huh.NewInput().
				Title("Buffer before (minutes, optional)").
				Validate(validateOptionalInt("buffer")).
				Value(&in.BufferBefore),
			huh.NewInput().
				Title("Buffer after (minutes, optional)").
				Validate(validateOptionalInt("buffer")).
				Value(&in.BufferAfter),
			huh.NewConfirm().
				Title("Requires preparation?").
				Value(&in.Preparation),
		),
	)
}

// orgInput holds the string form state for the organization profile.
type orgInput struct {
	Name     string
	Industry string
	Email    string
	Phone    string
	Website  string
	Locale   string
}

func orgInputFrom(o domain.OrganizationDraft) orgInput {
	return orgInput{
		Name:     o.Name,
		Industry: o.Industry,
		Email:    o.Email,
		Phone:    o.Phone,
		Website:  o.Website,
		Locale:   o.Locale,
	}
}

func (in orgInput) patch() domain.OrganizationPatch {
	return domain.OrganizationPatch{
		Name:     &in.Name,
		Industry: &in.Industry,
		Email:    &in.Email,
		Phone:    &in.Phone,
		Website:  &in.Website,
		Locale:   &in.Locale,
	}
}

// wizardOrganizationForm edits the business profile.
func wizardOrganizationForm(in *orgInput) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Business name").
				Validate(validateRequired("name")).
				Value(&in.Name),
			huh.NewInput().
				Title("Industry").
				Value(&in.Industry),
			huh.NewInput().
				Title("Contact email").
				Validate(validateEmail).
				Value(&in.Email),
			huh.NewInput().
				Title("Contact phone").
				Validate(validateRequired("phone")).
				Value(&in.Phone),
			huh.NewInput().
				Title("Website (optional)").
				Value(&in.Website),
			huh.NewInput().
				Title("Locale (e.g. en-US)").
				Value(&in.Locale),
		),
	)
}

// wizardWelcomeForm shows the final summary and asks for the one atomic
// submission.
func wizardWelcomeForm(d *domain.OnboardingDraft, submit *bool) *huh.Form {
	summary := fmt.Sprintf("%s\n%d team members, %d services.\n\nSubmitting creates your organization, team and service catalog in one step.",
		d.Organization.Name, len(d.TeamMembers), len(d.Services))

	return newForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Ready to go").
				Description(summary),
			huh.NewConfirm().
				Title("Create my organization?").
				Affirmative("Submit").
				Negative("Back").
				Value(submit),
		),
	)
}
