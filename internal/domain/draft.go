package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOwnerImmutable is returned by draft mutations that target the
	// pre-seeded owner row at roster index 0.
	ErrOwnerImmutable = errors.New("owner entry is read-only")

	// ErrIndexOutOfRange is returned by draft mutations addressing a roster
	// or service index that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// TeamMemberDraft is one row of the roster being assembled. The owner row is
// pre-populated from the signup identity and sits at index 0 permanently.
// The scheduling attributes (specialty, color, walk-ins) are meaningful for
// professional-role rows; the booking system consumes them after onboarding.
type TeamMemberDraft struct {
	ID             string `json:"id"`
	Role           Role   `json:"role"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialty      string `json:"specialty,omitempty"`
	Color          string `json:"color,omitempty"`
	AcceptsWalkIns bool   `json:"accepts_walk_ins,omitempty"`
}

// Complete reports whether the member has the fields every roster row needs
// before the team step may be left.
func (m TeamMemberDraft) Complete() bool {
	return m.Name != "" && m.Email != ""
}

// ServiceDraft is one entry of the service catalog being assembled.
// Prices are integer currency units; durations and buffers are minutes.
type ServiceDraft struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Category            string `json:"category,omitempty"`
	PriceCents          int    `json:"price_cents"`
	DurationMin         int    `json:"duration_min"`
	BufferBeforeMin     int    `json:"buffer_before_min,omitempty"`
	BufferAfterMin      int    `json:"buffer_after_min,omitempty"`
	Active              bool   `json:"active"`
	RequiresPreparation bool   `json:"requires_preparation,omitempty"`
}

// Validate checks the invariants enforced at submission time.
func (s ServiceDraft) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("service name is required")
	}
	if s.PriceCents <= 0 {
		return fmt.Errorf("service %q: price must be positive", s.Name)
	}
	if s.DurationMin <= 0 {
		return fmt.Errorf("service %q: duration must be positive", s.Name)
	}
	return nil
}

// OrganizationDraft is the free-form business profile collected by the
// organization step.
type OrganizationDraft struct {
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// Complete reports whether the required contact fields are filled in.
func (o OrganizationDraft) Complete() bool {
	return o.Name != "" && o.Email != "" && o.Phone != ""
}

// OnboardingDraft is the aggregate in-progress record the wizard accumulates:
// organization profile, roster, service catalog, and progression state. It is
// owned exclusively by the draft store.
type OnboardingDraft struct {
	Organization   OrganizationDraft `json:"organization"`
	TeamMembers    []TeamMemberDraft `json:"team_members"`
	Services       []ServiceDraft    `json:"services"`
	CurrentStep    Step              `json:"current_step"`
	CompletedSteps map[Step]bool     `json:"completed_steps"`
}

// NewOnboardingDraft creates a draft seeded with the owner roster row built
// from the signup identity.
func NewOnboardingDraft(ownerID string, identity Identity) *OnboardingDraft {
	return &OnboardingDraft{
		TeamMembers: []TeamMemberDraft{{
			ID:    ownerID,
			Role:  RoleOwner,
			Name:  identity.Name,
			Email: identity.Email,
		}},
		Services:       nil,
		CurrentStep:    StepRegister,
		CompletedSteps: map[Step]bool{StepPlan: true},
	}
}

// Professionals returns the professional-role rows in insertion order.
func (d *OnboardingDraft) Professionals() []TeamMemberDraft {
	var out []TeamMemberDraft
	for _, m := range d.TeamMembers {
		if m.Role == RoleProfessional {
			out = append(out, m)
		}
	}
	return out
}

// ProfessionalCount counts professional-role roster rows.
func (d *OnboardingDraft) ProfessionalCount() int {
	n := 0
	for _, m := range d.TeamMembers {
		if m.Role == RoleProfessional {
			n++
		}
	}
	return n
}

// Clone returns a deep copy. Mutators operate on clones so a failed persist
// never leaves partially-applied state behind.
func (d *OnboardingDraft) Clone() *OnboardingDraft {
	c := &OnboardingDraft{
		Organization: d.Organization,
		CurrentStep:  d.CurrentStep,
	}
	if d.TeamMembers != nil {
		c.TeamMembers = make([]TeamMemberDraft, len(d.TeamMembers))
		copy(c.TeamMembers, d.TeamMembers)
	}
	if d.Services != nil {
		c.Services = make([]ServiceDraft, len(d.Services))
		copy(c.Services, d.Services)
	}
	c.CompletedSteps = make(map[Step]bool, len(d.CompletedSteps))
	for s, v := range d.CompletedSteps {
		c.CompletedSteps[s] = v
	}
	return c
}
