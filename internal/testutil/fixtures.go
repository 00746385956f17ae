package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/talia-baeva/slotline/internal/domain"
)

// Plan options
type PlanOption func(*domain.Plan)

func WithLimits(l domain.PlanLimits) PlanOption {
	return func(p *domain.Plan) {
		p.Limits = l
	}
}

func WithComingSoon() PlanOption {
	return func(p *domain.Plan) {
		p.ComingSoon = true
	}
}

func NewTestPlan(id, name string, opts ...PlanOption) domain.Plan {
	p := domain.Plan{
		ID:                id,
		Name:              name,
		PriceMonthlyCents: 2900,
		PriceYearlyCents:  29900,
		Currency:          "EUR",
		Features:          []string{"online booking", "reminders"},
		Limits: domain.PlanLimits{
			MaxUsers:               6,
			MaxProfessionals:       3,
			MaxReceptionists:       2,
			MaxStaff:               2,
			MaxServices:            20,
			MaxMonthlyAppointments: 500,
			MaxClients:             1000,
		},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// TeamMember options
type MemberOption func(*domain.TeamMemberDraft)

func WithMemberContact(name, email string) MemberOption {
	return func(m *domain.TeamMemberDraft) {
		m.Name = name
		m.Email = email
	}
}

func NewTestMember(role domain.Role, opts ...MemberOption) domain.TeamMemberDraft {
	m := domain.TeamMemberDraft{
		ID:    uuid.New().String(),
		Role:  role,
		Name:  "Alex Doe",
		Email: "alex@example.com",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Service options
type ServiceOption func(*domain.ServiceDraft)

func WithPrice(cents int) ServiceOption {
	return func(s *domain.ServiceDraft) {
		s.PriceCents = cents
	}
}

func WithDuration(min int) ServiceOption {
	return func(s *domain.ServiceDraft) {
		s.DurationMin = min
	}
}

func NewTestService(name string, opts ...ServiceOption) domain.ServiceDraft {
	s := domain.ServiceDraft{
		ID:          uuid.New().String(),
		Name:        name,
		Category:    "general",
		PriceCents:  4500,
		DurationMin: 30,
		Active:      true,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewTestIdentity returns the signup identity used as the draft's owner.
func NewTestIdentity() domain.Identity {
	return domain.Identity{Name: "Sam Owner", Email: "owner@example.com", Phone: "+34600111222"}
}

// NewTestSession returns a registration session valid for one hour.
func NewTestSession(token string, plan domain.Plan) domain.RegistrationSession {
	return domain.RegistrationSession{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		Plan:      plan.Summary(),
	}
}
