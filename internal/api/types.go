package api

import (
	"time"

	"github.com/talia-baeva/slotline/internal/domain"
)

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Email    string          `json:"email"`
	PlanID   string          `json:"planId"`
	Identity domain.Identity `json:"identity"`
}

// signupResponse is the body returned by a successful POST /signup.
type signupResponse struct {
	RegistrationToken string    `json:"registrationToken"`
	ExpiresAt         time.Time `json:"expiresAt"`
	SelectedPlan      planDTO   `json:"selectedPlan"`
}

// ValidationResult is the outcome of GET /registration/{token}. An invalid,
// expired, or unknown token yields Valid == false with no error.
type ValidationResult struct {
	Valid     bool
	Plan      *domain.PlanSummary
	ExpiresAt time.Time
}

// validationResponse is the wire shape of GET /registration/{token}.
type validationResponse struct {
	IsValid      bool       `json:"isValid"`
	SelectedPlan *planDTO   `json:"selectedPlan,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// planDTO is the wire shape of a plan. Fields the roster builder and display
// layer never read are dropped during mapping.
type planDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	PriceMonthlyCents int      `json:"priceMonthlyCents"`
	PriceYearlyCents  int      `json:"priceYearlyCents"`
	Currency          string   `json:"currency"`
	Features          []string `json:"features"`
	IsComingSoon      bool     `json:"isComingSoon"`
	Limits            struct {
		MaxUsers               int `json:"maxUsers"`
		MaxProfessionals       int `json:"maxProfessionals"`
		MaxReceptionists       int `json:"maxReceptionists"`
		MaxStaff               int `json:"maxStaff"`
		MaxServices            int `json:"maxServices"`
		MaxMonthlyAppointments int `json:"maxMonthlyAppointments"`
		MaxClients             int `json:"maxClients"`
	} `json:"limits"`
}

func (p planDTO) toDomain() domain.Plan {
	return domain.Plan{
		ID:                p.ID,
		Name:              p.Name,
		PriceMonthlyCents: p.PriceMonthlyCents,
		PriceYearlyCents:  p.PriceYearlyCents,
		Currency:          p.Currency,
		Features:          p.Features,
		ComingSoon:        p.IsComingSoon,
		Limits: domain.PlanLimits{
			MaxUsers:               p.Limits.MaxUsers,
			MaxProfessionals:       p.Limits.MaxProfessionals,
			MaxReceptionists:       p.Limits.MaxReceptionists,
			MaxStaff:               p.Limits.MaxStaff,
			MaxServices:            p.Limits.MaxServices,
			MaxMonthlyAppointments: p.Limits.MaxMonthlyAppointments,
			MaxClients:             p.Limits.MaxClients,
		},
	}
}

// planListResponse is one page of GET /plans.
type planListResponse struct {
	Plans    []planDTO `json:"plans"`
	NextPage *int      `json:"nextPage,omitempty"`
}

// professionalPayload is one professional-role roster row in the completion
// request.
type professionalPayload struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialty      string `json:"specialty,omitempty"`
	Color          string `json:"color,omitempty"`
	AcceptsWalkIns bool   `json:"acceptsWalkIns"`
}

// servicePayload is one service entry in the completion request.
type servicePayload struct {
	Name                string `json:"name"`
	Category            string `json:"category,omitempty"`
	PriceCents          int    `json:"priceCents"`
	DurationMin         int    `json:"durationMin"`
	BufferBeforeMin     int    `json:"bufferBeforeMin,omitempty"`
	BufferAfterMin      int    `json:"bufferAfterMin,omitempty"`
	Active              bool   `json:"active"`
	RequiresPreparation bool   `json:"requiresPreparation"`
}

// organizationPayload is the organization profile in the completion request.
type organizationPayload struct {
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// CompletionRequest is the all-or-nothing body of POST /onboarding/complete.
type CompletionRequest struct {
	RegistrationToken string                `json:"registrationToken"`
	Organization      organizationPayload   `json:"organization"`
	Professionals     []professionalPayload `json:"professionals"`
	Services          []servicePayload      `json:"services"`
}

// NewCompletionRequest assembles the submission payload from the draft. Only
// professional-role roster rows are sent; reception and staff rows are local
// working state the platform collects after onboarding.
func NewCompletionRequest(token string, draft *domain.OnboardingDraft) CompletionRequest {
	req := CompletionRequest{
		RegistrationToken: token,
		Organization: organizationPayload{
			Name:     draft.Organization.Name,
			Industry: draft.Organization.Industry,
			Email:    draft.Organization.Email,
			Phone:    draft.Organization.Phone,
			Website:  draft.Organization.Website,
			Locale:   draft.Organization.Locale,
		},
		Professionals: []professionalPayload{},
		Services:      []servicePayload{},
	}
	for _, m := range draft.Professionals() {
		req.Professionals = append(req.Professionals, professionalPayload{
			Name:           m.Name,
			Email:          m.Email,
			Specialty:      m.Specialty,
			Color:          m.Color,
			AcceptsWalkIns: m.AcceptsWalkIns,
		})
	}
	for _, s := range draft.Services {
		req.Services = append(req.Services, servicePayload{
			Name:                s.Name,
			Category:            s.Category,
			PriceCents:          s.PriceCents,
			DurationMin:         s.DurationMin,
			BufferBeforeMin:     s.BufferBeforeMin,
			BufferAfterMin:      s.BufferAfterMin,
			Active:              s.Active,
			RequiresPreparation: s.RequiresPreparation,
		})
	}
	return req
}

// CompletionResult carries the identifiers created by a successful
// completion.
type CompletionResult struct {
	OrganizationID string `json:"organizationId"`
	UserID         string `json:"userId"`
	SubscriptionID string `json:"subscriptionId"`
}
