package domain

// PlanLimits holds the capacity ceilings attached to a subscription plan.
// These are the sole inputs to roster admission control.
type PlanLimits struct {
	MaxUsers               int `json:"max_users"`
	MaxProfessionals       int `json:"max_professionals"`
	MaxReceptionists       int `json:"max_receptionists"`
	MaxStaff               int `json:"max_staff"`
	MaxServices            int `json:"max_services"`
	MaxMonthlyAppointments int `json:"max_monthly_appointments"`
	MaxClients             int `json:"max_clients"`
}

// Plan is a subscription plan as returned by the catalog. Immutable once
// fetched.
type Plan struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	PriceMonthlyCents int        `json:"price_monthly_cents"`
	PriceYearlyCents  int        `json:"price_yearly_cents"`
	Currency          string     `json:"currency"`
	Features          []string   `json:"features"`
	ComingSoon        bool       `json:"coming_soon"`
	Limits            PlanLimits `json:"limits"`
}

// Selectable reports whether the plan can be chosen at signup.
// Plans marked coming-soon are displayed but not selectable.
func (p Plan) Selectable() bool {
	return !p.ComingSoon
}

// Summary reduces the plan to the fields the wizard needs after signup.
func (p Plan) Summary() PlanSummary {
	return PlanSummary{ID: p.ID, Name: p.Name, Limits: p.Limits}
}

// PlanSummary is the slice of a plan carried inside a registration session:
// identity plus the limits that drive admission control.
type PlanSummary struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Limits PlanLimits `json:"limits"`
}
