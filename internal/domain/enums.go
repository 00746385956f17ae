package domain

// Role identifies the function of a team member inside the organization.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleProfessional Role = "professional"
	RoleReception    Role = "reception"
	RoleStaff        Role = "staff"
)

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[string]bool{
	"owner": true, "professional": true, "reception": true, "staff": true,
}

// Step is a position in the onboarding wizard. Steps are strictly ordered;
// the zero value is the plan-selection step.
type Step int

const (
	StepPlan Step = iota
	StepRegister
	StepTeam
	StepServices
	StepOrganization
	StepWelcome
)

// StepCount is the total number of wizard steps.
const StepCount = 6

var stepNames = [StepCount]string{
	"plan", "register", "team", "services", "organization", "welcome",
}

var stepRoutes = [StepCount]string{
	"/plan", "/register", "/team", "/services", "/organization", "/welcome",
}

func (s Step) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return stepNames[s]
}

// Valid reports whether s is one of the defined wizard steps.
func (s Step) Valid() bool {
	return s >= StepPlan && s <= StepWelcome
}

// Route returns the navigation route for the step, e.g. "/team" for StepTeam.
func (s Step) Route() string {
	if !s.Valid() {
		return stepRoutes[StepPlan]
	}
	return stepRoutes[s]
}

// StepForRoute maps a route back to its step. The second return is false for
// routes outside the wizard surface (including the bare root "/").
func StepForRoute(route string) (Step, bool) {
	for i, r := range stepRoutes {
		if r == route {
			return Step(i), true
		}
	}
	return StepPlan, false
}
