package onboarding

import (
	"fmt"

	"github.com/talia-baeva/slotline/internal/domain"
)

// Decision is the outcome of a roster admission check. Denials are advisory:
// the wizard disables the corresponding control and shows the reason, it
// never treats a denial as a failure.
type Decision struct {
	Allowed bool
	Reason  string
}

// Admit decides whether a new team member with the requested role may join
// the roster under the plan's limits.
//
// The global user ceiling applies to every role. Professionals additionally
// consume a professional sub-quota. Reception and staff share whatever head
// count remains, first come first served; there is no per-role reservation.
// The pre-seeded owner is never admitted here but occupies one unit of the
// total permanently.
func Admit(limits domain.PlanLimits, members []domain.TeamMemberDraft, role domain.Role) Decision {
	if role == domain.RoleOwner {
		return Decision{Reason: "the organization already has an owner"}
	}

	total := len(members)
	if total >= limits.MaxUsers {
		return Decision{Reason: fmt.Sprintf("the plan allows at most %d team members", limits.MaxUsers)}
	}

	if role == domain.RoleProfessional {
		professionals := 0
		for _, m := range members {
			if m.Role == domain.RoleProfessional {
				professionals++
			}
		}
		if professionals >= limits.MaxProfessionals {
			return Decision{Reason: fmt.Sprintf("the plan allows at most %d professionals", limits.MaxProfessionals)}
		}
	}

	return Decision{Allowed: true}
}
