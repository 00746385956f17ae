package formatter

import (
	"fmt"
	"strings"

	"github.com/talia-baeva/slotline/internal/domain"
)

// StepProgress renders the wizard's progress line, e.g.
// "plan ✓ → register ✓ → team ● → services → organization → welcome".
func StepProgress(d *domain.OnboardingDraft) string {
	parts := make([]string, 0, domain.StepCount)
	for s := domain.StepPlan; s <= domain.StepWelcome; s++ {
		label := s.String()
		switch {
		case s == d.CurrentStep:
			parts = append(parts, StyleHeader.Render(label+" ●"))
		case d.CompletedSteps[s]:
			parts = append(parts, StyleGreen.Render(label+" ✓"))
		default:
			parts = append(parts, Dim(label))
		}
	}
	return strings.Join(parts, Dim(" → "))
}

// RoleLabel renders a role with its display color.
func RoleLabel(r domain.Role) string {
	switch r {
	case domain.RoleOwner:
		return StyleHeader.Render("owner")
	case domain.RoleProfessional:
		return StyleBlue.Render("professional")
	case domain.RoleReception:
		return StyleYellow.Render("reception")
	case domain.RoleStaff:
		return StyleFg.Render("staff")
	default:
		return Dim(string(r))
	}
}

// RosterTable renders the team roster with per-row completeness markers.
func RosterTable(members []domain.TeamMemberDraft) string {
	headers := []string{"#", "Role", "Name", "Email", "Specialty", ""}
	rows := make([][]string, 0, len(members))
	for i, m := range members {
		mark := StyleGreen.Render("✓")
		if !m.Complete() {
			mark = StyleRed.Render("incomplete")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			RoleLabel(m.Role),
			m.Name,
			m.Email,
			m.Specialty,
			mark,
		})
	}
	return RenderTable(headers, rows)
}

// ServiceTable renders the service catalog draft.
func ServiceTable(services []domain.ServiceDraft, currency string) string {
	headers := []string{"#", "Service", "Category", "Price", "Duration", ""}
	rows := make([][]string, 0, len(services))
	for i, s := range services {
		mark := StyleGreen.Render("✓")
		if err := s.Validate(); err != nil {
			mark = StyleRed.Render("invalid")
		}
		duration := fmt.Sprintf("%d min", s.DurationMin)
		if s.BufferBeforeMin > 0 || s.BufferAfterMin > 0 {
			duration = fmt.Sprintf("%d min (+%d/+%d)", s.DurationMin, s.BufferBeforeMin, s.BufferAfterMin)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			StyleBold.Render(s.Name),
			s.Category,
			Price(s.PriceCents, currency),
			duration,
			mark,
		})
	}
	return RenderTable(headers, rows)
}

// DraftSummary renders the full draft state shown by the status command.
func DraftSummary(d *domain.OnboardingDraft, planName string) string {
	var b strings.Builder
	b.WriteString(Header("Onboarding"))
	b.WriteString("\n")
	if planName != "" {
		fmt.Fprintf(&b, "Plan: %s\n", StyleBold.Render(planName))
	}
	fmt.Fprintf(&b, "Step: %s\n\n", StepProgress(d))
	if d.Organization.Name != "" {
		fmt.Fprintf(&b, "Organization: %s (%s, %s)\n\n",
			StyleBold.Render(d.Organization.Name), d.Organization.Email, d.Organization.Phone)
	}
	b.WriteString(RosterTable(d.TeamMembers))
	b.WriteString("\n")
	if len(d.Services) > 0 {
		b.WriteString(ServiceTable(d.Services, ""))
	} else {
		b.WriteString(Dim("No services yet.") + "\n")
	}
	return b.String()
}
