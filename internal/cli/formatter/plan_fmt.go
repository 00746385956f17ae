package formatter

import (
	"fmt"
	"strings"

	"github.com/talia-baeva/slotline/internal/domain"
)

// Price renders an integer cent amount as "29.00 EUR". The currency suffix
// is omitted when unknown.
func Price(cents int, currency string) string {
	s := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// PlanTable renders the plan catalog as an aligned table. Coming-soon plans
// are dimmed and marked unselectable.
func PlanTable(plans []domain.Plan) string {
	headers := []string{"ID", "Plan", "Monthly", "Team", "Professionals", "Services", ""}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		note := ""
		name := StyleBold.Render(p.Name)
		if p.ComingSoon {
			note = Dim("coming soon")
			name = Dim(p.Name)
		}
		rows = append(rows, []string{
			p.ID,
			name,
			Price(p.PriceMonthlyCents, p.Currency),
			fmt.Sprintf("%d", p.Limits.MaxUsers),
			fmt.Sprintf("%d", p.Limits.MaxProfessionals),
			fmt.Sprintf("%d", p.Limits.MaxServices),
			note,
		})
	}
	return RenderTable(headers, rows)
}

// PlanDetail renders one plan with its feature list.
func PlanDetail(p domain.Plan) string {
	var b strings.Builder
	b.WriteString(Header(p.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s / month, %s / year\n",
		Price(p.PriceMonthlyCents, p.Currency), Price(p.PriceYearlyCents, p.Currency))
	fmt.Fprintf(&b, "Up to %d team members (%d professionals), %d services, %d appointments/month\n",
		p.Limits.MaxUsers, p.Limits.MaxProfessionals, p.Limits.MaxServices, p.Limits.MaxMonthlyAppointments)
	for _, f := range p.Features {
		fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render("•"), f)
	}
	if p.ComingSoon {
		b.WriteString(Warn("This plan is not yet open for signup.") + "\n")
	}
	return b.String()
}
