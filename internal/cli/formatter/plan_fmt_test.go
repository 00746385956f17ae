package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talia-baeva/slotline/internal/domain"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		cents    int
		currency string
		want     string
	}{
		{"whole amount", 2900, "EUR", "29.00 EUR"},
		{"with remainder", 4550, "EUR", "45.50 EUR"},
		{"single cent", 1, "USD", "0.01 USD"},
		{"no currency", 2900, "", "29.00"},
		{"zero", 0, "EUR", "0.00 EUR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.cents, tt.currency))
		})
	}
}

func TestPlanTable_MarksComingSoon(t *testing.T) {
	plans := []domain.Plan{
		{ID: "basic", Name: "Basic", PriceMonthlyCents: 1900, Currency: "EUR"},
		{ID: "pro", Name: "Pro", PriceMonthlyCents: 4900, Currency: "EUR", ComingSoon: true},
	}

	out := PlanTable(plans)
	assert.Contains(t, out, "basic")
	assert.Contains(t, out, "19.00 EUR")
	assert.Contains(t, out, "coming soon")
}

func TestPlanDetail_ListsFeatures(t *testing.T) {
	p := domain.Plan{
		ID: "pro", Name: "Pro",
		PriceMonthlyCents: 4900, PriceYearlyCents: 49900, Currency: "EUR",
		Features: []string{"online booking", "reminders"},
		Limits:   domain.PlanLimits{MaxUsers: 6, MaxProfessionals: 3, MaxServices: 20, MaxMonthlyAppointments: 500},
	}

	out := PlanDetail(p)
	assert.Contains(t, out, "online booking")
	assert.Contains(t, out, "reminders")
	assert.Contains(t, out, "49.00 EUR / month")
	assert.NotContains(t, out, "not yet open")
}
