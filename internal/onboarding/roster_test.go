package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talia-baeva/slotline/internal/domain"
	"github.com/talia-baeva/slotline/internal/testutil"
)

func members(roles ...domain.Role) []domain.TeamMemberDraft {
	out := make([]domain.TeamMemberDraft, 0, len(roles))
	for _, r := range roles {
		out = append(out, testutil.NewTestMember(r))
	}
	return out
}

func TestAdmit_OwnerNeverAdmitted(t *testing.T) {
	limits := testutil.NewTestPlan("p", "Pro").Limits

	dec := Admit(limits, members(domain.RoleOwner), domain.RoleOwner)
	assert.False(t, dec.Allowed)
	assert.NotEmpty(t, dec.Reason)
}

func TestAdmit_GlobalCeiling(t *testing.T) {
	limits := testutil.NewTestPlan("p", "Pro").Limits // 6 users, 3 professionals

	full := members(
		domain.RoleOwner,
		domain.RoleProfessional, domain.RoleProfessional, domain.RoleProfessional,
		domain.RoleReception, domain.RoleStaff,
	)
	for _, role := range []domain.Role{domain.RoleProfessional, domain.RoleReception, domain.RoleStaff} {
		dec := Admit(limits, full, role)
		assert.False(t, dec.Allowed, "role %s on a full roster", role)
	}
}

func TestAdmit_ProfessionalQuota(t *testing.T) {
	limits := testutil.NewTestPlan("p", "Pro").Limits

	roster := members(
		domain.RoleOwner,
		domain.RoleProfessional, domain.RoleProfessional, domain.RoleProfessional,
	)

	// Professional quota is exhausted but the global pool is not.
	dec := Admit(limits, roster, domain.RoleProfessional)
	assert.False(t, dec.Allowed)

	assert.True(t, Admit(limits, roster, domain.RoleReception).Allowed)
	assert.True(t, Admit(limits, roster, domain.RoleStaff).Allowed)
}

func TestAdmit_ReceptionAndStaffShareThePool(t *testing.T) {
	limits := testutil.NewTestPlan("p", "Pro").Limits

	// One professional, then reception/staff fill the remaining head count in
	// any mix; no per-role reservation holds seats back.
	roster := members(
		domain.RoleOwner,
		domain.RoleProfessional,
		domain.RoleReception, domain.RoleReception,
		domain.RoleStaff,
	)
	assert.True(t, Admit(limits, roster, domain.RoleStaff).Allowed)

	roster = append(roster, testutil.NewTestMember(domain.RoleStaff))
	dec := Admit(limits, roster, domain.RoleStaff)
	assert.False(t, dec.Allowed)
}

func TestAdmit_EmptyRosterBelowLimits(t *testing.T) {
	limits := testutil.NewTestPlan("p", "Pro").Limits

	roster := members(domain.RoleOwner)
	for _, role := range []domain.Role{domain.RoleProfessional, domain.RoleReception, domain.RoleStaff} {
		dec := Admit(limits, roster, role)
		assert.True(t, dec.Allowed, "role %s", role)
		assert.Empty(t, dec.Reason)
	}
}
