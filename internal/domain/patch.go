package domain

// Patches use pointer fields so callers can change a subset of fields without
// clobbering the rest; nil means "leave unchanged".

// OrganizationPatch is a partial update of an OrganizationDraft.
type OrganizationPatch struct {
	Name     *string
	Industry *string
	Email    *string
	Phone    *string
	Website  *string
	Locale   *string
}

// Apply writes the non-nil fields of the patch onto o.
func (p OrganizationPatch) Apply(o *OrganizationDraft) {
	if p.Name != nil {
		o.Name = *p.Name
	}
	if p.Industry != nil {
		o.Industry = *p.Industry
	}
	if p.Email != nil {
		o.Email = *p.Email
	}
	if p.Phone != nil {
		o.Phone = *p.Phone
	}
	if p.Website != nil {
		o.Website = *p.Website
	}
	if p.Locale != nil {
		o.Locale = *p.Locale
	}
}

// TeamMemberPatch is a partial update of a TeamMemberDraft. The role of an
// existing row is fixed at creation and cannot be patched.
type TeamMemberPatch struct {
	Name           *string
	Email          *string
	Specialty      *string
	Color          *string
	AcceptsWalkIns *bool
}

// Apply writes the non-nil fields of the patch onto m.
func (p TeamMemberPatch) Apply(m *TeamMemberDraft) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Specialty != nil {
		m.Specialty = *p.Specialty
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
	if p.AcceptsWalkIns != nil {
		m.AcceptsWalkIns = *p.AcceptsWalkIns
	}
}

// ServicePatch is a partial update of a ServiceDraft.
type ServicePatch struct {
	Name                *string
	Category            *string
	PriceCents          *int
	DurationMin         *int
	BufferBeforeMin     *int
	BufferAfterMin      *int
	Active              *bool
	RequiresPreparation *bool
}

// Apply writes the non-nil fields of the patch onto s.
func (p ServicePatch) Apply(s *ServiceDraft) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.PriceCents != nil {
		s.PriceCents = *p.PriceCents
	}
	if p.DurationMin != nil {
		s.DurationMin = *p.DurationMin
	}
	if p.BufferBeforeMin != nil {
		s.BufferBeforeMin = *p.BufferBeforeMin
	}
	if p.BufferAfterMin != nil {
		s.BufferAfterMin = *p.BufferAfterMin
	}
	if p.Active != nil {
		s.Active = *p.Active
	}
	if p.RequiresPreparation != nil {
		s.RequiresPreparation = *p.RequiresPreparation
	}
}
