package authorization

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID   uint
	TenantID *uint
	Roles    Roles
}

func (a Actor) IsGlobalAdmin() bool { return a.Roles.Has(RoleGlobalAdmin) }
func (a Actor) IsStaff() bool       { return a.Roles.HasAny(StaffRoles...) }
func (a Actor) IsManager() bool     { return a.Roles.HasAny(ManagerRoles...) }
func (a Actor) IsAdmin() bool       { return a.Roles.HasAny(AdminRoles...) }

// IsEndUserOnly is true for callers with no staff role.
func (a Actor) IsEndUserOnly() bool { return !a.IsStaff() }

// CanAccessTenant reports whether rows of tenantID are visible to the actor.
// Rows with no tenant are global and visible to everyone.
func (a Actor) CanAccessTenant(tenantID *uint) bool {
	if a.IsGlobalAdmin() || tenantID == nil {
		return true
	}
	return a.TenantID != nil && *a.TenantID == *tenantID
}

// TenantFilter is the tenant to restrict queries to, nil meaning unrestricted.
func (a Actor) TenantFilter() *uint {
	if a.IsGlobalAdmin() {
		return nil
	}
	if a.TenantID == nil {
		// a non-global user without a tenant sees nothing tenant-scoped
		zero := uint(0)
		return &zero
	}
	id := *a.TenantID
	return &id
}
