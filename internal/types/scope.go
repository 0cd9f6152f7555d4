package types

// TenantScope is the resolved identity every tenant-scoped operation runs under.
// It is produced once per request by the tenant directory and passed explicitly
// into services; tenant ids supplied by clients are never authoritative.
type TenantScope struct {
	TenantID string
	UserID   string
	Role     UserRole
}

func (s TenantScope) IsAdmin() bool {
	return s.Role == UserRoleAdmin
}

// Owns reports whether a record with the given tenant id is visible to this scope.
func (s TenantScope) Owns(tenantID string) bool {
	return s.TenantID != "" && s.TenantID == tenantID
}
