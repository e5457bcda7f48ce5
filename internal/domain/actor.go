package domain

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   Role
}

// CanAccess reports whether the actor may read or change data owned by ownerID.
func (a Actor) CanAccess(ownerID string) bool {
	return a.Role.IsPrivileged() || a.UserID == ownerID
}
