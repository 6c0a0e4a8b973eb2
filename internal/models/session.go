package models

// UserRole identifies who is logged in
type UserRole string

const (
	RoleParent UserRole = "parent"
	RoleChild  UserRole = "child"
)

// Session is the single authenticated session held by the store.
// CurrentUserID is the family ID for a parent and the child ID for a child.
type Session struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	UserRole        *UserRole `json:"userRole"`
	CurrentUserID   *string   `json:"currentUserId"`
}

// NewSession builds an authenticated session for role and id
func NewSession(role UserRole, id string) Session {
	return Session{IsAuthenticated: true, UserRole: &role, CurrentUserID: &id}
}

// Role returns the session role, or "" when logged out
func (s Session) Role() UserRole {
	if s.UserRole == nil {
		return ""
	}
	return *s.UserRole
}

// UserID returns the current user id, or "" when logged out
func (s Session) UserID() string {
	if s.CurrentUserID == nil {
		return ""
	}
	return *s.CurrentUserID
}

// Clone copies the pointer fields so callers cannot alias store state
func (s Session) Clone() Session {
	if !s.IsAuthenticated && s.UserRole == nil && s.CurrentUserID == nil {
		return Session{}
	}
	out := Session{IsAuthenticated: s.IsAuthenticated}
	if s.UserRole != nil {
		role := *s.UserRole
		out.UserRole = &role
	}
	if s.CurrentUserID != nil {
		id := *s.CurrentUserID
		out.CurrentUserID = &id
	}
	return out
}
