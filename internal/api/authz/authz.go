// Package authz holds the role and permission model shared by the API handlers.
package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrPendingApproval = errors.New("account pending approval")
)

// Role is the club-level role assigned to a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCoach   Role = "coach"
	RoleFamily  Role = "family"
	RolePending Role = "pending"
)

// ParseRole validates a role string coming from the database or an API payload.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCoach:
		return RoleCoach, nil
	case RoleFamily:
		return RoleFamily, nil
	case RolePending:
		return RolePending, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Action is one of the four permission columns tracked per resource.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Resources lists every resource the permission grid covers.
var Resources = []string{
	"games",
	"players",
	"families",
	"coaches",
	"teams",
	"opponents",
	"seasons",
	"settings",
	"users",
}

// KnownResource reports whether the grid tracks the given resource name.
func KnownResource(resource string) bool {
	for _, r := range Resources {
		if r == resource {
			return true
		}
	}
	return false
}

// Grant holds the per-resource permission flags for one user.
type Grant struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// PermissionSet maps resource name to the user's grant for it.
type PermissionSet map[string]Grant

// Allows reports whether the set grants the action on the resource.
func (p PermissionSet) Allows(resource string, action Action) bool {
	g, ok := p[resource]
	if !ok {
		return false
	}
	switch action {
	case ActionView:
		return g.View
	case ActionCreate:
		return g.Create
	case ActionEdit:
		return g.Edit
	case ActionDelete:
		return g.Delete
	}
	return false
}

// AuthUser is the authenticated account attached to a request context.
type AuthUser struct {
	ID    int64
	Role  Role
	Name  string
	Email string
}

// IsAdmin reports whether user is a non-nil admin account.
func IsAdmin(user *AuthUser) bool {
	return user != nil && user.Role == RoleAdmin
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}
	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}
	return user
}

// Authorize decides whether user may perform action on resource given the
// user's permission grid. Admins are always allowed and pending accounts are
// always refused; everyone else is checked against the grid.
func Authorize(user *AuthUser, perms PermissionSet, resource string, action Action) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if user.Role == RoleAdmin {
		return nil
	}
	if user.Role == RolePending {
		return ErrPendingApproval
	}
	if !perms.Allows(resource, action) {
		return ErrForbidden
	}
	return nil
}
