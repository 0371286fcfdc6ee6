package apiutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/gmonroe/teambook/internal/api/authz"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
)

// PermissionSetFor loads a user's permission grid from the database.
func PermissionSetFor(ctx context.Context, q *dbgen.Queries, userID int64) (authz.PermissionSet, error) {
	rows, err := q.ListUserPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(authz.PermissionSet, len(rows))
	for _, row := range rows {
		set[row.Resource] = authz.Grant{
			View:   row.CanView != 0,
			Create: row.CanCreate != 0,
			Edit:   row.CanEdit != 0,
			Delete: row.CanDelete != 0,
		}
	}
	return set, nil
}

// RequirePermission authorizes the request's user for an action on a resource
// and writes the failure response itself. It returns the user when the check
// passes, nil when the handler should stop.
func RequirePermission(w http.ResponseWriter, r *http.Request, q *dbgen.Queries, resource string, action authz.Action) *authz.AuthUser {
	if q == nil {
		log.Ctx(r.Context()).Error().Msg("Database queries not initialized")
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return nil
	}

	user := authz.UserFromContext(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return nil
	}

	// Admins skip the grid lookup entirely.
	var perms authz.PermissionSet
	if user.Role != authz.RoleAdmin && user.Role != authz.RolePending {
		var err error
		perms, err = PermissionSetFor(r.Context(), q, user.ID)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Int64("user_id", user.ID).Msg("Failed to load user permissions")
			WriteError(w, http.StatusInternalServerError, "Failed to authorize request")
			return nil
		}
	}

	if err := authz.Authorize(user, perms, resource, action); err != nil {
		switch {
		case errors.Is(err, authz.ErrPendingApproval):
			WriteError(w, http.StatusForbidden, "Account pending approval")
		case errors.Is(err, authz.ErrForbidden):
			WriteError(w, http.StatusForbidden, "Forbidden")
		default:
			WriteError(w, http.StatusUnauthorized, "Authentication required")
		}
		return nil
	}

	return user
}

// CoachOwnsTeam reports whether the user coaches the given team. Admins own
// every team.
func CoachOwnsTeam(ctx context.Context, q *dbgen.Queries, user *authz.AuthUser, teamID int64) (bool, error) {
	if authz.IsAdmin(user) {
		return true, nil
	}
	teamIDs, err := q.ListCoachTeamIDs(ctx, user.ID)
	if err != nil {
		return false, err
	}
	for _, id := range teamIDs {
		if id == teamID {
			return true, nil
		}
	}
	return false, nil
}
