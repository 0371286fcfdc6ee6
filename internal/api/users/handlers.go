// Package users exposes account administration: roles and the permission
// grid.
package users

import (
	"database/sql"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/gmonroe/teambook/internal/api/apiutil"
	"github.com/gmonroe/teambook/internal/api/authz"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
)

const resource = "users"

var (
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

// GET /api/v1/users
func HandleList(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	users, err := queries.ListUsers(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list users")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, map[string]any{
			"id":    u.ID,
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
			"phone": apiutil.StringValue(u.Phone),
		})
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"users": out})
}

type roleRequest struct {
	Role string `json:"role"`
}

// PUT /api/v1/users/{id}/role
//
// Approving a pending account into the family or coach role also creates the
// matching domain record if one does not exist yet, so the account can
// immediately own players or teams.
func HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	actor := apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit)
	if actor == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req roleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	role, err := authz.ParseRole(req.Role)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := queries.GetUserByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("user_id", id).Msg("Failed to load user")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update role")
		return
	}

	// The last admin cannot demote themselves out of the role.
	if actor.ID == id && actor.Role == authz.RoleAdmin && role != authz.RoleAdmin {
		apiutil.WriteError(w, http.StatusBadRequest, "Admins cannot change their own role")
		return
	}

	err = queries.UpdateUserRole(r.Context(), dbgen.UpdateUserRoleParams{Role: string(role), ID: id})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("user_id", id).Msg("Failed to update role")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update role")
		return
	}

	switch role {
	case authz.RoleFamily:
		if _, err := queries.GetFamilyByUserID(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
			_, err := queries.CreateFamily(r.Context(), dbgen.CreateFamilyParams{UserID: id, Name: user.Name})
			if err != nil {
				log.Ctx(r.Context()).Error().Err(err).Int64("user_id", id).Msg("Failed to create family record")
			}
		}
	case authz.RoleCoach:
		hasCoach := false
		existing, err := queries.ListCoaches(r.Context())
		if err == nil {
			for _, c := range existing {
				if c.UserID == id {
					hasCoach = true
					break
				}
			}
		}
		if !hasCoach {
			_, err := queries.CreateCoach(r.Context(), dbgen.CreateCoachParams{
				UserID: id,
				Name:   user.Name,
				Phone:  user.Phone,
			})
			if err != nil {
				log.Ctx(r.Context()).Error().Err(err).Int64("user_id", id).Msg("Failed to create coach record")
			}
		}
	}

	log.Ctx(r.Context()).Info().
		Int64("user_id", id).
		Str("role", string(role)).
		Int64("actor_id", actor.ID).
		Msg("User role updated")
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "role": role})
}

// GET /api/v1/users/{id}/permissions
func HandleGetPermissions(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := queries.GetUserByID(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	perms, err := apiutil.PermissionSetFor(r.Context(), queries, id)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("user_id", id).Msg("Failed to load permissions")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load permissions")
		return
	}

	// Fill in unset resources so the client always gets the full grid.
	grid := make(authz.PermissionSet, len(authz.Resources))
	for _, res := range authz.Resources {
		grid[res] = perms[res]
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"user_id": id, "permissions": grid})
}

// PUT /api/v1/users/{id}/permissions
//
// Accepts a partial grid; only the named resources are replaced.
func HandleSetPermissions(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := queries.GetUserByID(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	var req struct {
		Permissions authz.PermissionSet `json:"permissions"`
	}
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Permissions) == 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "permissions grid is required")
		return
	}
	for res := range req.Permissions {
		if !authz.KnownResource(res) {
			apiutil.WriteError(w, http.StatusBadRequest, "unknown resource "+res)
			return
		}
	}

	for res, grant := range req.Permissions {
		err := queries.UpsertUserPermission(r.Context(), dbgen.UpsertUserPermissionParams{
			UserID:    id,
			Resource:  res,
			CanView:   boolToInt(grant.View),
			CanCreate: boolToInt(grant.Create),
			CanEdit:   boolToInt(grant.Edit),
			CanDelete: boolToInt(grant.Delete),
		})
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Int64("user_id", id).Str("resource", res).Msg("Failed to save permission")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to save permissions")
			return
		}
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"user_id": id, "permissions": req.Permissions})
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
