// Package coaches exposes coach CRUD.
package coaches

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/gmonroe/teambook/internal/api/apiutil"
	"github.com/gmonroe/teambook/internal/api/authz"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
)

const resource = "coaches"

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

type coachRequest struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
}

// GET /api/v1/coaches
func HandleList(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	coaches, err := queries.ListCoaches(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list coaches")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list coaches")
		return
	}

	out := make([]map[string]any, 0, len(coaches))
	for _, c := range coaches {
		out = append(out, map[string]any{
			"id":      c.ID,
			"user_id": c.UserID,
			"name":    c.Name,
			"phone":   apiutil.StringValue(c.Phone),
			"email":   c.Email,
		})
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"coaches": out})
}

// GET /api/v1/coaches/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	coach, err := queries.GetCoachByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Coach not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("coach_id", id).Msg("Failed to load coach")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load coach")
		return
	}

	teams, err := queries.ListTeamsForCoach(r.Context(), id)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("coach_id", id).Msg("Failed to load coach teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load coach")
		return
	}
	teamList := make([]map[string]any, 0, len(teams))
	for _, t := range teams {
		teamList = append(teamList, map[string]any{
			"id":        t.ID,
			"name":      t.Name,
			"age_group": apiutil.StringValue(t.AgeGroup),
		})
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"coach": map[string]any{
		"id":      coach.ID,
		"user_id": coach.UserID,
		"name":    coach.Name,
		"phone":   apiutil.StringValue(coach.Phone),
		"teams":   teamList,
	}})
}

// POST /api/v1/coaches
//
// Links a coach record to an existing user account.
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionCreate) == nil {
		return
	}

	var req coachRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.UserID == 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "user_id and name are required")
		return
	}

	phone, err := apiutil.NormalizePhone(req.Phone)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := queries.GetUserByID(r.Context(), req.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	coach, err := queries.CreateCoach(r.Context(), dbgen.CreateCoachParams{
		UserID: req.UserID,
		Name:   req.Name,
		Phone:  apiutil.NullString(phone),
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create coach")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create coach")
		return
	}

	// The backing account gains the coach role, unless it is an admin.
	if user.Role != string(authz.RoleAdmin) && user.Role != string(authz.RoleCoach) {
		err := queries.UpdateUserRole(r.Context(), dbgen.UpdateUserRoleParams{
			Role: string(authz.RoleCoach), ID: req.UserID,
		})
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Int64("user_id", req.UserID).Msg("Failed to promote user to coach")
		}
	}
	apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"coach": map[string]any{
		"id":      coach.ID,
		"user_id": coach.UserID,
		"name":    coach.Name,
		"phone":   apiutil.StringValue(coach.Phone),
	}})
}

// PUT /api/v1/coaches/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req coachRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Coach name is required")
		return
	}

	phone, err := apiutil.NormalizePhone(req.Phone)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := queries.GetCoachByID(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Coach not found")
		return
	}

	err = queries.UpdateCoach(r.Context(), dbgen.UpdateCoachParams{
		Name:  req.Name,
		Phone: apiutil.NullString(phone),
		ID:    id,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("coach_id", id).Msg("Failed to update coach")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update coach")
		return
	}

	coach, err := queries.GetCoachByID(r.Context(), id)
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update coach")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"coach": map[string]any{
		"id":      coach.ID,
		"user_id": coach.UserID,
		"name":    coach.Name,
		"phone":   apiutil.StringValue(coach.Phone),
	}})
}

// DELETE /api/v1/coaches/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionDelete) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	coach, err := queries.GetCoachByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Coach not found")
		return
	}

	if err := queries.DeleteCoach(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("coach_id", id).Msg("Failed to delete coach")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete coach")
		return
	}

	// Removing the coach record demotes the account back to family, unless it
	// is an admin.
	if user, err := queries.GetUserByID(r.Context(), coach.UserID); err == nil &&
		user.Role == string(authz.RoleCoach) {
		err := queries.UpdateUserRole(r.Context(), dbgen.UpdateUserRoleParams{
			Role: string(authz.RoleFamily), ID: coach.UserID,
		})
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Int64("user_id", coach.UserID).Msg("Failed to demote user")
		}
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
