// Package families exposes family CRUD.
package families

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

const resource = "families"

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

type familyRequest struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// GET /api/v1/families
func HandleList(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	families, err := queries.ListFamilies(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list families")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list families")
		return
	}

	out := make([]map[string]any, 0, len(families))
	for _, f := range families {
		out = append(out, map[string]any{
			"id":      f.ID,
			"user_id": f.UserID,
			"name":    f.Name,
			"email":   f.Email,
		})
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"families": out})
}

// GET /api/v1/families/{id}
//
// Includes the family's players.
func HandleGet(w http.ResponseWriter, r *http.Request) {
	user := apiutil.RequirePermission(w, r, queries, resource, authz.ActionView)
	if user == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	family, err := queries.GetFamilyByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Family not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("family_id", id).Msg("Failed to load family")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load family")
		return
	}

	// Family accounts only get their own record.
	if user.Role == authz.RoleFamily && family.UserID != user.ID {
		apiutil.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	players, err := queries.ListPlayersByFamily(r.Context(), id)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("family_id", id).Msg("Failed to load family players")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load family")
		return
	}
	playerList := make([]map[string]any, 0, len(players))
	for _, p := range players {
		playerList = append(playerList, map[string]any{
			"id":         p.ID,
			"name":       p.Name,
			"birth_date": apiutil.StringValue(p.BirthDate),
		})
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"family": map[string]any{
		"id":      family.ID,
		"user_id": family.UserID,
		"name":    family.Name,
		"players": playerList,
	}})
}

// GET /api/v1/families/my
//
// The caller's own family with players and their team assignments. Needs a
// session but no grid permission, so family accounts always reach their own
// record.
func HandleMine(w http.ResponseWriter, r *http.Request) {
	user := authz.UserFromContext(r.Context())
	if user == nil {
		apiutil.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	family, err := queries.GetFamilyByUserID(r.Context(), user.ID)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "No family record for this account")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to load family")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load family")
		return
	}

	players, err := queries.ListPlayersByFamily(r.Context(), family.ID)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("family_id", family.ID).Msg("Failed to load family players")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load family")
		return
	}
	playerList := make([]map[string]any, 0, len(players))
	for _, p := range players {
		teams, err := queries.ListTeamsForPlayer(r.Context(), p.ID)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Int64("player_id", p.ID).Msg("Failed to load player teams")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load family")
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
		playerList = append(playerList, map[string]any{
			"id":         p.ID,
			"name":       p.Name,
			"birth_date": apiutil.StringValue(p.BirthDate),
			"teams":      teamList,
		})
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"family": map[string]any{
		"id":      family.ID,
		"user_id": family.UserID,
		"name":    family.Name,
		"players": playerList,
	}})
}

// POST /api/v1/families
//
// Links a family record to an existing user account.
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionCreate) == nil {
		return
	}

	var req familyRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.UserID == 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "user_id and name are required")
		return
	}

	if _, err := queries.GetUserByID(r.Context(), req.UserID); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if _, err := queries.GetFamilyByUserID(r.Context(), req.UserID); err == nil {
		apiutil.WriteError(w, http.StatusConflict, "User already has a family record")
		return
	}

	family, err := queries.CreateFamily(r.Context(), dbgen.CreateFamilyParams{
		UserID: req.UserID,
		Name:   req.Name,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create family")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create family")
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"family": map[string]any{
		"id":      family.ID,
		"user_id": family.UserID,
		"name":    family.Name,
	}})
}

// PUT /api/v1/families/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit)
	if user == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req familyRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Family name is required")
		return
	}

	family, err := queries.GetFamilyByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Family not found")
		return
	}
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update family")
		return
	}
	if user.Role == authz.RoleFamily && family.UserID != user.ID {
		apiutil.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	err = queries.UpdateFamilyName(r.Context(), dbgen.UpdateFamilyNameParams{Name: req.Name, ID: id})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("family_id", id).Msg("Failed to update family")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update family")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"family": map[string]any{
		"id":      family.ID,
		"user_id": family.UserID,
		"name":    req.Name,
	}})
}
