// Package players exposes player CRUD.
package players

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

const resource = "players"

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

type playerRequest struct {
	FamilyID  int64  `json:"family_id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

func playerJSON(p dbgen.Player) map[string]any {
	return map[string]any{
		"id":         p.ID,
		"family_id":  p.FamilyID,
		"name":       p.Name,
		"birth_date": apiutil.StringValue(p.BirthDate),
	}
}

// GET /api/v1/players
//
// Family accounts only see their own children; everyone else with view
// permission sees the whole club.
func HandleList(w http.ResponseWriter, r *http.Request) {
	user := apiutil.RequirePermission(w, r, queries, resource, authz.ActionView)
	if user == nil {
		return
	}

	if user.Role == authz.RoleFamily {
		family, err := queries.GetFamilyByUserID(r.Context(), user.ID)
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": []any{}})
			return
		}
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to load family")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list players")
			return
		}
		players, err := queries.ListPlayersByFamily(r.Context(), family.ID)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list family players")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list players")
			return
		}
		out := make([]map[string]any, 0, len(players))
		for _, p := range players {
			entry := playerJSON(p)
			entry["family_name"] = family.Name
			out = append(out, entry)
		}
		apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": out})
		return
	}

	players, err := queries.ListPlayers(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list players")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list players")
		return
	}
	out := make([]map[string]any, 0, len(players))
	for _, p := range players {
		out = append(out, map[string]any{
			"id":          p.ID,
			"family_id":   p.FamilyID,
			"name":        p.Name,
			"birth_date":  apiutil.StringValue(p.BirthDate),
			"family_name": p.FamilyName,
		})
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": out})
}

// GET /api/v1/players/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	player, err := queries.GetPlayerByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Player not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("player_id", id).Msg("Failed to load player")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load player")
		return
	}

	teams, err := queries.ListTeamsForPlayer(r.Context(), id)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("player_id", id).Msg("Failed to load player teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load player")
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

	body := playerJSON(player)
	body["teams"] = teamList
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"player": body})
}

// POST /api/v1/players
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := apiutil.RequirePermission(w, r, queries, resource, authz.ActionCreate)
	if user == nil {
		return
	}

	var req playerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Player name is required")
		return
	}
	if req.BirthDate != "" && !apiutil.ValidDate(req.BirthDate) {
		apiutil.WriteError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		return
	}

	// Family accounts may only register players into their own family.
	if user.Role == authz.RoleFamily {
		family, err := queries.GetFamilyByUserID(r.Context(), user.ID)
		if err != nil {
			apiutil.WriteError(w, http.StatusForbidden, "No family record for this account")
			return
		}
		req.FamilyID = family.ID
	}
	if req.FamilyID == 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "family_id is required")
		return
	}
	if _, err := queries.GetFamilyByID(r.Context(), req.FamilyID); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Family not found")
		return
	}

	player, err := queries.CreatePlayer(r.Context(), dbgen.CreatePlayerParams{
		FamilyID:  req.FamilyID,
		Name:      req.Name,
		BirthDate: apiutil.NullString(req.BirthDate),
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create player")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create player")
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"player": playerJSON(player)})
}

// PUT /api/v1/players/{id}
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

	var req playerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Player name is required")
		return
	}
	if req.BirthDate != "" && !apiutil.ValidDate(req.BirthDate) {
		apiutil.WriteError(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		return
	}

	player, err := queries.GetPlayerByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Player not found")
		return
	}
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update player")
		return
	}

	if user.Role == authz.RoleFamily {
		family, err := queries.GetFamilyByUserID(r.Context(), user.ID)
		if err != nil || family.ID != player.FamilyID {
			apiutil.WriteError(w, http.StatusForbidden, "Players can only be edited by their own family")
			return
		}
	}

	err = queries.UpdatePlayer(r.Context(), dbgen.UpdatePlayerParams{
		Name:      req.Name,
		BirthDate: apiutil.NullString(req.BirthDate),
		ID:        id,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("player_id", id).Msg("Failed to update player")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update player")
		return
	}

	player, err = queries.GetPlayerByID(r.Context(), id)
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update player")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"player": playerJSON(player)})
}

// DELETE /api/v1/players/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionDelete) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := queries.DeletePlayer(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("player_id", id).Msg("Failed to delete player")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete player")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
