// Package teams exposes team CRUD and roster management.
package teams

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/gmonroe/teambook/internal/api/apiutil"
	"github.com/gmonroe/teambook/internal/api/authz"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
)

const resource = "teams"

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

type teamRequest struct {
	Name     string `json:"name"`
	AgeGroup string `json:"age_group"`
}

func teamJSON(t dbgen.Team) map[string]any {
	return map[string]any{
		"id":        t.ID,
		"name":      t.Name,
		"age_group": apiutil.StringValue(t.AgeGroup),
	}
}

// GET /api/v1/teams
func HandleList(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	teams, err := queries.ListTeams(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list teams")
		return
	}

	out := make([]map[string]any, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamJSON(t))
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": out})
}

// GET /api/v1/teams/my
//
// Teams the caller coaches. Admins get every team.
func HandleMine(w http.ResponseWriter, r *http.Request) {
	user := authz.UserFromContext(r.Context())
	if user == nil {
		apiutil.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	out := make([]map[string]any, 0)
	if user.Role == authz.RoleAdmin {
		teams, err := queries.ListTeams(r.Context())
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list teams")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list teams")
			return
		}
		for _, t := range teams {
			out = append(out, teamJSON(t))
		}
	} else {
		ids, err := queries.ListCoachTeamIDs(r.Context(), user.ID)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list coached teams")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list teams")
			return
		}
		for _, id := range ids {
			team, err := queries.GetTeamByID(r.Context(), id)
			if err != nil {
				continue
			}
			out = append(out, teamJSON(team))
		}
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"teams": out})
}

// GET /api/v1/teams/{id}
//
// Returns the team along with its full roster: players and coaches.
func HandleGet(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	team, err := queries.GetTeamByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", id).Msg("Failed to load team")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load team")
		return
	}

	players, err := queries.ListTeamPlayers(r.Context(), id)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", id).Msg("Failed to load team players")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load team")
		return
	}
	coaches, err := queries.ListTeamCoachEmails(r.Context(), id)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", id).Msg("Failed to load team coaches")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load team")
		return
	}

	playerList := make([]map[string]any, 0, len(players))
	for _, p := range players {
		playerList = append(playerList, map[string]any{
			"id":          p.ID,
			"name":        p.Name,
			"family_id":   p.FamilyID,
			"family_name": p.FamilyName,
			"birth_date":  apiutil.StringValue(p.BirthDate),
		})
	}
	coachList := make([]map[string]any, 0, len(coaches))
	for _, c := range coaches {
		coachList = append(coachList, map[string]any{
			"id":    c.ID,
			"name":  c.Name,
			"email": c.Email,
		})
	}

	body := teamJSON(team)
	body["players"] = playerList
	body["coaches"] = coachList
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"team": body})
}

// POST /api/v1/teams
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionCreate) == nil {
		return
	}

	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Team name is required")
		return
	}

	team, err := queries.CreateTeam(r.Context(), dbgen.CreateTeamParams{
		Name:     req.Name,
		AgeGroup: apiutil.NullString(req.AgeGroup),
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create team")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create team")
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"team": teamJSON(team)})
}

// PUT /api/v1/teams/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Team name is required")
		return
	}

	if _, err := queries.GetTeamByID(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Team not found")
		return
	} else if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", id).Msg("Failed to load team")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update team")
		return
	}

	err = queries.UpdateTeam(r.Context(), dbgen.UpdateTeamParams{
		Name:     req.Name,
		AgeGroup: apiutil.NullString(req.AgeGroup),
		ID:       id,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", id).Msg("Failed to update team")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update team")
		return
	}

	team, err := queries.GetTeamByID(r.Context(), id)
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update team")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"team": teamJSON(team)})
}

// DELETE /api/v1/teams/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionDelete) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := queries.DeleteTeam(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", id).Msg("Failed to delete team")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete team")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func rosterMemberIDs(w http.ResponseWriter, r *http.Request, memberParam string) (teamID, memberID int64, ok bool) {
	teamID, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	memberID, err = strconv.ParseInt(strings.TrimSpace(r.PathValue(memberParam)), 10, 64)
	if err != nil || memberID <= 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid "+memberParam)
		return 0, 0, false
	}
	return teamID, memberID, true
}

// POST /api/v1/teams/{id}/players/{playerID}
func HandleAddPlayer(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}
	teamID, playerID, ok := rosterMemberIDs(w, r, "playerID")
	if !ok {
		return
	}

	if _, err := queries.GetPlayerByID(r.Context(), playerID); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Player not found")
		return
	}
	if _, err := queries.GetTeamByID(r.Context(), teamID); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Team not found")
		return
	}

	err := queries.AddPlayerToTeam(r.Context(), dbgen.AddPlayerToTeamParams{PlayerID: playerID, TeamID: teamID})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", teamID).Int64("player_id", playerID).Msg("Failed to add player to team")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update roster")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// DELETE /api/v1/teams/{id}/players/{playerID}
func HandleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}
	teamID, playerID, ok := rosterMemberIDs(w, r, "playerID")
	if !ok {
		return
	}

	err := queries.RemovePlayerFromTeam(r.Context(), dbgen.RemovePlayerFromTeamParams{PlayerID: playerID, TeamID: teamID})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", teamID).Int64("player_id", playerID).Msg("Failed to remove player from team")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update roster")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// POST /api/v1/teams/{id}/coaches/{coachID}
func HandleAssignCoach(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}
	teamID, coachID, ok := rosterMemberIDs(w, r, "coachID")
	if !ok {
		return
	}

	if _, err := queries.GetCoachByID(r.Context(), coachID); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Coach not found")
		return
	}
	if _, err := queries.GetTeamByID(r.Context(), teamID); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Team not found")
		return
	}

	err := queries.AssignCoachToTeam(r.Context(), dbgen.AssignCoachToTeamParams{CoachID: coachID, TeamID: teamID})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", teamID).Int64("coach_id", coachID).Msg("Failed to assign coach")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update roster")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

// DELETE /api/v1/teams/{id}/coaches/{coachID}
func HandleRemoveCoach(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}
	teamID, coachID, ok := rosterMemberIDs(w, r, "coachID")
	if !ok {
		return
	}

	err := queries.RemoveCoachFromTeam(r.Context(), dbgen.RemoveCoachFromTeamParams{CoachID: coachID, TeamID: teamID})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", teamID).Int64("coach_id", coachID).Msg("Failed to remove coach")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update roster")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
