// Package games exposes game CRUD with schedule conflict detection. Conflict
// results are advisory: saves go through and the response carries whatever
// collisions were found.
package games

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gmonroe/teambook/internal/api/apiutil"
	"github.com/gmonroe/teambook/internal/api/authz"
	"github.com/gmonroe/teambook/internal/clubsettings"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
	"github.com/gmonroe/teambook/internal/schedule"
)

const resource = "games"

var (
	queries  *dbgen.Queries
	detector *schedule.Detector
	settings *clubsettings.Provider
	initOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries, d *schedule.Detector, s *clubsettings.Provider) {
	if q == nil {
		return
	}
	initOnce.Do(func() {
		queries = q
		detector = d
		settings = s
	})
}

// gameRequest uses pointers so an update can distinguish "not sent" from
// "cleared".
type gameRequest struct {
	TeamID     *int64  `json:"team_id"`
	OpponentID *int64  `json:"opponent_id"`
	Location   *string `json:"location"`
	SeasonID   *int64  `json:"season_id"`
	GameDate   *string `json:"game_date"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	Notes      *string `json:"notes"`
}

func gameJSON(g dbgen.Game) map[string]any {
	return map[string]any{
		"id":          g.ID,
		"team_id":     g.TeamID,
		"opponent_id": g.OpponentID,
		"location":    apiutil.StringValue(g.Location),
		"season_id":   apiutil.Int64Value(g.SeasonID),
		"game_date":   g.GameDate,
		"start_time":  g.StartTime,
		"end_time":    g.EndTime,
		"notes":       apiutil.StringValue(g.Notes),
	}
}

// GET /api/v1/games?season_id=&team_id=
func HandleList(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	seasonID, err := apiutil.QueryInt64(r, "season_id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	teamID, err := apiutil.QueryInt64(r, "team_id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	games, err := queries.ListGames(r.Context(), dbgen.ListGamesParams{SeasonID: seasonID, TeamID: teamID})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list games")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list games")
		return
	}

	out := make([]map[string]any, 0, len(games))
	for _, g := range games {
		out = append(out, map[string]any{
			"id":                g.ID,
			"team_id":           g.TeamID,
			"team_name":         g.TeamName,
			"opponent_id":       g.OpponentID,
			"opponent_name":     g.OpponentName,
			"opponent_location": apiutil.StringValue(g.OpponentLocation),
			"location":          apiutil.StringValue(g.Location),
			"season_id":         apiutil.Int64Value(g.SeasonID),
			"season_name":       apiutil.StringValue(g.SeasonName),
			"game_date":         g.GameDate,
			"start_time":        g.StartTime,
			"end_time":          g.EndTime,
			"notes":             apiutil.StringValue(g.Notes),
		})
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"games": out})
}

// GET /api/v1/games/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := queries.GetGameByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Game not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("game_id", id).Msg("Failed to load game")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load game")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"game": gameJSON(game)})
}

// POST /api/v1/games
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := apiutil.RequirePermission(w, r, queries, resource, authz.ActionCreate)
	if user == nil {
		return
	}

	var req gameRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TeamID == nil || req.OpponentID == nil || req.GameDate == nil || req.StartTime == nil {
		apiutil.WriteError(w, http.StatusBadRequest, "team_id, opponent_id, game_date, and start_time are required")
		return
	}

	fields, ok := resolveGameFields(w, r, req, dbgen.Game{})
	if !ok {
		return
	}

	if !validateReferences(w, r, fields) {
		return
	}
	if !requireTeamOwnership(w, r, user, fields.TeamID) {
		return
	}

	conflicts, err := detector.Check(r.Context(), schedule.Proposal{
		TeamID:    fields.TeamID,
		Date:      fields.GameDate,
		StartTime: fields.StartTime,
		EndTime:   fields.EndTime,
		Location:  fields.Location,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Conflict check failed")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to check conflicts")
		return
	}

	game, err := queries.CreateGame(r.Context(), dbgen.CreateGameParams{
		TeamID:     fields.TeamID,
		OpponentID: fields.OpponentID,
		Location:   apiutil.NullString(fields.Location),
		SeasonID:   apiutil.NullInt64(fields.SeasonID),
		GameDate:   fields.GameDate,
		StartTime:  fields.StartTime,
		EndTime:    fields.EndTime,
		Notes:      apiutil.NullString(fields.Notes),
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create game")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create game")
		return
	}

	apiutil.WriteJSON(w, http.StatusCreated, map[string]any{
		"game":      gameJSON(game),
		"conflicts": conflicts,
	})
}

// PUT /api/v1/games/{id}
//
// Partial updates are allowed; omitted fields keep their stored values. The
// conflict scan runs against the effective result and excludes the game's own
// row.
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

	existing, err := queries.GetGameByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Game not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("game_id", id).Msg("Failed to load game")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update game")
		return
	}

	var req gameRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields, ok := resolveGameFields(w, r, req, existing)
	if !ok {
		return
	}
	if !validateReferences(w, r, fields) {
		return
	}
	// A coach must own the game being moved and the team it moves to.
	if !requireTeamOwnership(w, r, user, existing.TeamID) {
		return
	}
	if fields.TeamID != existing.TeamID && !requireTeamOwnership(w, r, user, fields.TeamID) {
		return
	}

	conflicts, err := detector.Check(r.Context(), schedule.Proposal{
		TeamID:        fields.TeamID,
		Date:          fields.GameDate,
		StartTime:     fields.StartTime,
		EndTime:       fields.EndTime,
		Location:      fields.Location,
		ExcludeGameID: id,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Conflict check failed")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to check conflicts")
		return
	}

	err = queries.UpdateGame(r.Context(), dbgen.UpdateGameParams{
		TeamID:     fields.TeamID,
		OpponentID: fields.OpponentID,
		Location:   apiutil.NullString(fields.Location),
		SeasonID:   apiutil.NullInt64(fields.SeasonID),
		GameDate:   fields.GameDate,
		StartTime:  fields.StartTime,
		EndTime:    fields.EndTime,
		Notes:      apiutil.NullString(fields.Notes),
		ID:         id,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("game_id", id).Msg("Failed to update game")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update game")
		return
	}

	game, err := queries.GetGameByID(r.Context(), id)
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update game")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"game":      gameJSON(game),
		"conflicts": conflicts,
	})
}

// DELETE /api/v1/games/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := apiutil.RequirePermission(w, r, queries, resource, authz.ActionDelete)
	if user == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := queries.GetGameByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Game not found")
		return
	}
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete game")
		return
	}
	if !requireTeamOwnership(w, r, user, game.TeamID) {
		return
	}

	if err := queries.DeleteGame(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("game_id", id).Msg("Failed to delete game")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete game")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /api/v1/games/conflicts?team_id=&game_date=&start_time=&end_time=&location=&exclude_game_id=
//
// Dry-run conflict check for schedule planning; nothing is written.
func HandleConflicts(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	q := r.URL.Query()
	teamID, err := apiutil.QueryInt64(r, "team_id")
	if err != nil || teamID == 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "team_id is required")
		return
	}
	date := strings.TrimSpace(q.Get("game_date"))
	if !apiutil.ValidDate(date) {
		apiutil.WriteError(w, http.StatusBadRequest, "game_date must be YYYY-MM-DD")
		return
	}
	start := strings.TrimSpace(q.Get("start_time"))
	if !apiutil.ValidClockTime(start) {
		apiutil.WriteError(w, http.StatusBadRequest, "start_time must be HH:MM")
		return
	}
	end := strings.TrimSpace(q.Get("end_time"))
	if end == "" {
		end = addMinutes(start, settings.GameDurationMinutes(r.Context()))
	} else if !apiutil.ValidClockTime(end) {
		apiutil.WriteError(w, http.StatusBadRequest, "end_time must be HH:MM")
		return
	}
	excludeID, err := apiutil.QueryInt64(r, "exclude_game_id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	conflicts, err := detector.Check(r.Context(), schedule.Proposal{
		TeamID:        teamID,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		Location:      strings.TrimSpace(q.Get("location")),
		ExcludeGameID: excludeID,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Conflict check failed")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to check conflicts")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"conflicts": conflicts})
}

// gameFields is the effective value of every column after merging a request
// with the stored row.
type gameFields struct {
	TeamID     int64
	OpponentID int64
	Location   string
	SeasonID   int64
	GameDate   string
	StartTime  string
	EndTime    string
	Notes      string
}

func resolveGameFields(w http.ResponseWriter, r *http.Request, req gameRequest, existing dbgen.Game) (gameFields, bool) {
	f := gameFields{
		TeamID:     existing.TeamID,
		OpponentID: existing.OpponentID,
		Location:   apiutil.StringValue(existing.Location),
		SeasonID:   apiutil.Int64Value(existing.SeasonID),
		GameDate:   existing.GameDate,
		StartTime:  existing.StartTime,
		EndTime:    existing.EndTime,
		Notes:      apiutil.StringValue(existing.Notes),
	}

	if req.TeamID != nil {
		f.TeamID = *req.TeamID
	}
	if req.OpponentID != nil {
		f.OpponentID = *req.OpponentID
	}
	if req.Location != nil {
		f.Location = strings.TrimSpace(*req.Location)
	}
	if req.SeasonID != nil {
		f.SeasonID = *req.SeasonID
	}
	if req.GameDate != nil {
		f.GameDate = strings.TrimSpace(*req.GameDate)
	}
	if req.StartTime != nil {
		f.StartTime = strings.TrimSpace(*req.StartTime)
	}
	if req.EndTime != nil {
		f.EndTime = strings.TrimSpace(*req.EndTime)
	}
	if req.Notes != nil {
		f.Notes = strings.TrimSpace(*req.Notes)
	}

	if !apiutil.ValidDate(f.GameDate) {
		apiutil.WriteError(w, http.StatusBadRequest, "game_date must be YYYY-MM-DD")
		return f, false
	}
	if !apiutil.ValidClockTime(f.StartTime) {
		apiutil.WriteError(w, http.StatusBadRequest, "start_time must be HH:MM")
		return f, false
	}
	if f.EndTime == "" {
		f.EndTime = addMinutes(f.StartTime, settings.GameDurationMinutes(r.Context()))
	} else if !apiutil.ValidClockTime(f.EndTime) {
		apiutil.WriteError(w, http.StatusBadRequest, "end_time must be HH:MM")
		return f, false
	}
	return f, true
}

func validateReferences(w http.ResponseWriter, r *http.Request, f gameFields) bool {
	if _, err := queries.GetTeamByID(r.Context(), f.TeamID); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Team not found")
		return false
	}
	if _, err := queries.GetOpponentByID(r.Context(), f.OpponentID); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Opponent not found")
		return false
	}
	if f.SeasonID != 0 {
		if _, err := queries.GetSeasonByID(r.Context(), f.SeasonID); errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Season not found")
			return false
		}
	}
	return true
}

// requireTeamOwnership limits coach accounts to teams they actually coach.
// Other roles pass through; their access is controlled by the permission grid
// alone.
func requireTeamOwnership(w http.ResponseWriter, r *http.Request, user *authz.AuthUser, teamID int64) bool {
	if user.Role != authz.RoleCoach {
		return true
	}
	owns, err := apiutil.CoachOwnsTeam(r.Context(), queries, user, teamID)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", teamID).Msg("Failed to check team ownership")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to authorize request")
		return false
	}
	if !owns {
		apiutil.WriteError(w, http.StatusForbidden, "Coaches can only manage games for their own teams")
		return false
	}
	return true
}

// addMinutes advances an HH:MM clock time, capping at the end of the day so
// a game never spills onto the next date.
func addMinutes(clock string, minutes int) string {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return clock
	}
	t = t.Add(time.Duration(minutes) * time.Minute)
	if t.Day() != 1 {
		return "23:59"
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
