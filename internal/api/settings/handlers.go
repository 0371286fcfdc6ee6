// Package settings exposes the tunable club settings plus full-database
// export and import.
package settings

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gmonroe/teambook/internal/api/apiutil"
	"github.com/gmonroe/teambook/internal/api/authz"
	"github.com/gmonroe/teambook/internal/db"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
)

const resource = "settings"

var (
	database *db.DB
	queries  *dbgen.Queries
	initOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
// Export and import need the full database handle for transactions.
func InitHandlers(d *db.DB) {
	if d == nil {
		return
	}
	initOnce.Do(func() {
		database = d
		queries = d.Queries
	})
}

// GET /api/v1/settings
func HandleList(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	settings, err := queries.ListSettings(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list settings")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"settings": out})
}

// PUT /api/v1/settings
//
// Accepts a flat {key: value} object and upserts each entry. Numeric
// scheduling knobs are validated before anything is written.
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}

	var req map[string]string
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req) == 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "no settings provided")
		return
	}

	for key, value := range req {
		if strings.TrimSpace(key) == "" {
			apiutil.WriteError(w, http.StatusBadRequest, "setting keys must not be blank")
			return
		}
		if isNumericSetting(key) {
			if n, err := strconv.Atoi(value); err != nil || n < 0 {
				apiutil.WriteError(w, http.StatusBadRequest, key+" must be a non-negative integer")
				return
			}
		}
	}

	for key, value := range req {
		err := queries.UpsertSetting(r.Context(), dbgen.UpsertSettingParams{Key: key, Value: value})
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Str("key", key).Msg("Failed to save setting")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"settings": req})
}

func isNumericSetting(key string) bool {
	switch key {
	case "travel_time_same_location", "travel_time_different_location", "default_game_duration":
		return true
	}
	return false
}

// exportUser is a user row without the password hash; credentials never leave
// the database through an export.
type exportUser struct {
	ID    int64          `json:"id"`
	Email string         `json:"email"`
	Role  string         `json:"role"`
	Name  string         `json:"name"`
	Phone sql.NullString `json:"phone"`
}

// exportPayload is the full-database backup format. Field order follows
// foreign key dependencies so an import can replay it top to bottom.
type exportPayload struct {
	ExportedAt  string             `json:"exported_at,omitempty"`
	Users       []exportUser       `json:"users"`
	Families    []dbgen.Family     `json:"families"`
	Teams       []dbgen.Team       `json:"teams"`
	Players     []dbgen.Player     `json:"players"`
	PlayerTeams []dbgen.PlayerTeam `json:"player_teams"`
	Coaches     []dbgen.Coach      `json:"coaches"`
	TeamCoaches []dbgen.TeamCoach  `json:"team_coaches"`
	Opponents   []dbgen.Opponent   `json:"opponents"`
	Seasons     []dbgen.Season     `json:"seasons"`
	Games       []dbgen.Game       `json:"games"`
	Settings    []dbgen.Setting    `json:"settings"`
}

// GET /api/v1/settings/export
func HandleExport(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	ctx := r.Context()
	payload := exportPayload{ExportedAt: time.Now().UTC().Format(time.RFC3339)}

	steps := []func() error{
		func() error {
			users, err := queries.ListUsers(ctx)
			if err != nil {
				return err
			}
			payload.Users = make([]exportUser, 0, len(users))
			for _, u := range users {
				payload.Users = append(payload.Users, exportUser{
					ID: u.ID, Email: u.Email, Role: u.Role, Name: u.Name, Phone: u.Phone,
				})
			}
			return nil
		},
		func() (err error) { payload.Families, err = queries.ListFamiliesExport(ctx); return },
		func() (err error) { payload.Teams, err = queries.ListTeams(ctx); return },
		func() (err error) { payload.Players, err = queries.ListPlayersExport(ctx); return },
		func() (err error) { payload.PlayerTeams, err = queries.ListPlayerTeamAssignments(ctx); return },
		func() (err error) { payload.Coaches, err = queries.ListCoachesExport(ctx); return },
		func() (err error) { payload.TeamCoaches, err = queries.ListCoachTeamAssignments(ctx); return },
		func() (err error) { payload.Opponents, err = queries.ListOpponents(ctx); return },
		func() (err error) { payload.Seasons, err = queries.ListSeasons(ctx); return },
		func() (err error) { payload.Games, err = queries.ListGamesExport(ctx); return },
		func() (err error) { payload.Settings, err = queries.ListSettings(ctx); return },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to export data")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to export data")
			return
		}
	}

	w.Header().Set("Content-Disposition", `attachment; filename="teambook-export.json"`)
	apiutil.WriteJSON(w, http.StatusOK, payload)
}

// POST /api/v1/settings/import
//
// Replays an export into the database inside one transaction. Existing rows
// with matching IDs are left alone (INSERT OR IGNORE); settings are
// overwritten.
func HandleImport(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}

	var payload exportPayload
	if err := apiutil.DecodeJSON(r, &payload); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	err := database.RunInTx(ctx, func(txDB *db.DB) error {
		q := txDB.Queries
		// Exports carry no password hashes; freshly imported accounts get a
		// locked hash and need a reset before they can log in.
		for _, u := range payload.Users {
			err := q.ImportUser(ctx, dbgen.ImportUserParams{
				ID: u.ID, Email: u.Email, PasswordHash: "!",
				Role: u.Role, Name: u.Name, Phone: u.Phone,
			})
			if err != nil {
				return err
			}
		}
		for _, f := range payload.Families {
			if err := q.ImportFamily(ctx, dbgen.ImportFamilyParams{ID: f.ID, UserID: f.UserID, Name: f.Name}); err != nil {
				return err
			}
		}
		for _, t := range payload.Teams {
			if err := q.ImportTeam(ctx, dbgen.ImportTeamParams{ID: t.ID, Name: t.Name, AgeGroup: t.AgeGroup}); err != nil {
				return err
			}
		}
		for _, p := range payload.Players {
			err := q.ImportPlayer(ctx, dbgen.ImportPlayerParams{
				ID: p.ID, FamilyID: p.FamilyID, Name: p.Name, BirthDate: p.BirthDate,
			})
			if err != nil {
				return err
			}
		}
		for _, pt := range payload.PlayerTeams {
			if err := q.ImportPlayerTeam(ctx, dbgen.ImportPlayerTeamParams(pt)); err != nil {
				return err
			}
		}
		for _, c := range payload.Coaches {
			err := q.ImportCoach(ctx, dbgen.ImportCoachParams{
				ID: c.ID, UserID: c.UserID, Name: c.Name, Phone: c.Phone,
			})
			if err != nil {
				return err
			}
		}
		for _, tc := range payload.TeamCoaches {
			if err := q.ImportTeamCoach(ctx, dbgen.ImportTeamCoachParams(tc)); err != nil {
				return err
			}
		}
		for _, o := range payload.Opponents {
			err := q.ImportOpponent(ctx, dbgen.ImportOpponentParams{
				ID: o.ID, Name: o.Name, ContactName: o.ContactName,
				Phone: o.Phone, Email: o.Email, Location: o.Location,
			})
			if err != nil {
				return err
			}
		}
		for _, s := range payload.Seasons {
			err := q.ImportSeason(ctx, dbgen.ImportSeasonParams{
				ID: s.ID, Name: s.Name, Year: s.Year, Type: s.Type,
				StartDate: s.StartDate, EndDate: s.EndDate,
			})
			if err != nil {
				return err
			}
		}
		for _, g := range payload.Games {
			err := q.ImportGame(ctx, dbgen.ImportGameParams{
				ID: g.ID, TeamID: g.TeamID, OpponentID: g.OpponentID,
				Location: g.Location, SeasonID: g.SeasonID, GameDate: g.GameDate,
				StartTime: g.StartTime, EndTime: g.EndTime, Notes: g.Notes,
			})
			if err != nil {
				return err
			}
		}
		for _, s := range payload.Settings {
			if err := q.UpsertSetting(ctx, dbgen.UpsertSettingParams{Key: s.Key, Value: s.Value}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to import data")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to import data")
		return
	}

	log.Ctx(ctx).Info().
		Int("users", len(payload.Users)).
		Int("games", len(payload.Games)).
		Msg("Data import completed")
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}
