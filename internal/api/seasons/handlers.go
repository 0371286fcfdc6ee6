// Package seasons exposes season CRUD.
package seasons

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

const resource = "seasons"

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

type seasonRequest struct {
	Name      string `json:"name"`
	Year      string `json:"year"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func seasonJSON(s dbgen.Season) map[string]any {
	return map[string]any{
		"id":         s.ID,
		"name":       s.Name,
		"year":       s.Year,
		"type":       s.Type,
		"start_date": apiutil.StringValue(s.StartDate),
		"end_date":   apiutil.StringValue(s.EndDate),
	}
}

func validateSeason(w http.ResponseWriter, req *seasonRequest) bool {
	req.Name = strings.TrimSpace(req.Name)
	req.Year = strings.TrimSpace(req.Year)
	req.Type = strings.TrimSpace(req.Type)
	if req.Name == "" || req.Year == "" || req.Type == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "name, year, and type are required")
		return false
	}
	switch req.Type {
	case "fall", "winter", "spring", "summer":
	default:
		apiutil.WriteError(w, http.StatusBadRequest, "type must be one of fall, winter, spring, summer")
		return false
	}
	for _, d := range []string{req.StartDate, req.EndDate} {
		if d != "" && !apiutil.ValidDate(d) {
			apiutil.WriteError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
			return false
		}
	}
	return true
}

// GET /api/v1/seasons
func HandleList(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	seasons, err := queries.ListSeasons(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list seasons")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list seasons")
		return
	}
	out := make([]map[string]any, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, seasonJSON(s))
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"seasons": out})
}

// GET /api/v1/seasons/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	season, err := queries.GetSeasonByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Season not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("season_id", id).Msg("Failed to load season")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load season")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"season": seasonJSON(season)})
}

// POST /api/v1/seasons
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionCreate) == nil {
		return
	}

	var req seasonRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validateSeason(w, &req) {
		return
	}

	season, err := queries.CreateSeason(r.Context(), dbgen.CreateSeasonParams{
		Name:      req.Name,
		Year:      req.Year,
		Type:      req.Type,
		StartDate: apiutil.NullString(req.StartDate),
		EndDate:   apiutil.NullString(req.EndDate),
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create season")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create season")
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"season": seasonJSON(season)})
}

// PUT /api/v1/seasons/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req seasonRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validateSeason(w, &req) {
		return
	}

	if _, err := queries.GetSeasonByID(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Season not found")
		return
	}

	err = queries.UpdateSeason(r.Context(), dbgen.UpdateSeasonParams{
		Name:      req.Name,
		Year:      req.Year,
		Type:      req.Type,
		StartDate: apiutil.NullString(req.StartDate),
		EndDate:   apiutil.NullString(req.EndDate),
		ID:        id,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("season_id", id).Msg("Failed to update season")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update season")
		return
	}

	season, err := queries.GetSeasonByID(r.Context(), id)
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update season")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"season": seasonJSON(season)})
}

// DELETE /api/v1/seasons/{id}
//
// Games keep their rows; the schema nulls season_id on delete.
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionDelete) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := queries.DeleteSeason(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("season_id", id).Msg("Failed to delete season")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete season")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
