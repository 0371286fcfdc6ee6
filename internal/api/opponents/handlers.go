// Package opponents exposes opponent club CRUD.
package opponents

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

const resource = "opponents"

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

type opponentRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Location    string `json:"location"`
}

func opponentJSON(o dbgen.Opponent) map[string]any {
	return map[string]any{
		"id":           o.ID,
		"name":         o.Name,
		"contact_name": apiutil.StringValue(o.ContactName),
		"phone":        apiutil.StringValue(o.Phone),
		"email":        apiutil.StringValue(o.Email),
		"location":     apiutil.StringValue(o.Location),
	}
}

// GET /api/v1/opponents
func HandleList(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	opponents, err := queries.ListOpponents(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list opponents")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to list opponents")
		return
	}
	out := make([]map[string]any, 0, len(opponents))
	for _, o := range opponents {
		out = append(out, opponentJSON(o))
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"opponents": out})
}

// GET /api/v1/opponents/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionView) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	opponent, err := queries.GetOpponentByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Opponent not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("opponent_id", id).Msg("Failed to load opponent")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load opponent")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"opponent": opponentJSON(opponent)})
}

func decodeOpponent(w http.ResponseWriter, r *http.Request) (opponentRequest, string, bool) {
	var req opponentRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return req, "", false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Opponent name is required")
		return req, "", false
	}
	phone, err := apiutil.NormalizePhone(req.Phone)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return req, "", false
	}
	return req, phone, true
}

// POST /api/v1/opponents
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionCreate) == nil {
		return
	}

	req, phone, ok := decodeOpponent(w, r)
	if !ok {
		return
	}

	opponent, err := queries.CreateOpponent(r.Context(), dbgen.CreateOpponentParams{
		Name:        req.Name,
		ContactName: apiutil.NullString(req.ContactName),
		Phone:       apiutil.NullString(phone),
		Email:       apiutil.NullString(req.Email),
		Location:    apiutil.NullString(req.Location),
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to create opponent")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create opponent")
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, map[string]any{"opponent": opponentJSON(opponent)})
}

// PUT /api/v1/opponents/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionEdit) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, phone, ok := decodeOpponent(w, r)
	if !ok {
		return
	}

	if _, err := queries.GetOpponentByID(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
		apiutil.WriteError(w, http.StatusNotFound, "Opponent not found")
		return
	}

	err = queries.UpdateOpponent(r.Context(), dbgen.UpdateOpponentParams{
		Name:        req.Name,
		ContactName: apiutil.NullString(req.ContactName),
		Phone:       apiutil.NullString(phone),
		Email:       apiutil.NullString(req.Email),
		Location:    apiutil.NullString(req.Location),
		ID:          id,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("opponent_id", id).Msg("Failed to update opponent")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update opponent")
		return
	}

	opponent, err := queries.GetOpponentByID(r.Context(), id)
	if err != nil {
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update opponent")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"opponent": opponentJSON(opponent)})
}

// DELETE /api/v1/opponents/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	if apiutil.RequirePermission(w, r, queries, resource, authz.ActionDelete) == nil {
		return
	}

	id, err := apiutil.PathID(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := queries.DeleteOpponent(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("opponent_id", id).Msg("Failed to delete opponent")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete opponent")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
