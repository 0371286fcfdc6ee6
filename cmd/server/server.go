// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gmonroe/teambook/internal/api"
	"github.com/gmonroe/teambook/internal/api/auth"
	"github.com/gmonroe/teambook/internal/api/coaches"
	"github.com/gmonroe/teambook/internal/api/families"
	"github.com/gmonroe/teambook/internal/api/games"
	"github.com/gmonroe/teambook/internal/api/opponents"
	"github.com/gmonroe/teambook/internal/api/players"
	"github.com/gmonroe/teambook/internal/api/seasons"
	"github.com/gmonroe/teambook/internal/api/settings"
	"github.com/gmonroe/teambook/internal/api/teams"
	"github.com/gmonroe/teambook/internal/api/users"
	"github.com/gmonroe/teambook/internal/config"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
)

func newServer(cfg *config.Config, queries *dbgen.Queries) *http.Server {
	router := http.NewServeMux()

	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithAuth(queries),
		api.WithRequestID,
	)

	registerRoutes(router, cfg)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", auth.HandleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.HandleLogout)
	mux.HandleFunc("GET /api/v1/auth/me", auth.HandleMe)

	// Users and permissions
	mux.HandleFunc("GET /api/v1/users", users.HandleList)
	mux.HandleFunc("PUT /api/v1/users/{id}/role", users.HandleUpdateRole)
	mux.HandleFunc("GET /api/v1/users/{id}/permissions", users.HandleGetPermissions)
	mux.HandleFunc("PUT /api/v1/users/{id}/permissions", users.HandleSetPermissions)

	// Families
	mux.HandleFunc("GET /api/v1/families", families.HandleList)
	mux.HandleFunc("GET /api/v1/families/my", families.HandleMine)
	mux.HandleFunc("GET /api/v1/families/{id}", families.HandleGet)
	mux.HandleFunc("POST /api/v1/families", families.HandleCreate)
	mux.HandleFunc("PUT /api/v1/families/{id}", families.HandleUpdate)

	// Players
	mux.HandleFunc("GET /api/v1/players", players.HandleList)
	mux.HandleFunc("GET /api/v1/players/{id}", players.HandleGet)
	mux.HandleFunc("POST /api/v1/players", players.HandleCreate)
	mux.HandleFunc("PUT /api/v1/players/{id}", players.HandleUpdate)
	mux.HandleFunc("DELETE /api/v1/players/{id}", players.HandleDelete)

	// Teams and roster assignments
	mux.HandleFunc("GET /api/v1/teams", teams.HandleList)
	mux.HandleFunc("GET /api/v1/teams/my", teams.HandleMine)
	mux.HandleFunc("GET /api/v1/teams/{id}", teams.HandleGet)
	mux.HandleFunc("POST /api/v1/teams", teams.HandleCreate)
	mux.HandleFunc("PUT /api/v1/teams/{id}", teams.HandleUpdate)
	mux.HandleFunc("DELETE /api/v1/teams/{id}", teams.HandleDelete)
	mux.HandleFunc("POST /api/v1/teams/{id}/players/{playerID}", teams.HandleAddPlayer)
	mux.HandleFunc("DELETE /api/v1/teams/{id}/players/{playerID}", teams.HandleRemovePlayer)
	mux.HandleFunc("POST /api/v1/teams/{id}/coaches/{coachID}", teams.HandleAssignCoach)
	mux.HandleFunc("DELETE /api/v1/teams/{id}/coaches/{coachID}", teams.HandleRemoveCoach)

	// Coaches
	mux.HandleFunc("GET /api/v1/coaches", coaches.HandleList)
	mux.HandleFunc("GET /api/v1/coaches/{id}", coaches.HandleGet)
	mux.HandleFunc("POST /api/v1/coaches", coaches.HandleCreate)
	mux.HandleFunc("PUT /api/v1/coaches/{id}", coaches.HandleUpdate)
	mux.HandleFunc("DELETE /api/v1/coaches/{id}", coaches.HandleDelete)

	// Opponents
	mux.HandleFunc("GET /api/v1/opponents", opponents.HandleList)
	mux.HandleFunc("GET /api/v1/opponents/{id}", opponents.HandleGet)
	mux.HandleFunc("POST /api/v1/opponents", opponents.HandleCreate)
	mux.HandleFunc("PUT /api/v1/opponents/{id}", opponents.HandleUpdate)
	mux.HandleFunc("DELETE /api/v1/opponents/{id}", opponents.HandleDelete)

	// Seasons
	mux.HandleFunc("GET /api/v1/seasons", seasons.HandleList)
	mux.HandleFunc("GET /api/v1/seasons/{id}", seasons.HandleGet)
	mux.HandleFunc("POST /api/v1/seasons", seasons.HandleCreate)
	mux.HandleFunc("PUT /api/v1/seasons/{id}", seasons.HandleUpdate)
	mux.HandleFunc("DELETE /api/v1/seasons/{id}", seasons.HandleDelete)

	// Games and conflict preview
	mux.HandleFunc("GET /api/v1/games", games.HandleList)
	mux.HandleFunc("GET /api/v1/games/conflicts", games.HandleConflicts)
	mux.HandleFunc("GET /api/v1/games/{id}", games.HandleGet)
	mux.HandleFunc("POST /api/v1/games", games.HandleCreate)
	mux.HandleFunc("PUT /api/v1/games/{id}", games.HandleUpdate)
	mux.HandleFunc("DELETE /api/v1/games/{id}", games.HandleDelete)

	// Settings, export, import
	mux.HandleFunc("GET /api/v1/settings", settings.HandleList)
	mux.HandleFunc("PUT /api/v1/settings", settings.HandleUpdate)
	mux.HandleFunc("GET /api/v1/settings/export", settings.HandleExport)
	mux.HandleFunc("POST /api/v1/settings/import", settings.HandleImport)

	// Static frontend assets
	if cfg.App.StaticDir != "" {
		fs := http.FileServer(http.Dir(cfg.App.StaticDir))
		mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
	}
}
