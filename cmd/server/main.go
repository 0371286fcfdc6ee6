// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

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
	"github.com/gmonroe/teambook/internal/clubsettings"
	"github.com/gmonroe/teambook/internal/config"
	"github.com/gmonroe/teambook/internal/db"
	"github.com/gmonroe/teambook/internal/email"
	"github.com/gmonroe/teambook/internal/ratelimit"
	"github.com/gmonroe/teambook/internal/schedule"
	"github.com/gmonroe/teambook/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	limiter := ratelimit.New(ratelimit.DefaultConfig())
	defer limiter.Close()

	settingsProvider := clubsettings.New(database.Queries)
	detector := schedule.NewDetector(database.Queries, settingsProvider)

	auth.InitHandlers(database.Queries, cfg, limiter)
	users.InitHandlers(database.Queries)
	families.InitHandlers(database.Queries)
	players.InitHandlers(database.Queries)
	teams.InitHandlers(database.Queries)
	coaches.InitHandlers(database.Queries)
	opponents.InitHandlers(database.Queries)
	seasons.InitHandlers(database.Queries)
	games.InitHandlers(database.Queries, detector, settingsProvider)
	settings.InitHandlers(database)

	emailClient, err := email.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize email client")
	}

	var jobs *scheduler.Service
	if cfg.Digest.Enabled {
		jobs, err = scheduler.New()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize scheduler")
		}
		var sender email.Sender
		if emailClient != nil {
			sender = emailClient
		}
		if err := scheduler.RegisterDigestJob(jobs, database, sender, cfg.Digest.Cron); err != nil {
			log.Fatal().Err(err).Msg("Failed to register digest job")
		}
		jobs.Start()
	}

	server := newServer(cfg, database.Queries)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if jobs != nil {
			if err := jobs.Stop(); err != nil {
				log.Error().Err(err).Msg("Scheduler shutdown error")
			}
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
