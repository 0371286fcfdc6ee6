// cmd/tools/seed/main.go
//
// Seeds a fresh database with an admin account and a small demo club so the
// app is usable right after setup.
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gmonroe/teambook/internal/api/auth"
	"github.com/gmonroe/teambook/internal/db"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
)

func main() {
	var (
		dbPath        = flag.String("db", os.Getenv("DATABASE_FILE"), "Path to SQLite database")
		adminEmail    = flag.String("admin-email", "admin@example.com", "Admin account email")
		adminPassword = flag.String("admin-password", "", "Admin account password")
		demo          = flag.Bool("demo", false, "Also create demo teams, families, and games")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *dbPath == "" {
		log.Fatal().Msg("A database path is required (-db flag or DATABASE_FILE)")
	}
	if *adminPassword == "" {
		log.Fatal().Msg("-admin-password is required")
	}

	database, err := db.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	ctx := context.Background()
	hash, err := auth.HashPassword(*adminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	admin, err := database.Queries.CreateUser(ctx, dbgen.CreateUserParams{
		Email:        *adminEmail,
		PasswordHash: hash,
		Role:         "admin",
		Name:         "Administrator",
	})
	if err != nil {
		log.Fatal().Err(err).Str("email", *adminEmail).Msg("Failed to create admin account")
	}
	log.Info().Int64("user_id", admin.ID).Str("email", admin.Email).Msg("Admin account created")

	if !*demo {
		return
	}
	if err := seedDemo(ctx, database.Queries); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed demo data")
	}
	log.Info().Msg("Demo data created")
}

func seedDemo(ctx context.Context, q *dbgen.Queries) error {
	team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{
		Name:     "Hornets",
		AgeGroup: sql.NullString{String: "U12", Valid: true},
	})
	if err != nil {
		return err
	}

	famUser, err := q.CreateUser(ctx, dbgen.CreateUserParams{
		Email:        "family@example.com",
		PasswordHash: "!", // placeholder, cannot log in until reset
		Role:         "family",
		Name:         "Ortiz Family",
	})
	if err != nil {
		return err
	}
	family, err := q.CreateFamily(ctx, dbgen.CreateFamilyParams{UserID: famUser.ID, Name: "Ortiz"})
	if err != nil {
		return err
	}
	for _, name := range []string{"Mia Ortiz", "Leo Ortiz"} {
		player, err := q.CreatePlayer(ctx, dbgen.CreatePlayerParams{FamilyID: family.ID, Name: name})
		if err != nil {
			return err
		}
		err = q.AddPlayerToTeam(ctx, dbgen.AddPlayerToTeamParams{PlayerID: player.ID, TeamID: team.ID})
		if err != nil {
			return err
		}
	}

	coachUser, err := q.CreateUser(ctx, dbgen.CreateUserParams{
		Email:        "coach@example.com",
		PasswordHash: "!",
		Role:         "coach",
		Name:         "Ray Chen",
	})
	if err != nil {
		return err
	}
	coach, err := q.CreateCoach(ctx, dbgen.CreateCoachParams{UserID: coachUser.ID, Name: "Ray Chen"})
	if err != nil {
		return err
	}
	err = q.AssignCoachToTeam(ctx, dbgen.AssignCoachToTeamParams{CoachID: coach.ID, TeamID: team.ID})
	if err != nil {
		return err
	}

	opponent, err := q.CreateOpponent(ctx, dbgen.CreateOpponentParams{Name: "Riverside United"})
	if err != nil {
		return err
	}
	season, err := q.CreateSeason(ctx, dbgen.CreateSeasonParams{
		Name: "Spring League", Year: "2026", Type: "spring",
	})
	if err != nil {
		return err
	}

	_, err = q.CreateGame(ctx, dbgen.CreateGameParams{
		TeamID:     team.ID,
		OpponentID: opponent.ID,
		SeasonID:   sql.NullInt64{Int64: season.ID, Valid: true},
		GameDate:   "2026-04-11",
		StartTime:  "10:00",
		EndTime:    "11:30",
	})
	return err
}
