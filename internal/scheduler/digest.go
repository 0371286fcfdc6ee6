package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gmonroe/teambook/internal/db"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
	"github.com/gmonroe/teambook/internal/email"
)

const digestWindowDays = 7

// RegisterDigestJob schedules the weekly coach digest: each run mails every
// team's coaches the games scheduled in the next 7 days.
func RegisterDigestJob(svc *Service, database *db.DB, sender email.Sender, cronExpr string) error {
	if svc == nil || database == nil {
		return fmt.Errorf("digest job requires scheduler and database")
	}

	jobName := "weekly_schedule_digest"
	jobLogger := log.With().
		Str("component", "schedule_digest_job").
		Str("job_name", jobName).
		Logger()

	_, err := svc.AddJob(jobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if sender == nil {
			jobLogger.Debug().Msg("Digest job skipped: email not configured")
			return
		}
		if err := SendScheduleDigests(ctx, database.Queries, sender, time.Now()); err != nil {
			jobLogger.Error().Err(err).Msg("Digest run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("add schedule digest job: %w", err)
	}
	return nil
}

// SendScheduleDigests mails every team's coaches the games falling within
// digestWindowDays of now. Teams with no upcoming games are skipped.
func SendScheduleDigests(ctx context.Context, q *dbgen.Queries, sender email.Sender, now time.Time) error {
	teams, err := q.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}

	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, digestWindowDays).Format("2006-01-02")

	for _, team := range teams {
		teamLogger := log.Ctx(ctx).With().Int64("team_id", team.ID).Logger()

		games, err := upcomingGames(ctx, q, team.ID, from, to)
		if err != nil {
			teamLogger.Error().Err(err).Msg("Failed to load games for digest")
			continue
		}
		if len(games) == 0 {
			continue
		}

		coaches, err := q.ListTeamCoachEmails(ctx, team.ID)
		if err != nil {
			teamLogger.Error().Err(err).Msg("Failed to load coach emails for digest")
			continue
		}
		if len(coaches) == 0 {
			continue
		}

		digest := email.BuildWeeklyDigest(team.Name, games)
		for _, coach := range coaches {
			if coach.Email == "" {
				continue
			}
			if err := sender.Send(ctx, coach.Email, digest.Subject, digest.Body); err != nil {
				teamLogger.Error().Err(err).Int64("coach_id", coach.ID).Msg("Failed to send digest email")
				continue
			}
			teamLogger.Info().Int64("coach_id", coach.ID).Int("games", len(games)).Msg("Digest email sent")
		}
	}
	return nil
}

// upcomingGames returns the team's games with from <= date < to, in schedule
// order. Dates are YYYY-MM-DD so string comparison orders correctly.
func upcomingGames(ctx context.Context, q *dbgen.Queries, teamID int64, from, to string) ([]email.DigestGame, error) {
	rows, err := q.ListGames(ctx, dbgen.ListGamesParams{TeamID: teamID})
	if err != nil {
		return nil, err
	}

	var games []email.DigestGame
	for _, g := range rows {
		if g.GameDate < from || g.GameDate >= to {
			continue
		}
		games = append(games, email.DigestGame{
			Date:         g.GameDate,
			StartTime:    g.StartTime,
			EndTime:      g.EndTime,
			OpponentName: g.OpponentName,
			Location:     g.Location.String,
			Notes:        g.Notes.String,
		})
	}
	return games, nil
}
