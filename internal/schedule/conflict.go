// Package schedule detects double-bookings across the game calendar.
//
// Two games conflict when they fall on the same date, their time windows
// overlap, and the teams involved share at least one player, family, or
// coach. Conflicts are advisory: callers surface them but may still save the
// game.
package schedule

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gmonroe/teambook/internal/clubsettings"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
	"github.com/gmonroe/teambook/internal/roster"
)

// Proposal describes a game being created, edited, or previewed.
type Proposal struct {
	TeamID    int64
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Location  string
	// ExcludeGameID skips one existing game during the scan, so an edit
	// does not conflict with itself. Zero means nothing is excluded.
	ExcludeGameID int64
}

// ConflictGame identifies the existing game a proposal collides with.
type ConflictGame struct {
	ID           int64  `json:"id"`
	TeamID       int64  `json:"team_id"`
	TeamName     string `json:"team_name"`
	OpponentName string `json:"opponent_name"`
	GameDate     string `json:"game_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// Conflict reports one existing game that collides with a proposal. Type
// names the kinds of people shared with that game's team.
type Conflict struct {
	Game          ConflictGame `json:"game"`
	Type          string       `json:"type"`
	Reason        string       `json:"reason"`
	TravelMinutes int          `json:"travel_minutes"`
}

// Detector scans the calendar for people double-booked by a proposal.
type Detector struct {
	q        *dbgen.Queries
	settings *clubsettings.Provider
}

func NewDetector(q *dbgen.Queries, settings *clubsettings.Provider) *Detector {
	return &Detector{q: q, settings: settings}
}

// Check returns every conflict the proposal would cause, ordered by the
// existing game's start time. An empty slice means the slot is clear.
func (d *Detector) Check(ctx context.Context, p Proposal) ([]Conflict, error) {
	candidate, err := roster.For(ctx, d.q, p.TeamID)
	if err != nil {
		return nil, fmt.Errorf("load roster for team %d: %w", p.TeamID, err)
	}

	games, err := d.q.ListGamesOnDate(ctx, dbgen.ListGamesOnDateParams{
		GameDate: p.Date,
		ID:       p.ExcludeGameID,
	})
	if err != nil {
		return nil, fmt.Errorf("list games on %s: %w", p.Date, err)
	}

	index := roster.NewIndex(d.q)
	// Seed the cache so the candidate team's own games reuse the roster.
	index.Put(p.TeamID, candidate)

	conflicts := []Conflict{}
	for _, g := range games {
		if !overlaps(p.StartTime, p.EndTime, g.StartTime, g.EndTime) {
			continue
		}

		other, err := index.Get(ctx, g.TeamID)
		if err != nil {
			return nil, fmt.Errorf("load roster for team %d: %w", g.TeamID, err)
		}

		kinds := sharedKinds(candidate, other)
		if len(kinds) == 0 {
			continue
		}

		same := sameLocation(p.Location, g.Location.String, g.Location.Valid)
		travel := d.settings.TravelMinutes(ctx, same)

		conflicts = append(conflicts, Conflict{
			Game: ConflictGame{
				ID:           g.ID,
				TeamID:       g.TeamID,
				TeamName:     g.TeamName,
				OpponentName: g.OpponentName,
				GameDate:     g.GameDate,
				StartTime:    g.StartTime,
				EndTime:      g.EndTime,
			},
			Type:          strings.Join(kinds, ", "),
			Reason:        fmt.Sprintf("Same time (%s-%s)", g.StartTime, g.EndTime),
			TravelMinutes: travel,
		})
	}

	if len(conflicts) > 0 {
		log.Ctx(ctx).Info().
			Int64("team_id", p.TeamID).
			Str("date", p.Date).
			Int("conflicts", len(conflicts)).
			Msg("Schedule conflicts detected")
	}
	return conflicts, nil
}

// overlaps implements the half-open window check on HH:MM strings. Zero
// padded clock times compare correctly as strings, so no time parsing is
// needed. Back-to-back games (one ending exactly when the other starts) do
// not overlap.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

// sharedKinds lists which kinds of people the two rosters share, always in
// Player, Family, Coach order.
func sharedKinds(a, b roster.Roster) []string {
	var kinds []string
	if roster.SharesAny(a.PlayerIDs, b.PlayerIDs) {
		kinds = append(kinds, "Player")
	}
	if roster.SharesAny(a.FamilyIDs, b.FamilyIDs) {
		kinds = append(kinds, "Family")
	}
	if roster.SharesAny(a.CoachIDs, b.CoachIDs) {
		kinds = append(kinds, "Coach")
	}
	return kinds
}

// sameLocation compares game locations case-insensitively. A blank location
// on either side never counts as the same place.
func sameLocation(a, b string, bValid bool) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || !bValid || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
