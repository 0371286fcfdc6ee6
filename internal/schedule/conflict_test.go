package schedule

import (
	"context"
	"strings"
	"testing"

	"github.com/gmonroe/teambook/internal/api/apiutil"
	"github.com/gmonroe/teambook/internal/clubsettings"
	"github.com/gmonroe/teambook/internal/db"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
	"github.com/gmonroe/teambook/internal/testutil"
)

// fixture wires a detector against a seeded club:
//
//	Hornets: players Mia and Leo (Ortiz family), coach Ray
//	Comets:  player Sam (Chan family), coach Ray (shared with Hornets)
//	Sparks:  player Ana (Ortiz family, Mia's sibling team), coach Pat
//	Rockets: player Ben (Lee family), coach Pat's colleague Kim
type fixture struct {
	db       *db.DB
	q        *dbgen.Queries
	detector *Detector
	opponent dbgen.Opponent

	hornets, comets, sparks, rockets dbgen.Team
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	q := database.Queries
	f := &fixture{
		db:       database,
		q:        q,
		detector: NewDetector(q, clubsettings.New(q)),
	}

	ctx := context.Background()
	var err error
	f.opponent, err = q.CreateOpponent(ctx, dbgen.CreateOpponentParams{Name: "Visiting FC"})
	if err != nil {
		t.Fatalf("CreateOpponent: %v", err)
	}

	f.hornets = f.team(t, "Hornets")
	f.comets = f.team(t, "Comets")
	f.sparks = f.team(t, "Sparks")
	f.rockets = f.team(t, "Rockets")

	ortiz := f.family(t, "ortiz@example.com")
	chan_ := f.family(t, "chan@example.com")
	lee := f.family(t, "lee@example.com")

	mia := f.player(t, ortiz, "Mia")
	leo := f.player(t, ortiz, "Leo")
	sam := f.player(t, chan_, "Sam")
	ana := f.player(t, ortiz, "Ana")
	ben := f.player(t, lee, "Ben")

	f.assign(t, mia, f.hornets)
	f.assign(t, leo, f.hornets)
	f.assign(t, sam, f.comets)
	f.assign(t, ana, f.sparks)
	f.assign(t, ben, f.rockets)

	ray := f.coach(t, "ray@example.com")
	pat := f.coach(t, "pat@example.com")
	kim := f.coach(t, "kim@example.com")
	f.assignCoach(t, ray, f.hornets)
	f.assignCoach(t, ray, f.comets)
	f.assignCoach(t, pat, f.sparks)
	f.assignCoach(t, kim, f.rockets)

	return f
}

func (f *fixture) team(t *testing.T, name string) dbgen.Team {
	t.Helper()
	team, err := f.q.CreateTeam(context.Background(), dbgen.CreateTeamParams{Name: name})
	if err != nil {
		t.Fatalf("CreateTeam(%s): %v", name, err)
	}
	return team
}

func (f *fixture) family(t *testing.T, email string) dbgen.Family {
	t.Helper()
	ctx := context.Background()
	u, err := f.q.CreateUser(ctx, dbgen.CreateUserParams{
		Email: email, PasswordHash: "x", Role: "family", Name: email,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	fam, err := f.q.CreateFamily(ctx, dbgen.CreateFamilyParams{UserID: u.ID, Name: email})
	if err != nil {
		t.Fatalf("CreateFamily(%s): %v", email, err)
	}
	return fam
}

func (f *fixture) player(t *testing.T, fam dbgen.Family, name string) dbgen.Player {
	t.Helper()
	p, err := f.q.CreatePlayer(context.Background(), dbgen.CreatePlayerParams{FamilyID: fam.ID, Name: name})
	if err != nil {
		t.Fatalf("CreatePlayer(%s): %v", name, err)
	}
	return p
}

func (f *fixture) assign(t *testing.T, p dbgen.Player, team dbgen.Team) {
	t.Helper()
	err := f.q.AddPlayerToTeam(context.Background(), dbgen.AddPlayerToTeamParams{PlayerID: p.ID, TeamID: team.ID})
	if err != nil {
		t.Fatalf("AddPlayerToTeam: %v", err)
	}
}

func (f *fixture) coach(t *testing.T, email string) dbgen.Coach {
	t.Helper()
	ctx := context.Background()
	u, err := f.q.CreateUser(ctx, dbgen.CreateUserParams{
		Email: email, PasswordHash: "x", Role: "coach", Name: email,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	c, err := f.q.CreateCoach(ctx, dbgen.CreateCoachParams{UserID: u.ID, Name: email})
	if err != nil {
		t.Fatalf("CreateCoach(%s): %v", email, err)
	}
	return c
}

func (f *fixture) assignCoach(t *testing.T, c dbgen.Coach, team dbgen.Team) {
	t.Helper()
	err := f.q.AssignCoachToTeam(context.Background(), dbgen.AssignCoachToTeamParams{CoachID: c.ID, TeamID: team.ID})
	if err != nil {
		t.Fatalf("AssignCoachToTeam: %v", err)
	}
}

func (f *fixture) game(t *testing.T, team dbgen.Team, date, start, end, location string) dbgen.Game {
	t.Helper()
	g, err := f.q.CreateGame(context.Background(), dbgen.CreateGameParams{
		TeamID:     team.ID,
		OpponentID: f.opponent.ID,
		Location:   apiutil.NullString(location),
		GameDate:   date,
		StartTime:  start,
		EndTime:    end,
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	return g
}

func (f *fixture) check(t *testing.T, p Proposal) []Conflict {
	t.Helper()
	conflicts, err := f.detector.Check(context.Background(), p)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	return conflicts
}

func TestNoConflictAcrossDates(t *testing.T) {
	f := newFixture(t)
	f.game(t, f.hornets, "2026-04-11", "10:00", "11:30", "Main Field")

	conflicts := f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-12", StartTime: "10:00", EndTime: "11:30",
	})
	if len(conflicts) != 0 {
		t.Fatalf("games on different dates must not conflict, got %+v", conflicts)
	}
}

func TestNoConflictDisjointWindows(t *testing.T) {
	f := newFixture(t)
	f.game(t, f.hornets, "2026-04-11", "09:00", "10:00", "Main Field")

	conflicts := f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "14:00", EndTime: "15:30",
	})
	if len(conflicts) != 0 {
		t.Fatalf("disjoint windows must not conflict, got %+v", conflicts)
	}
}

func TestBackToBackGamesDoNotConflict(t *testing.T) {
	f := newFixture(t)
	f.game(t, f.hornets, "2026-04-11", "10:00", "11:00", "Main Field")

	// New game starts the minute the old one ends; the windows are
	// half-open so this is clear.
	conflicts := f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "11:00", EndTime: "12:00",
	})
	if len(conflicts) != 0 {
		t.Fatalf("touching windows must not conflict, got %+v", conflicts)
	}

	conflicts = f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "09:00", EndTime: "10:00",
	})
	if len(conflicts) != 0 {
		t.Fatalf("touching windows must not conflict, got %+v", conflicts)
	}
}

func TestOverlapWithoutSharedPeople(t *testing.T) {
	f := newFixture(t)
	// Comets (Chan family, coach Ray) and Rockets (Lee family, coach Kim)
	// share no players, families, or coaches.
	f.game(t, f.rockets, "2026-04-11", "10:00", "11:30", "East Park")

	conflicts := f.check(t, Proposal{
		TeamID: f.comets.ID, Date: "2026-04-11", StartTime: "10:30", EndTime: "12:00",
	})
	if len(conflicts) != 0 {
		t.Fatalf("overlap without shared people must not conflict, got %+v", conflicts)
	}
}

func TestSharedPlayerConflict(t *testing.T) {
	f := newFixture(t)
	// Put Mia on the Comets as well, then double-book the two teams.
	mia := f.hornetsPlayer(t, "Mia")
	f.assign(t, mia, f.comets)

	g := f.game(t, f.hornets, "2026-04-11", "10:00", "11:30", "Main Field")

	conflicts := f.check(t, Proposal{
		TeamID: f.comets.ID, Date: "2026-04-11", StartTime: "11:00", EndTime: "12:30",
	})
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %+v", conflicts)
	}
	c := conflicts[0]
	if c.Game.ID != g.ID {
		t.Errorf("Game.ID = %d, want %d", c.Game.ID, g.ID)
	}
	// A shared player drags the family along, and Ray coaches both teams.
	if c.Type != "Player, Family, Coach" {
		t.Errorf("Type = %q, want %q", c.Type, "Player, Family, Coach")
	}
	if c.Reason != "Same time (10:00-11:30)" {
		t.Errorf("Reason = %q", c.Reason)
	}
}

func TestSiblingFamilyConflict(t *testing.T) {
	f := newFixture(t)
	// Hornets (Mia, Leo) and Sparks (Ana) share only the Ortiz family.
	f.game(t, f.sparks, "2026-04-11", "10:00", "11:30", "West Field")

	conflicts := f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "10:30", EndTime: "12:00",
	})
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %+v", conflicts)
	}
	if conflicts[0].Type != "Family" {
		t.Errorf("Type = %q, want Family", conflicts[0].Type)
	}
}

func TestSharedCoachConflict(t *testing.T) {
	f := newFixture(t)
	// Hornets and Comets share coach Ray but no players or families.
	f.game(t, f.comets, "2026-04-11", "10:00", "11:30", "Main Field")

	conflicts := f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "11:00", EndTime: "12:30",
	})
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %+v", conflicts)
	}
	if conflicts[0].Type != "Coach" {
		t.Errorf("Type = %q, want Coach", conflicts[0].Type)
	}
}

func TestExcludeGameSkipsSelf(t *testing.T) {
	f := newFixture(t)
	g := f.game(t, f.hornets, "2026-04-11", "10:00", "11:30", "Main Field")

	// Re-checking the game's own slot without exclusion flags itself.
	withSelf := f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "10:00", EndTime: "11:30",
	})
	if len(withSelf) != 1 {
		t.Fatalf("expected self-conflict without exclusion, got %+v", withSelf)
	}

	// An edit excludes its own row and comes back clean.
	conflicts := f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "10:00", EndTime: "11:30",
		ExcludeGameID: g.ID,
	})
	if len(conflicts) != 0 {
		t.Fatalf("edit must not conflict with itself, got %+v", conflicts)
	}
}

func TestTravelMinutesInformational(t *testing.T) {
	f := newFixture(t)
	f.game(t, f.comets, "2026-04-11", "10:00", "11:30", "Main Field")

	// Same place, compared case-insensitively.
	conflicts := f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "11:00", EndTime: "12:30",
		Location: "MAIN field",
	})
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %+v", conflicts)
	}
	if conflicts[0].TravelMinutes != 0 {
		t.Errorf("same location TravelMinutes = %d, want 0", conflicts[0].TravelMinutes)
	}

	// Different place picks up the cross-town buffer.
	conflicts = f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "11:00", EndTime: "12:30",
		Location: "North Complex",
	})
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %+v", conflicts)
	}
	if conflicts[0].TravelMinutes != 90 {
		t.Errorf("different location TravelMinutes = %d, want 90", conflicts[0].TravelMinutes)
	}

	// A blank location never counts as the same place.
	conflicts = f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "11:00", EndTime: "12:30",
	})
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %+v", conflicts)
	}
	if conflicts[0].TravelMinutes != 90 {
		t.Errorf("blank location TravelMinutes = %d, want 90", conflicts[0].TravelMinutes)
	}
}

func TestCheckIsReadOnly(t *testing.T) {
	f := newFixture(t)
	f.game(t, f.hornets, "2026-04-11", "10:00", "11:30", "Main Field")

	p := Proposal{TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "10:30", EndTime: "12:00"}
	first := f.check(t, p)
	second := f.check(t, p)
	if len(first) != len(second) {
		t.Fatalf("repeated checks disagree: %d vs %d", len(first), len(second))
	}

	games, err := f.q.ListGamesExport(context.Background())
	if err != nil {
		t.Fatalf("ListGamesExport: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("Check must not write games, found %d", len(games))
	}
}

func TestMultipleConflictsOrderedByStartTime(t *testing.T) {
	f := newFixture(t)
	// Two Comets games overlapping the proposed Hornets slot via coach Ray.
	f.game(t, f.comets, "2026-04-11", "11:00", "12:30", "Main Field")
	f.game(t, f.comets, "2026-04-11", "09:30", "11:00", "Main Field")

	conflicts := f.check(t, Proposal{
		TeamID: f.hornets.ID, Date: "2026-04-11", StartTime: "09:00", EndTime: "13:00",
	})
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %+v", conflicts)
	}
	if !(conflicts[0].Game.StartTime < conflicts[1].Game.StartTime) {
		t.Errorf("conflicts out of order: %q then %q", conflicts[0].Game.StartTime, conflicts[1].Game.StartTime)
	}
}

func TestOverlapWindow(t *testing.T) {
	cases := []struct {
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"10:00", "11:00", "11:00", "12:00", false},
		{"11:00", "12:00", "10:00", "11:00", false},
		{"10:00", "11:30", "11:00", "12:00", true},
		{"10:00", "12:00", "10:30", "11:00", true},
		{"10:30", "11:00", "10:00", "12:00", true},
		{"10:00", "11:00", "10:00", "11:00", true},
		{"08:00", "09:00", "21:00", "22:00", false},
	}
	for _, tc := range cases {
		got := overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
		if got != tc.want {
			t.Errorf("overlaps(%s-%s, %s-%s) = %v, want %v",
				tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
		}
	}
}

// hornetsPlayer finds a seeded Hornets player by name.
func (f *fixture) hornetsPlayer(t *testing.T, name string) dbgen.Player {
	t.Helper()
	players, err := f.q.ListTeamPlayers(context.Background(), f.hornets.ID)
	if err != nil {
		t.Fatalf("ListTeamPlayers: %v", err)
	}
	for _, p := range players {
		if strings.EqualFold(p.Name, name) {
			return dbgen.Player{ID: p.ID, FamilyID: p.FamilyID, Name: p.Name}
		}
	}
	t.Fatalf("player %s not found", name)
	return dbgen.Player{}
}
