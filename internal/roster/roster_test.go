package roster

import (
	"context"
	"testing"

	"github.com/gmonroe/teambook/internal/api/apiutil"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
	"github.com/gmonroe/teambook/internal/testutil"
)

func createUser(t *testing.T, q *dbgen.Queries, email, role string) dbgen.User {
	t.Helper()
	u, err := q.CreateUser(context.Background(), dbgen.CreateUserParams{
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Name:         email,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u
}

func createFamilyWithPlayers(t *testing.T, q *dbgen.Queries, email string, playerNames ...string) (dbgen.Family, []dbgen.Player) {
	t.Helper()
	ctx := context.Background()
	u := createUser(t, q, email, "family")
	f, err := q.CreateFamily(ctx, dbgen.CreateFamilyParams{UserID: u.ID, Name: email})
	if err != nil {
		t.Fatalf("CreateFamily: %v", err)
	}
	var players []dbgen.Player
	for _, name := range playerNames {
		p, err := q.CreatePlayer(ctx, dbgen.CreatePlayerParams{FamilyID: f.ID, Name: name})
		if err != nil {
			t.Fatalf("CreatePlayer(%s): %v", name, err)
		}
		players = append(players, p)
	}
	return f, players
}

func createCoach(t *testing.T, q *dbgen.Queries, email string) dbgen.Coach {
	t.Helper()
	u := createUser(t, q, email, "coach")
	c, err := q.CreateCoach(context.Background(), dbgen.CreateCoachParams{
		UserID: u.ID,
		Name:   email,
		Phone:  apiutil.NullString(""),
	})
	if err != nil {
		t.Fatalf("CreateCoach: %v", err)
	}
	return c
}

func TestRosterDeduplicatesFamilies(t *testing.T) {
	database := testutil.NewTestDB(t)
	q := database.Queries
	ctx := context.Background()

	team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "U10 Hornets"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}

	// Two siblings from one family plus a player from another.
	fam1, siblings := createFamilyWithPlayers(t, q, "ortiz@example.com", "Mia", "Leo")
	fam2, others := createFamilyWithPlayers(t, q, "chan@example.com", "Sam")

	for _, p := range append(siblings, others...) {
		err := q.AddPlayerToTeam(ctx, dbgen.AddPlayerToTeamParams{PlayerID: p.ID, TeamID: team.ID})
		if err != nil {
			t.Fatalf("AddPlayerToTeam: %v", err)
		}
	}

	r, err := For(ctx, q, team.ID)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if len(r.PlayerIDs) != 3 {
		t.Errorf("len(PlayerIDs) = %d, want 3", len(r.PlayerIDs))
	}
	if len(r.FamilyIDs) != 2 {
		t.Fatalf("len(FamilyIDs) = %d, want 2 (siblings deduplicated)", len(r.FamilyIDs))
	}
	seen := map[int64]bool{r.FamilyIDs[0]: true, r.FamilyIDs[1]: true}
	if !seen[fam1.ID] || !seen[fam2.ID] {
		t.Errorf("FamilyIDs = %v, want both %d and %d", r.FamilyIDs, fam1.ID, fam2.ID)
	}
}

func TestRosterIncludesCoaches(t *testing.T) {
	database := testutil.NewTestDB(t)
	q := database.Queries
	ctx := context.Background()

	team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "U12 Comets"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	coach := createCoach(t, q, "coach.ray@example.com")
	err = q.AssignCoachToTeam(ctx, dbgen.AssignCoachToTeamParams{CoachID: coach.ID, TeamID: team.ID})
	if err != nil {
		t.Fatalf("AssignCoachToTeam: %v", err)
	}

	r, err := For(ctx, q, team.ID)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if len(r.CoachIDs) != 1 || r.CoachIDs[0] != coach.ID {
		t.Errorf("CoachIDs = %v, want [%d]", r.CoachIDs, coach.ID)
	}
}

func TestEmptyTeamRoster(t *testing.T) {
	database := testutil.NewTestDB(t)
	q := database.Queries
	ctx := context.Background()

	team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "Brand New"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}

	r, err := For(ctx, q, team.ID)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if len(r.PlayerIDs) != 0 || len(r.FamilyIDs) != 0 || len(r.CoachIDs) != 0 {
		t.Errorf("expected empty roster, got %+v", r)
	}
}

func TestIndexCachesPerTeam(t *testing.T) {
	database := testutil.NewTestDB(t)
	q := database.Queries
	ctx := context.Background()

	team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "U8 Sparks"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	_, players := createFamilyWithPlayers(t, q, "kim@example.com", "Jo")
	err = q.AddPlayerToTeam(ctx, dbgen.AddPlayerToTeamParams{PlayerID: players[0].ID, TeamID: team.ID})
	if err != nil {
		t.Fatalf("AddPlayerToTeam: %v", err)
	}

	ix := NewIndex(q)
	first, err := ix.Get(ctx, team.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Mutate after the first load; the cached roster must not change.
	err = q.RemovePlayerFromTeam(ctx, dbgen.RemovePlayerFromTeamParams{PlayerID: players[0].ID, TeamID: team.ID})
	if err != nil {
		t.Fatalf("RemovePlayerFromTeam: %v", err)
	}

	second, err := ix.Get(ctx, team.ID)
	if err != nil {
		t.Fatalf("Get (cached): %v", err)
	}
	if len(first.PlayerIDs) != 1 || len(second.PlayerIDs) != 1 {
		t.Errorf("cached roster changed: first %v, second %v", first.PlayerIDs, second.PlayerIDs)
	}
}

func TestSharesAny(t *testing.T) {
	if SharesAny(nil, []int64{1}) {
		t.Error("nil slice should share nothing")
	}
	if SharesAny([]int64{1, 2}, []int64{3, 4}) {
		t.Error("disjoint slices should share nothing")
	}
	if !SharesAny([]int64{1, 2, 3}, []int64{9, 3}) {
		t.Error("expected shared ID 3 to be found")
	}
}
