package games

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gmonroe/teambook/internal/api/authz"
	"github.com/gmonroe/teambook/internal/clubsettings"
	dbgen "github.com/gmonroe/teambook/internal/db/generated"
	"github.com/gmonroe/teambook/internal/schedule"
	"github.com/gmonroe/teambook/internal/testutil"
)

type testEnv struct {
	q     *dbgen.Queries
	admin *authz.AuthUser

	team, otherTeam dbgen.Team
	opponent        dbgen.Opponent
	coachUser       dbgen.User
}

// newTestEnv rebinds the package handlers to a fresh database and seeds two
// teams that share a family, so double-booking them conflicts.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	q := database.Queries
	queries = q
	settings = clubsettings.New(q)
	detector = schedule.NewDetector(q, settings)

	ctx := context.Background()
	env := &testEnv{q: q}

	adminUser, err := q.CreateUser(ctx, dbgen.CreateUserParams{
		Email: "admin@example.com", PasswordHash: "x", Role: "admin", Name: "Admin",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	env.admin = &authz.AuthUser{ID: adminUser.ID, Role: authz.RoleAdmin, Name: "Admin", Email: adminUser.Email}

	env.team, err = q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "Hornets"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	env.otherTeam, err = q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "Sparks"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	env.opponent, err = q.CreateOpponent(ctx, dbgen.CreateOpponentParams{Name: "Visiting FC"})
	if err != nil {
		t.Fatalf("CreateOpponent: %v", err)
	}

	famUser, err := q.CreateUser(ctx, dbgen.CreateUserParams{
		Email: "ortiz@example.com", PasswordHash: "x", Role: "family", Name: "Ortiz",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	fam, err := q.CreateFamily(ctx, dbgen.CreateFamilyParams{UserID: famUser.ID, Name: "Ortiz"})
	if err != nil {
		t.Fatalf("CreateFamily: %v", err)
	}
	for i, teamID := range []int64{env.team.ID, env.otherTeam.ID} {
		p, err := q.CreatePlayer(ctx, dbgen.CreatePlayerParams{FamilyID: fam.ID, Name: fmt.Sprintf("Kid %d", i)})
		if err != nil {
			t.Fatalf("CreatePlayer: %v", err)
		}
		err = q.AddPlayerToTeam(ctx, dbgen.AddPlayerToTeamParams{PlayerID: p.ID, TeamID: teamID})
		if err != nil {
			t.Fatalf("AddPlayerToTeam: %v", err)
		}
	}

	env.coachUser, err = q.CreateUser(ctx, dbgen.CreateUserParams{
		Email: "coach@example.com", PasswordHash: "x", Role: "coach", Name: "Coach",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	coach, err := q.CreateCoach(ctx, dbgen.CreateCoachParams{UserID: env.coachUser.ID, Name: "Coach"})
	if err != nil {
		t.Fatalf("CreateCoach: %v", err)
	}
	err = q.AssignCoachToTeam(ctx, dbgen.AssignCoachToTeamParams{CoachID: coach.ID, TeamID: env.team.ID})
	if err != nil {
		t.Fatalf("AssignCoachToTeam: %v", err)
	}

	return env
}

func (env *testEnv) request(method, target, body string, user *authz.AuthUser) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if user != nil {
		r = r.WithContext(authz.ContextWithUser(r.Context(), user))
	}
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return body
}

func (env *testEnv) grantCoachGames(t *testing.T) *authz.AuthUser {
	t.Helper()
	for _, action := range []dbgen.UpsertUserPermissionParams{
		{UserID: env.coachUser.ID, Resource: "games", CanView: 1, CanCreate: 1, CanEdit: 1, CanDelete: 1},
	} {
		if err := env.q.UpsertUserPermission(context.Background(), action); err != nil {
			t.Fatalf("UpsertUserPermission: %v", err)
		}
	}
	return &authz.AuthUser{ID: env.coachUser.ID, Role: authz.RoleCoach, Name: "Coach", Email: env.coachUser.Email}
}

func TestCreateGameReturnsAdvisoryConflicts(t *testing.T) {
	env := newTestEnv(t)

	first := fmt.Sprintf(`{"team_id":%d,"opponent_id":%d,"game_date":"2026-04-11","start_time":"10:00","end_time":"11:30"}`,
		env.team.ID, env.opponent.ID)
	rec := httptest.NewRecorder()
	HandleCreate(rec, env.request(http.MethodPost, "/api/v1/games", first, env.admin))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: status %d, body %s", rec.Code, rec.Body.String())
	}
	if conflicts := decodeBody(t, rec)["conflicts"].([]any); len(conflicts) != 0 {
		t.Fatalf("first game should have no conflicts, got %v", conflicts)
	}

	// Second game overlaps and the teams share a family. It still saves.
	second := fmt.Sprintf(`{"team_id":%d,"opponent_id":%d,"game_date":"2026-04-11","start_time":"11:00","end_time":"12:30"}`,
		env.otherTeam.ID, env.opponent.ID)
	rec = httptest.NewRecorder()
	HandleCreate(rec, env.request(http.MethodPost, "/api/v1/games", second, env.admin))
	if rec.Code != http.StatusCreated {
		t.Fatalf("second create: status %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	conflicts := body["conflicts"].([]any)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 advisory conflict, got %v", conflicts)
	}
	c := conflicts[0].(map[string]any)
	if c["type"] != "Family" {
		t.Errorf("type = %v, want Family", c["type"])
	}
	game, ok := c["game"].(map[string]any)
	if !ok {
		t.Fatalf("conflict entry must nest the colliding game, got %v", c)
	}
	if game["start_time"] != "10:00" {
		t.Errorf("game.start_time = %v, want 10:00", game["start_time"])
	}

	games, err := env.q.ListGamesExport(context.Background())
	if err != nil {
		t.Fatalf("ListGamesExport: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("conflicting game must still be saved, found %d games", len(games))
	}
}

func TestCreateGameDefaultsEndTime(t *testing.T) {
	env := newTestEnv(t)

	body := fmt.Sprintf(`{"team_id":%d,"opponent_id":%d,"game_date":"2026-04-11","start_time":"10:00"}`,
		env.team.ID, env.opponent.ID)
	rec := httptest.NewRecorder()
	HandleCreate(rec, env.request(http.MethodPost, "/api/v1/games", body, env.admin))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	game := decodeBody(t, rec)["game"].(map[string]any)
	// Seeded default duration is 90 minutes.
	if game["end_time"] != "11:30" {
		t.Errorf("end_time = %v, want 11:30", game["end_time"])
	}
}

func TestUpdateGameExcludesItself(t *testing.T) {
	env := newTestEnv(t)

	game, err := env.q.CreateGame(context.Background(), dbgen.CreateGameParams{
		TeamID: env.team.ID, OpponentID: env.opponent.ID,
		GameDate: "2026-04-11", StartTime: "10:00", EndTime: "11:30",
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	// Shift by 15 minutes within the same window. Only the row itself
	// overlaps, and it is excluded.
	req := env.request(http.MethodPut, fmt.Sprintf("/api/v1/games/%d", game.ID),
		`{"start_time":"10:15","end_time":"11:45"}`, env.admin)
	req.SetPathValue("id", fmt.Sprintf("%d", game.ID))
	rec := httptest.NewRecorder()
	HandleUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if conflicts := body["conflicts"].([]any); len(conflicts) != 0 {
		t.Fatalf("update must not conflict with itself, got %v", conflicts)
	}
	updated := body["game"].(map[string]any)
	if updated["start_time"] != "10:15" {
		t.Errorf("start_time = %v, want 10:15", updated["start_time"])
	}
	// Omitted fields keep their stored values.
	if updated["game_date"] != "2026-04-11" {
		t.Errorf("game_date = %v, want 2026-04-11", updated["game_date"])
	}
}

func TestConflictsPreviewIsReadOnly(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.q.CreateGame(context.Background(), dbgen.CreateGameParams{
		TeamID: env.team.ID, OpponentID: env.opponent.ID,
		GameDate: "2026-04-11", StartTime: "10:00", EndTime: "11:30",
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	target := fmt.Sprintf("/api/v1/games/conflicts?team_id=%d&game_date=2026-04-11&start_time=10:30&end_time=12:00", env.otherTeam.ID)
	rec := httptest.NewRecorder()
	HandleConflicts(rec, env.request(http.MethodGet, target, "", env.admin))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	conflicts := decodeBody(t, rec)["conflicts"].([]any)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %v", conflicts)
	}
	c := conflicts[0].(map[string]any)
	for _, key := range []string{"game", "type", "reason"} {
		if _, ok := c[key]; !ok {
			t.Errorf("conflict entry missing %q: %v", key, c)
		}
	}

	games, err := env.q.ListGamesExport(context.Background())
	if err != nil {
		t.Fatalf("ListGamesExport: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("preview must not create games, found %d", len(games))
	}
}

func TestConflictsPreviewQueryParams(t *testing.T) {
	env := newTestEnv(t)

	game, err := env.q.CreateGame(context.Background(), dbgen.CreateGameParams{
		TeamID: env.team.ID, OpponentID: env.opponent.ID,
		GameDate: "2026-04-11", StartTime: "10:00", EndTime: "11:30",
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	// The full parameter set, including the exclusion of the game's own row.
	target := fmt.Sprintf(
		"/api/v1/games/conflicts?team_id=%d&game_date=2026-04-11&start_time=10:00&end_time=11:30&location=Main+Field&exclude_game_id=%d",
		env.team.ID, game.ID)
	rec := httptest.NewRecorder()
	HandleConflicts(rec, env.request(http.MethodGet, target, "", env.admin))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	if conflicts := decodeBody(t, rec)["conflicts"].([]any); len(conflicts) != 0 {
		t.Fatalf("excluded game must not conflict with itself, got %v", conflicts)
	}

	// A missing or malformed date is rejected by name.
	rec = httptest.NewRecorder()
	HandleConflicts(rec, env.request(http.MethodGet,
		fmt.Sprintf("/api/v1/games/conflicts?team_id=%d&start_time=10:00", env.team.ID), "", env.admin))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing game_date: status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "game_date") {
		t.Errorf("error should name game_date: %s", rec.Body.String())
	}
}

func TestCreateGameRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	body := fmt.Sprintf(`{"team_id":%d,"opponent_id":%d,"game_date":"2026-04-11","start_time":"10:00"}`,
		env.team.ID, env.opponent.ID)
	rec := httptest.NewRecorder()
	HandleCreate(rec, env.request(http.MethodPost, "/api/v1/games", body, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestPendingUserBlocked(t *testing.T) {
	env := newTestEnv(t)

	pendingUser, err := env.q.CreateUser(context.Background(), dbgen.CreateUserParams{
		Email: "new@example.com", PasswordHash: "x", Role: "pending", Name: "New",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	pending := &authz.AuthUser{ID: pendingUser.ID, Role: authz.RolePending}

	rec := httptest.NewRecorder()
	HandleList(rec, env.request(http.MethodGet, "/api/v1/games", "", pending))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rec.Code)
	}
}

func TestCoachLimitedToOwnTeams(t *testing.T) {
	env := newTestEnv(t)
	coach := env.grantCoachGames(t)

	// The coach's own team works.
	own := fmt.Sprintf(`{"team_id":%d,"opponent_id":%d,"game_date":"2026-04-11","start_time":"10:00"}`,
		env.team.ID, env.opponent.ID)
	rec := httptest.NewRecorder()
	HandleCreate(rec, env.request(http.MethodPost, "/api/v1/games", own, coach))
	if rec.Code != http.StatusCreated {
		t.Fatalf("own team: status %d, body %s", rec.Code, rec.Body.String())
	}

	// A team the coach does not own is refused even with the permission.
	other := fmt.Sprintf(`{"team_id":%d,"opponent_id":%d,"game_date":"2026-04-11","start_time":"14:00"}`,
		env.otherTeam.ID, env.opponent.ID)
	rec = httptest.NewRecorder()
	HandleCreate(rec, env.request(http.MethodPost, "/api/v1/games", other, coach))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("other team: status %d, want 403 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestCreateGameValidatesInput(t *testing.T) {
	env := newTestEnv(t)

	cases := []string{
		`{"opponent_id":1,"game_date":"2026-04-11","start_time":"10:00"}`,
		fmt.Sprintf(`{"team_id":%d,"opponent_id":%d,"game_date":"04/11/2026","start_time":"10:00"}`, env.team.ID, env.opponent.ID),
		fmt.Sprintf(`{"team_id":%d,"opponent_id":%d,"game_date":"2026-04-11","start_time":"10am"}`, env.team.ID, env.opponent.ID),
		fmt.Sprintf(`{"team_id":%d,"opponent_id":%d,"game_date":"2026-04-11","start_time":"10:00","end_time":"25:00"}`, env.team.ID, env.opponent.ID),
	}
	for i, body := range cases {
		rec := httptest.NewRecorder()
		HandleCreate(rec, env.request(http.MethodPost, "/api/v1/games", body, env.admin))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: status %d, want 400 (body %s)", i, rec.Code, rec.Body.String())
		}
	}
}
