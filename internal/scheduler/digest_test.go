package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	dbgen "github.com/gmonroe/teambook/internal/db/generated"
	"github.com/gmonroe/teambook/internal/testutil"
)

type sentEmail struct {
	recipient, subject, body string
}

type fakeSender struct {
	sent []sentEmail
}

func (f *fakeSender) Send(_ context.Context, recipient, subject, body string) error {
	f.sent = append(f.sent, sentEmail{recipient, subject, body})
	return nil
}

func TestSendScheduleDigests(t *testing.T) {
	database := testutil.NewTestDB(t)
	q := database.Queries
	ctx := context.Background()

	team, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "Hornets"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	idle, err := q.CreateTeam(ctx, dbgen.CreateTeamParams{Name: "Sparks"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	opponent, err := q.CreateOpponent(ctx, dbgen.CreateOpponentParams{Name: "Visiting FC"})
	if err != nil {
		t.Fatalf("CreateOpponent: %v", err)
	}

	coachUser, err := q.CreateUser(ctx, dbgen.CreateUserParams{
		Email: "ray@example.com", PasswordHash: "x", Role: "coach", Name: "Ray",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	coach, err := q.CreateCoach(ctx, dbgen.CreateCoachParams{UserID: coachUser.ID, Name: "Ray"})
	if err != nil {
		t.Fatalf("CreateCoach: %v", err)
	}
	for _, teamID := range []int64{team.ID, idle.ID} {
		err := q.AssignCoachToTeam(ctx, dbgen.AssignCoachToTeamParams{CoachID: coach.ID, TeamID: teamID})
		if err != nil {
			t.Fatalf("AssignCoachToTeam: %v", err)
		}
	}

	now := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	schedule := []struct {
		date string
	}{
		{"2026-04-11"}, // inside the window
		{"2026-04-16"}, // last day inside
		{"2026-04-17"}, // first day outside
		{"2026-04-09"}, // already played
	}
	for _, s := range schedule {
		_, err := q.CreateGame(ctx, dbgen.CreateGameParams{
			TeamID: team.ID, OpponentID: opponent.ID,
			GameDate: s.date, StartTime: "10:00", EndTime: "11:30",
		})
		if err != nil {
			t.Fatalf("CreateGame %s: %v", s.date, err)
		}
	}

	sender := &fakeSender{}
	if err := SendScheduleDigests(ctx, q, sender, now); err != nil {
		t.Fatalf("SendScheduleDigests: %v", err)
	}

	// One email per coach per team with upcoming games. Sparks has no games,
	// so Ray gets exactly one email.
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1: %+v", len(sender.sent), sender.sent)
	}
	msg := sender.sent[0]
	if msg.recipient != "ray@example.com" {
		t.Errorf("recipient = %q", msg.recipient)
	}
	if !strings.Contains(msg.subject, "Hornets") {
		t.Errorf("subject = %q", msg.subject)
	}
	for _, want := range []string{"2026-04-11", "2026-04-16"} {
		if !strings.Contains(msg.body, want) {
			t.Errorf("body missing %s:\n%s", want, msg.body)
		}
	}
	for _, reject := range []string{"2026-04-17", "2026-04-09"} {
		if strings.Contains(msg.body, reject) {
			t.Errorf("body should not include %s:\n%s", reject, msg.body)
		}
	}
}
