package clubsettings

import (
	"context"
	"testing"

	dbgen "github.com/gmonroe/teambook/internal/db/generated"
	"github.com/gmonroe/teambook/internal/testutil"
)

func TestSeededDefaults(t *testing.T) {
	database := testutil.NewTestDB(t)
	p := New(database.Queries)
	ctx := context.Background()

	if got := p.TravelMinutes(ctx, true); got != 0 {
		t.Errorf("TravelMinutes(same) = %d, want 0", got)
	}
	if got := p.TravelMinutes(ctx, false); got != 90 {
		t.Errorf("TravelMinutes(different) = %d, want 90", got)
	}
	if got := p.GameDurationMinutes(ctx); got != 90 {
		t.Errorf("GameDurationMinutes = %d, want 90", got)
	}
}

func TestUpdatedSettingWins(t *testing.T) {
	database := testutil.NewTestDB(t)
	p := New(database.Queries)
	ctx := context.Background()

	err := database.Queries.UpsertSetting(ctx, dbgen.UpsertSettingParams{
		Key:   KeyTravelDifferentLocation,
		Value: "45",
	})
	if err != nil {
		t.Fatalf("UpsertSetting: %v", err)
	}

	if got := p.TravelMinutes(ctx, false); got != 45 {
		t.Errorf("TravelMinutes(different) = %d, want 45", got)
	}
}

func TestGarbageSettingFallsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	p := New(database.Queries)
	ctx := context.Background()

	err := database.Queries.UpsertSetting(ctx, dbgen.UpsertSettingParams{
		Key:   KeyDefaultGameDuration,
		Value: "ninety",
	})
	if err != nil {
		t.Fatalf("UpsertSetting: %v", err)
	}

	if got := p.GameDurationMinutes(ctx); got != DefaultGameDuration {
		t.Errorf("GameDurationMinutes = %d, want fallback %d", got, DefaultGameDuration)
	}
}

func TestStoredNumberTrusted(t *testing.T) {
	database := testutil.NewTestDB(t)
	p := New(database.Queries)
	ctx := context.Background()

	// The provider does not second-guess stored numbers; clamping happens in
	// the update handler.
	err := database.Queries.UpsertSetting(ctx, dbgen.UpsertSettingParams{
		Key:   KeyTravelDifferentLocation,
		Value: "-15",
	})
	if err != nil {
		t.Fatalf("UpsertSetting: %v", err)
	}

	if got := p.TravelMinutes(ctx, false); got != -15 {
		t.Errorf("TravelMinutes(different) = %d, want -15", got)
	}
}

func TestMissingSettingFallsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	if _, err := database.ExecContext(ctx, "DELETE FROM settings"); err != nil {
		t.Fatalf("clear settings: %v", err)
	}

	p := New(database.Queries)
	if got := p.TravelMinutes(ctx, false); got != DefaultTravelDifferentLocation {
		t.Errorf("TravelMinutes(different) = %d, want fallback %d", got, DefaultTravelDifferentLocation)
	}
}
