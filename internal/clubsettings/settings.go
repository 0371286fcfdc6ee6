// Package clubsettings reads the tunable scheduling knobs stored in the
// settings table.
package clubsettings

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	dbgen "github.com/gmonroe/teambook/internal/db/generated"
)

// Setting keys, seeded by the initial migration.
const (
	KeyTravelSameLocation      = "travel_time_same_location"
	KeyTravelDifferentLocation = "travel_time_different_location"
	KeyDefaultGameDuration     = "default_game_duration"
)

// Defaults used when a setting is missing or not a number.
const (
	DefaultTravelSameLocation      = 0
	DefaultTravelDifferentLocation = 90
	DefaultGameDuration            = 90
)

// Provider resolves scheduling settings with sane fallbacks.
type Provider struct {
	q *dbgen.Queries
}

func New(q *dbgen.Queries) *Provider {
	return &Provider{q: q}
}

// TravelMinutes returns the travel buffer in minutes between two games,
// depending on whether they are at the same location.
func (p *Provider) TravelMinutes(ctx context.Context, sameLocation bool) int {
	if sameLocation {
		return p.intSetting(ctx, KeyTravelSameLocation, DefaultTravelSameLocation)
	}
	return p.intSetting(ctx, KeyTravelDifferentLocation, DefaultTravelDifferentLocation)
}

// GameDurationMinutes returns the default game length used when a request
// omits the end time.
func (p *Provider) GameDurationMinutes(ctx context.Context) int {
	return p.intSetting(ctx, KeyDefaultGameDuration, DefaultGameDuration)
}

// intSetting trusts whatever number is stored; only a missing row or a
// non-numeric value falls back to the default. Range checks belong to the
// settings update handler.
func (p *Provider) intSetting(ctx context.Context, key string, fallback int) int {
	value, err := p.q.GetSetting(ctx, key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Ctx(ctx).Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
		return fallback
	}
	return n
}
