// Package roster resolves who is committed to a team: its players, the
// families those players belong to, and its coaches.
package roster

import (
	"context"

	dbgen "github.com/gmonroe/teambook/internal/db/generated"
)

// Roster holds the people attached to one team. FamilyIDs is deduplicated;
// siblings on the same team contribute their family once.
type Roster struct {
	PlayerIDs []int64
	FamilyIDs []int64
	CoachIDs  []int64
}

// For loads the roster for a team. A team with no players or coaches yields
// an empty roster, not an error.
func For(ctx context.Context, q *dbgen.Queries, teamID int64) (Roster, error) {
	players, err := q.ListTeamRosterPlayers(ctx, teamID)
	if err != nil {
		return Roster{}, err
	}

	var r Roster
	seenFamilies := make(map[int64]bool)
	for _, p := range players {
		r.PlayerIDs = append(r.PlayerIDs, p.ID)
		if !seenFamilies[p.FamilyID] {
			seenFamilies[p.FamilyID] = true
			r.FamilyIDs = append(r.FamilyIDs, p.FamilyID)
		}
	}

	r.CoachIDs, err = q.ListTeamCoachIDs(ctx, teamID)
	if err != nil {
		return Roster{}, err
	}
	return r, nil
}

// Index caches rosters by team so a scan over many games hits the database
// once per team.
type Index struct {
	q      *dbgen.Queries
	byTeam map[int64]Roster
}

func NewIndex(q *dbgen.Queries) *Index {
	return &Index{q: q, byTeam: make(map[int64]Roster)}
}

// Put stores an already loaded roster in the cache.
func (ix *Index) Put(teamID int64, r Roster) {
	ix.byTeam[teamID] = r
}

// Get returns the roster for teamID, loading and caching it on first use.
func (ix *Index) Get(ctx context.Context, teamID int64) (Roster, error) {
	if r, ok := ix.byTeam[teamID]; ok {
		return r, nil
	}
	r, err := For(ctx, ix.q, teamID)
	if err != nil {
		return Roster{}, err
	}
	ix.byTeam[teamID] = r
	return r, nil
}

// SharesAny reports whether the two slices have a common ID.
func SharesAny(a, b []int64) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[int64]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if set[id] {
			return true
		}
	}
	return false
}
