package ratings

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/database"
	"github.com/mauv0809/padel-matchmaker/internal/metrics"
	"github.com/mauv0809/padel-matchmaker/internal/playtomic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doublesMatch(id string, status playtomic.GameStatus, prefix string) playtomic.PadelMatch {
	return playtomic.PadelMatch{
		MatchID:    id,
		GameStatus: status,
		Teams: []playtomic.Team{
			{ID: "0", Players: []playtomic.Player{
				{UserID: prefix + "1", Name: "Player 1", Level: 3.0},
				{UserID: prefix + "2", Name: "Player 2", Level: 2.5},
			}},
			{ID: "1", Players: []playtomic.Player{
				{UserID: prefix + "3", Name: "Player 3", Level: 2.8},
				{UserID: prefix + "4", Name: "Player 4", Level: 2.2},
			}},
		},
	}
}

func TestSync(t *testing.T) {
	t.Run("applies played doubles matches of linked clubs only", func(t *testing.T) {
		store := club.NewMock()
		store.GetClubsFunc = func() ([]club.Club, error) {
			return []club.Club{
				{ID: "club1", PlaytomicTenantID: "tenant-1"},
				{ID: "club2"},
			}, nil
		}
		client := playtomic.NewMockClient()
		client.GetMatchesFunc = func(params *playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
			return []playtomic.MatchSummary{{MatchID: "m1"}, {MatchID: "m2"}, {MatchID: "m3"}}, nil
		}
		client.GetSpecificMatchFunc = func(matchID string) (playtomic.PadelMatch, error) {
			switch matchID {
			case "m1":
				return doublesMatch("m1", playtomic.GameStatusPlayed, "u"), nil
			case "m2":
				return doublesMatch("m2", playtomic.GameStatusPending, "u"), nil
			default:
				m := doublesMatch("m3", playtomic.GameStatusPlayed, "u")
				m.Teams = m.Teams[:1]
				return m, nil
			}
		}
		m := metrics.NewMock()
		ms := metrics.NewMockStore()

		result, err := New(store, client, m, ms).Sync(context.Background(), SyncOptions{Days: 3})
		require.NoError(t, err)

		assert.Equal(t, Result{Clubs: 1, MatchesSeen: 3, MatchesPlayed: 2, MatchesApplied: 1, Skipped: 1}, result)
		require.Len(t, client.GetMatchesCalls, 1)
		assert.Equal(t, []string{"tenant-1"}, client.GetMatchesCalls[0].TenantIDs)
		assert.Equal(t, "PADEL", client.GetMatchesCalls[0].SportID)

		require.Len(t, store.ApplySyncedMatchCalls, 1)
		call := store.ApplySyncedMatchCalls[0]
		assert.Equal(t, "club1", call.ClubID)
		assert.Equal(t, "m1", call.MatchID)
		require.Len(t, call.Players, 4)
		assert.Equal(t, club.SyncedPlayer{PlaytomicID: "u1", Name: "Player 1", Level: 3.0}, call.Players[0])

		assert.Equal(t, 1, m.RatingSyncRuns())
		assert.Equal(t, 1, m.MatchesSynced())
		counters, _ := ms.GetAll()
		assert.Equal(t, 1, counters[metrics.KeyRatingSyncRuns])
		assert.Equal(t, 1, counters[metrics.KeyMatchesSynced])
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		store := club.NewMock()
		store.GetClubsFunc = func() ([]club.Club, error) {
			return []club.Club{{ID: "club1", PlaytomicTenantID: "tenant-1"}}, nil
		}
		client := playtomic.NewMockClient()
		client.GetMatchesFunc = func(*playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
			return []playtomic.MatchSummary{{MatchID: "m1"}}, nil
		}
		client.GetSpecificMatchFunc = func(id string) (playtomic.PadelMatch, error) {
			return doublesMatch(id, playtomic.GameStatusPlayed, "u"), nil
		}
		m := metrics.NewMock()

		result, err := New(store, client, m, metrics.NewMockStore()).Sync(context.Background(), SyncOptions{DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, 1, result.MatchesPlayed)
		assert.Zero(t, result.MatchesApplied)
		assert.Empty(t, store.ApplySyncedMatchCalls)
		assert.Zero(t, m.MatchesSynced())
	})

	t.Run("club filter and detail errors", func(t *testing.T) {
		store := club.NewMock()
		store.GetClubsFunc = func() ([]club.Club, error) {
			return []club.Club{
				{ID: "club1", PlaytomicTenantID: "tenant-1"},
				{ID: "club2", PlaytomicTenantID: "tenant-2"},
			}, nil
		}
		client := playtomic.NewMockClient()
		client.GetMatchesFunc = func(*playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
			return []playtomic.MatchSummary{{MatchID: "broken"}}, nil
		}
		client.GetSpecificMatchFunc = func(string) (playtomic.PadelMatch, error) {
			return playtomic.PadelMatch{}, errors.New("boom")
		}

		result, err := New(store, client, metrics.NewMock(), metrics.NewMockStore()).Sync(context.Background(), SyncOptions{ClubID: "club2"})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Clubs)
		assert.Equal(t, []string{"tenant-2"}, client.GetMatchesCalls[0].TenantIDs)
		assert.Zero(t, result.MatchesPlayed)
	})

	t.Run("search failure is returned", func(t *testing.T) {
		store := club.NewMock()
		store.GetClubsFunc = func() ([]club.Club, error) {
			return []club.Club{{ID: "club1", PlaytomicTenantID: "tenant-1"}}, nil
		}
		client := playtomic.NewMockClient()
		client.GetMatchesFunc = func(*playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
			return nil, errors.New("unavailable")
		}

		_, err := New(store, client, metrics.NewMock(), metrics.NewMockStore()).Sync(context.Background(), SyncOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "club1")
	})
}

func TestSync_AgainstStoreIsIdempotent(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	store := club.New(db)
	require.NoError(t, store.UpsertClub(club.Club{ID: "club1", Name: "Club", PlaytomicTenantID: "tenant-1"}))

	client := playtomic.NewMockClient()
	client.GetMatchesFunc = func(*playtomic.SearchMatchesParams) ([]playtomic.MatchSummary, error) {
		var out []playtomic.MatchSummary
		for i := 0; i < 3; i++ {
			out = append(out, playtomic.MatchSummary{MatchID: fmt.Sprintf("m%d", i)})
		}
		return out, nil
	}
	client.GetSpecificMatchFunc = func(id string) (playtomic.PadelMatch, error) {
		return doublesMatch(id, playtomic.GameStatusPlayed, "pt-"), nil
	}
	syncer := New(store, client, metrics.NewMock(), metrics.New(db))

	first, err := syncer.Sync(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, first.MatchesApplied)

	second, err := syncer.Sync(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Zero(t, second.MatchesApplied)
	assert.Equal(t, 3, second.Skipped)

	players, err := store.GetPlayers("club1")
	require.NoError(t, err)
	require.Len(t, players, 4)
	for _, p := range players {
		assert.Equal(t, 3, p.MatchesPlayed, "player %s", p.Name)
	}
	assert.Equal(t, "Player 1", players[0].Name, "strongest first")
}
