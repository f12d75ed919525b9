package club_test

import (
	"database/sql"
	"testing"

	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return club.New(db), db, teardown
}

func seedClub(t *testing.T, store club.ClubStore) {
	t.Helper()
	require.NoError(t, store.UpsertClub(club.Club{ID: "club1", Name: "Test Club"}))
}

func TestUpsertAndGetClub(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	seedClub(t, store)
	require.NoError(t, store.UpsertClub(club.Club{ID: "club1", Name: "Renamed", PlaytomicTenantID: "tenant"}))

	c, err := store.GetClub("club1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", c.Name)
	assert.Equal(t, "tenant", c.PlaytomicTenantID)

	clubs, err := store.GetClubs()
	require.NoError(t, err)
	assert.Len(t, clubs, 1)

	_, err = store.GetClub("missing")
	assert.ErrorIs(t, err, club.ErrClubNotFound)
}

func TestUpsertAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	seedClub(t, store)

	err := store.UpsertPlayers([]club.PlayerRating{
		{ID: "p1", ClubID: "club1", Name: "Player One", Skill: 3.0, MatchesPlayed: 12, PreferredSide: club.SideLeft},
		{ID: "p2", ClubID: "club1", Name: "Player Two", Skill: 5.0, MatchesPlayed: 2},
		{ID: "p3", ClubID: "club1", Name: "Player Three", Skill: 5.0, MatchesPlayed: 20, Gender: club.GenderFemale},
	})
	require.NoError(t, err)

	players, err := store.GetPlayers("club1")
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, []string{"p2", "p3", "p1"}, []string{players[0].ID, players[1].ID, players[2].ID})
	assert.Equal(t, club.SideNone, players[0].PreferredSide)

	p, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, club.SideLeft, p.PreferredSide)
	assert.Nil(t, p.PlaytomicID)

	_, err = store.GetPlayer("missing")
	assert.ErrorIs(t, err, club.ErrPlayerNotFound)
}

func TestListEligible(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	seedClub(t, store)
	require.NoError(t, store.UpsertClub(club.Club{ID: "club2", Name: "Other Club"}))

	err := store.UpsertPlayers([]club.PlayerRating{
		{ID: "p1", ClubID: "club1", Skill: 3.0, MatchesPlayed: 10},
		{ID: "p2", ClubID: "club1", Skill: 4.0, MatchesPlayed: 9},
		{ID: "p3", ClubID: "club1", Skill: 6.0, MatchesPlayed: 11},
		{ID: "p4", ClubID: "club2", Skill: 7.0, MatchesPlayed: 50},
	})
	require.NoError(t, err)

	eligible, err := store.ListEligible("club1", 10)
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	assert.Equal(t, "p3", eligible[0].ID)
	assert.Equal(t, "p1", eligible[1].ID)

	all, err := store.ListEligible("club1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestApplySyncedMatch(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedClub(t, store)

	known := "pt-1"
	require.NoError(t, store.UpsertPlayers([]club.PlayerRating{
		{ID: "p1", ClubID: "club1", Name: "Known", Skill: 2.0, MatchesPlayed: 4, PlaytomicID: &known},
	}))

	players := []club.SyncedPlayer{
		{PlaytomicID: "pt-1", Name: "Known Renamed", Level: 2.5},
		{PlaytomicID: "pt-2", Name: "Newcomer", Level: 1.5},
	}
	applied, err := store.ApplySyncedMatch("club1", "m1", players)
	require.NoError(t, err)
	assert.True(t, applied)

	p, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.MatchesPlayed)
	assert.Equal(t, 2.5, p.Skill)
	assert.Equal(t, "Known Renamed", p.Name)

	var count int
	require.NoError(t, db.QueryRow(`SELECT matches_played FROM players WHERE playtomic_id = 'pt-2'`).Scan(&count))
	assert.Equal(t, 1, count)

	applied, err = store.ApplySyncedMatch("club1", "m1", players)
	require.NoError(t, err)
	assert.False(t, applied)

	p, err = store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.MatchesPlayed)
}
