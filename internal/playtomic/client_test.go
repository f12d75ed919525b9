package playtomic

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(server *httptest.Server) *APIClient {
	return &APIClient{
		httpClient: server.Client(),
		apiClient:  client.NewClient(),
		BaseURL:    server.URL,
	}
}

func TestGetSpecificMatch(t *testing.T) {
	mockJSONResponse := `{
		"owner_id": "user-123",
		"start_date": "2025-07-09T18:00:00",
		"end_date": "2025-07-09T19:30:00",
		"game_status": "PLAYED",
		"resource_name": "Court 1",
		"tenant": { "tenant_id": "tenant-abc", "tenant_name": "Padel Club" },
		"teams": [
			{
				"team_id": "0",
				"players": [
					{ "user_id": "user-123", "name": "Player A", "level_value": 3.4 },
					{ "user_id": "user-456", "name": "Player B", "level_value": 2.9 }
				]
			},
			{
				"team_id": "1",
				"players": [
					{ "user_id": "user-789", "name": "Player C", "level_value": 3.1 },
					{ "user_id": "user-000", "name": "Player D" }
				]
			}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/matches/match-abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	match, err := newTestClient(server).GetSpecificMatch(context.Background(), "match-abc")

	require.NoError(t, err)
	assert.Equal(t, "match-abc", match.MatchID)
	assert.Equal(t, "user-123", match.OwnerID)
	assert.Equal(t, "Court 1", match.ResourceName)
	assert.Equal(t, "tenant-abc", match.Tenant.ID)
	assert.Equal(t, GameStatusPlayed, match.GameStatus)
	assert.NotZero(t, match.Start, "Start time should be parsed")
	require.Len(t, match.Teams, 2)

	players := match.Players()
	require.Len(t, players, 4)
	assert.Equal(t, "Player A", players[0].Name)
	assert.InDelta(t, 3.4, players[0].Level, 1e-9)
	assert.Zero(t, players[3].Level, "missing level_value defaults to zero")
}

func TestGetSpecificMatch_UnknownStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"start_date":"2025-07-09T18:00:00","end_date":"2025-07-09T19:30:00","game_status":"SOMETHING_NEW"}`)
	}))
	defer server.Close()

	match, err := newTestClient(server).GetSpecificMatch(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, GameStatusUnknown, match.GameStatus)
}

func TestGetSpecificMatch_Errors(t *testing.T) {
	t.Run("non-OK status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newTestClient(server).GetSpecificMatch(context.Background(), "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("bad start date", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, `{"start_date":"yesterday","end_date":"2025-07-09T19:30:00"}`)
		}))
		defer server.Close()

		_, err := newTestClient(server).GetSpecificMatch(context.Background(), "m1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "start time")
	})
}
