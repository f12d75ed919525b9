package inngest

import (
	"context"
	"testing"

	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenerateRequest(t *testing.T) {
	req, err := parseGenerateRequest(map[string]any{"club_id": "club1", "limit": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, "club1", req.ClubID)
	require.NotNil(t, req.Limit)
	assert.Equal(t, 3, *req.Limit)

	req, err = parseGenerateRequest(map[string]any{"club_id": "club1"})
	require.NoError(t, err)
	assert.Nil(t, req.Limit)

	_, err = parseGenerateRequest(map[string]any{})
	assert.ErrorIs(t, err, matchmaking.ErrInvalidArgument)
}

func TestParseSyncOptions(t *testing.T) {
	opts := parseSyncOptions(map[string]any{"club_id": "club1", "days": float64(14), "dry_run": true})
	assert.Equal(t, "club1", opts.ClubID)
	assert.Equal(t, 14, opts.Days)
	assert.True(t, opts.DryRun)

	assert.Zero(t, parseSyncOptions(nil).Days)
}

func TestWorkflowGenerateAndPublish(t *testing.T) {
	mm := matchmaking.NewMock()
	mm.GenerateSuggestionsFunc = func(ctx context.Context, params matchmaking.GenerateParams) ([]matchmaking.Suggestion, error) {
		return []matchmaking.Suggestion{{ID: "s1"}, {ID: "s2"}}, nil
	}
	ps := pubsub.NewMock()
	w := &workflows{matchmaking: mm, pubsub: ps}

	limit := 2
	result, err := w.generate(context.Background(), GenerateRequest{ClubID: "club1", Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, result.SuggestionIDs)
	require.Len(t, mm.GenerateSuggestionsCalls, 1)
	assert.Equal(t, &limit, mm.GenerateSuggestionsCalls[0].Limit)

	require.NoError(t, w.publish(context.Background(), result))
	require.Len(t, ps.SendMessageCalls, 1)
	assert.Equal(t, pubsub.EventSuggestionsGenerated, ps.SendMessageCalls[0].Topic)

	require.NoError(t, w.publish(context.Background(), GenerateResult{ClubID: "club1"}))
	assert.Len(t, ps.SendMessageCalls, 1, "empty runs are not published")
}

func TestWorkflowGenerateError(t *testing.T) {
	mm := matchmaking.NewMock()
	mm.GenerateSuggestionsFunc = func(ctx context.Context, params matchmaking.GenerateParams) ([]matchmaking.Suggestion, error) {
		return nil, matchmaking.ErrInsufficientPlayers
	}
	w := &workflows{matchmaking: mm, pubsub: pubsub.NewMock()}

	_, err := w.generate(context.Background(), GenerateRequest{ClubID: "club1"})
	assert.ErrorIs(t, err, matchmaking.ErrInsufficientPlayers)
}
