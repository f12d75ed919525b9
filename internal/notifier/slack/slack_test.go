package slack

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/metrics"
	"github.com/mauv0809/padel-matchmaker/internal/notifier"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

var testNames = notifier.Names{"a": "Ana", "b": "Ben", "c": "Cleo", "d": "Dan"}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_NoTokenLogsOnly(t *testing.T) {
	metrics := metrics.NewMock()
	notifier := NewNotifier("", "C123", metrics)

	err := notifier.SendMatchCreated(&matchmaking.Match{TeamA: []string{"a", "b"}, TeamB: []string{"c", "d"}}, testNames, false)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendSuggestions("Club", nil, testNames, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatSuggestions(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	suggestions := []matchmaking.Suggestion{
		{PlayerIDs: [4]string{"a", "b", "c", "d"}, TeamASkill: 15.5, TeamBSkill: 16.2, BalanceScore: 86},
		{PlayerIDs: [4]string{"a", "c", "b", "x"}, TeamASkill: 15, TeamBSkill: 15.05, BalanceScore: 99},
	}

	msg := client.formatSuggestions("Padel Club", suggestions, testNames)
	require.Len(t, msg.Blocks.BlockSet, 3)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Padel Club")

	first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(first.Text.Text, "1. Ana & Ben vs Cleo & Dan"))
	assert.Contains(t, first.Text.Text, "Balance 86 (balanced)")

	second := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	assert.Contains(t, second.Text.Text, "Ben & x")
	assert.Contains(t, second.Text.Text, "(very balanced)")
}

func TestFormatSuggestions_Empty(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatSuggestions("Padel Club", nil, testNames)
	require.Len(t, msg.Blocks.BlockSet, 2)
	section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Contains(t, section.Text.Text, "No balanced matches")
}

func TestFormatMatchCreated(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	match := &matchmaking.Match{
		ID:       "m1",
		PlayedOn: time.Date(2025, 7, 9, 20, 0, 0, 0, time.UTC),
		TeamA:    []string{"a", "b"},
		TeamB:    []string{"c", "d"},
		Source:   matchmaking.SourceRequest,
	}

	msg := client.formatMatchCreated(match, testNames)
	require.Len(t, msg.Blocks.BlockSet, 4)

	teams, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.Len(t, teams.Fields, 2)
	assert.Equal(t, "Team 1:\nAna & Ben", teams.Fields[0].Text)
	assert.Equal(t, "Team 2:\nCleo & Dan", teams.Fields[1].Text)

	context, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok)
	require.Len(t, context.ContextElements.Elements, 1)
	text := context.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	assert.Equal(t, "From a completed match request", text.Text)
}

func TestFormatMatchRequest(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	notes := "after work"
	request := &matchmaking.MatchRequest{
		RequestedByID: "a",
		Notes:         &notes,
		Participants: []matchmaking.Participant{
			{PlayerID: "b", Status: matchmaking.ParticipantInvited},
			{PlayerID: "c", Status: matchmaking.ParticipantConfirmed},
		},
	}

	msg := client.formatMatchRequest(request, testNames)
	require.Len(t, msg.Blocks.BlockSet, 3)

	details := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Contains(t, details.Text.Text, "Ana is looking for a match.")
	assert.Contains(t, details.Text.Text, "Notes: after work")

	players := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	assert.Contains(t, players.Text.Text, "• Ben (invited)")
	assert.Contains(t, players.Text.Text, "• Cleo (confirmed)")
}
