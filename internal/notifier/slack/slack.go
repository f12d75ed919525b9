package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/metrics"
	"github.com/mauv0809/padel-matchmaker/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

const displayTimezone = "Europe/Copenhagen"

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token every message is
// logged as a dry run.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	n := &Notifier{
		channelID: channelID,
		metrics:   metrics,
	}
	if token != "" {
		n.api = slack.New(token)
	} else {
		log.Warn("Slack token not configured, notifications will only be logged")
	}
	return n
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendSuggestions(clubName string, suggestions []matchmaking.Suggestion, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatSuggestions(clubName, suggestions, names), dryRun)
	return err
}

func (s *Notifier) SendMatchCreated(match *matchmaking.Match, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchCreated(match, names), dryRun)
	return err
}

func (s *Notifier) SendMatchRequest(request *matchmaking.MatchRequest, names notifier.Names, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchRequest(request, names), dryRun)
	return err
}

// FormatSuggestionsResponse formats the suggestions message without posting it.
func (s *Notifier) FormatSuggestionsResponse(clubName string, suggestions []matchmaking.Suggestion, names notifier.Names) (any, error) {
	return s.formatSuggestions(clubName, suggestions, names), nil
}

// formatSuggestions lists each suggestion as "A & B vs C & D" with its balance.
func (s *Notifier) formatSuggestions(clubName string, suggestions []matchmaking.Suggestion, names notifier.Names) slack.Message {
	blocks := make([]slack.Block, 0, len(suggestions)+1)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎾 Match suggestions for %s 🎾", clubName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(suggestions) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No balanced matches found with the current settings.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, sug := range suggestions {
		text := fmt.Sprintf("%d. %s vs %s\n> Skill %.2f vs %.2f | Balance %.0f (%s)",
			i+1,
			teamLabel(sug.TeamA(), names),
			teamLabel(sug.TeamB(), names),
			sug.TeamASkill,
			sug.TeamBSkill,
			sug.BalanceScore,
			ratingLabel(matchmaking.BalanceRating(sug.BalanceScore)),
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMatchCreated announces a committed match with both teams.
func (s *Notifier) formatMatchCreated(match *matchmaking.Match, names notifier.Names) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 New match created! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Time: %s", formatTime(match.PlayedOn))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("plain_text", "Team 1:\n"+teamLabel(match.TeamA, names), true, false),
		slack.NewTextBlockObject("plain_text", "Team 2:\n"+teamLabel(match.TeamB, names), true, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	var source string
	switch match.Source {
	case matchmaking.SourceSuggestion:
		source = "From an accepted matchmaking suggestion"
	case matchmaking.SourceRequest:
		source = "From a completed match request"
	}
	if source != "" {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", source, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMatchRequest announces a new request and who is invited.
func (s *Notifier) formatMatchRequest(request *matchmaking.MatchRequest, names notifier.Names) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", "🙋 New match request", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	lines := []string{fmt.Sprintf("%s is looking for a match.", names.Name(request.RequestedByID))}
	if request.PreferredDate != nil {
		lines = append(lines, "Preferred time: "+formatTime(*request.PreferredDate))
	}
	if request.Notes != nil && *request.Notes != "" {
		lines = append(lines, "Notes: "+*request.Notes)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	if len(request.Participants) > 0 {
		var invited []string
		for _, p := range request.Participants {
			invited = append(invited, fmt.Sprintf("• %s (%s)", names.Name(p.PlayerID), p.Status))
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Players:\n"+strings.Join(invited, "\n"), true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func teamLabel(ids []string, names notifier.Names) string {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = names.Name(id)
	}
	return strings.Join(labels, " & ")
}

func ratingLabel(r matchmaking.Rating) string {
	switch r {
	case matchmaking.RatingVeryBalanced:
		return "very balanced"
	case matchmaking.RatingBalanced:
		return "balanced"
	default:
		return "unbalanced"
	}
}

func formatTime(t time.Time) string {
	if loc, err := time.LoadLocation(displayTimezone); err == nil {
		t = t.In(loc)
	}
	return t.Format("Monday 02 Jan, 15:04")
}
