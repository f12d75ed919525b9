package inngest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/pubsub"
	"github.com/mauv0809/padel-matchmaker/internal/ratings"
)

// New registers the matchmaking workflows on inngestClient.
func New(inngestClient inngestgo.Client, mm matchmaking.MatchmakingService, syncer ratings.RatingSyncer, ps pubsub.PubSubClient) (InngestClient, error) {
	c := &client{
		inngestClient: inngestClient,
		workflows:     &workflows{matchmaking: mm, syncer: syncer, pubsub: ps},
	}
	if _, err := c.createGenerateSuggestionsFunction(); err != nil {
		return nil, fmt.Errorf("failed to create generate-suggestions function: %w", err)
	}
	if _, err := c.createRatingSyncFunction(); err != nil {
		return nil, fmt.Errorf("failed to create rating-sync function: %w", err)
	}
	return c, nil
}

func (i *client) createGenerateSuggestionsFunction() (inngestgo.ServableFunction, error) {
	return inngestgo.CreateFunction(
		i.inngestClient,
		inngestgo.FunctionOpts{
			ID:   "generate-suggestions",
			Name: "Generate match suggestions",
		},
		inngestgo.EventTrigger(EventSuggestionsRequested, nil),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			req, err := parseGenerateRequest(input.Event.Data)
			if err != nil {
				return nil, inngestgo.NoRetryError(err)
			}

			result, err := step.Run(ctx, "generate", func(ctx context.Context) (GenerateResult, error) {
				return i.workflows.generate(ctx, req)
			})
			if err != nil {
				return nil, err
			}

			_, err = step.Run(ctx, "publish", func(ctx context.Context) (string, error) {
				return "OK", i.workflows.publish(ctx, result)
			})
			if err != nil {
				return nil, err
			}
			return result, nil
		},
	)
}

func (i *client) createRatingSyncFunction() (inngestgo.ServableFunction, error) {
	return inngestgo.CreateFunction(
		i.inngestClient,
		inngestgo.FunctionOpts{
			ID:   "rating-sync",
			Name: "Sync player ratings from Playtomic",
		},
		inngestgo.EventTrigger(EventRatingSyncRequested, nil),
		func(ctx context.Context, input inngestgo.Input[map[string]any]) (any, error) {
			opts := parseSyncOptions(input.Event.Data)
			return step.Run(ctx, "sync", func(ctx context.Context) (ratings.Result, error) {
				return i.workflows.syncer.Sync(ctx, opts)
			})
		},
	)
}

func (i *client) Serve() http.Handler {
	return i.inngestClient.Serve()
}

func (i *client) SendEvent(ctx context.Context, name string, data map[string]any) error {
	id, err := i.inngestClient.Send(ctx, inngestgo.Event{Name: name, Data: data})
	if err != nil {
		return fmt.Errorf("failed to send inngest event %s: %w", name, err)
	}
	log.Debug("Sent inngest event", "name", name, "id", id)
	return nil
}

func (w *workflows) generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	suggestions, err := w.matchmaking.GenerateSuggestions(ctx, matchmaking.GenerateParams{ClubID: req.ClubID, Limit: req.Limit})
	if err != nil {
		return GenerateResult{}, err
	}
	result := GenerateResult{ClubID: req.ClubID, SuggestionIDs: make([]string, 0, len(suggestions))}
	for _, s := range suggestions {
		result.SuggestionIDs = append(result.SuggestionIDs, s.ID)
	}
	log.Info("Workflow generated suggestions", "clubID", req.ClubID, "count", len(result.SuggestionIDs))
	return result, nil
}

func (w *workflows) publish(ctx context.Context, result GenerateResult) error {
	if len(result.SuggestionIDs) == 0 {
		return nil
	}
	return w.pubsub.SendMessage(ctx, pubsub.EventSuggestionsGenerated, pubsub.SuggestionsGeneratedEvent{
		ClubID:        result.ClubID,
		SuggestionIDs: result.SuggestionIDs,
	})
}

func parseGenerateRequest(data map[string]any) (GenerateRequest, error) {
	clubID, _ := data["club_id"].(string)
	if clubID == "" {
		return GenerateRequest{}, fmt.Errorf("%w: club_id is required", matchmaking.ErrInvalidArgument)
	}
	req := GenerateRequest{ClubID: clubID}
	if limit, ok := intField(data, "limit"); ok {
		req.Limit = &limit
	}
	return req, nil
}

func parseSyncOptions(data map[string]any) ratings.SyncOptions {
	var opts ratings.SyncOptions
	opts.ClubID, _ = data["club_id"].(string)
	opts.DryRun, _ = data["dry_run"].(bool)
	if days, ok := intField(data, "days"); ok {
		opts.Days = days
	}
	return opts
}

// intField reads a JSON number, which arrives as float64.
func intField(data map[string]any, key string) (int, bool) {
	switch v := data[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
