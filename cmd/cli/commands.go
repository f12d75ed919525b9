package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd, metricsCmd, statsCmd, playersCmd, syncCmd, matchCmd)

	generateCmd.Flags().Int("limit", 0, "Maximum number of suggestions, the club setting when zero")
	generateCmd.Flags().Float64("max-gap", -1, "Maximum team skill difference, the club setting when negative")
	generateCmd.Flags().Bool("async", false, "Queue the run as a workflow")
	listSuggestionsCmd.Flags().String("status", "", "Only list suggestions in this status")
	acceptCmd.Flags().String("by", "", "Id of the user accepting the suggestion")
	suggestionsCmd.AddCommand(generateCmd, listSuggestionsCmd, acceptCmd, rejectCmd)
	rootCmd.AddCommand(suggestionsCmd)

	createRequestCmd.Flags().String("by", "", "Id of the requesting player")
	createRequestCmd.Flags().StringSlice("players", nil, "Players to invite")
	createRequestCmd.Flags().String("notes", "", "Free text note")
	addPlayerCmd.Flags().String("status", "invited", "Initial participant status")
	completeRequestCmd.Flags().String("club-override", "", "Record the match under another club")
	requestsCmd.AddCommand(createRequestCmd, getRequestCmd, addPlayerCmd, respondCmd, completeRequestCmd)
	rootCmd.AddCommand(requestsCmd)

	syncCmd.Flags().Int("days", 0, "Days of history to import")

	settingsCmd.AddCommand(getSettingsCmd)
	rootCmd.AddCommand(settingsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil, nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil, nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get the persistent counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/stats", nil, nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the club's players, strongest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClub(); err != nil {
			return err
		}
		return performRequest(http.MethodGet, "/clubs/"+url.PathEscape(clubID)+"/players", nil, nil)
	},
}

var matchCmd = &cobra.Command{
	Use:   "match [id]",
	Short: "Show a committed match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches/"+url.PathEscape(args[0]), nil, nil)
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import recent Playtomic matches and player levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if days, _ := cmd.Flags().GetInt("days"); days > 0 {
			query.Set("days", strconv.Itoa(days))
		}
		if clubID != "" {
			query.Set("club_id", clubID)
		}
		return performRequest(http.MethodPost, "/ratings/sync", query, nil)
	},
}

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Generate and review match suggestions",
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate balanced match suggestions for the club",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClub(); err != nil {
			return err
		}
		body := map[string]any{"club_id": clubID}
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
			body["limit"] = limit
		}
		if maxGap, _ := cmd.Flags().GetFloat64("max-gap"); maxGap >= 0 {
			body["max_skill_difference"] = maxGap
		}
		query := url.Values{}
		if async, _ := cmd.Flags().GetBool("async"); async {
			query.Set("async", "true")
		}
		return performRequest(http.MethodPost, "/matchmaking/suggestions", query, body)
	},
}

var listSuggestionsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the club's suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClub(); err != nil {
			return err
		}
		query := url.Values{"club_id": {clubID}}
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			query.Set("status", status)
		}
		return performRequest(http.MethodGet, "/matchmaking/suggestions", query, nil)
	},
}

var acceptCmd = &cobra.Command{
	Use:   "accept [id]",
	Short: "Accept a suggestion and commit its match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		by, _ := cmd.Flags().GetString("by")
		return performRequest(http.MethodPost, "/matchmaking/suggestions/"+url.PathEscape(args[0])+"/accept", nil, map[string]any{"accepted_by": by})
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Reject a suggestion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/matchmaking/suggestions/"+url.PathEscape(args[0])+"/reject", nil, nil)
	},
}

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Manage player initiated match requests",
}

var createRequestCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a match request",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClub(); err != nil {
			return err
		}
		by, _ := cmd.Flags().GetString("by")
		players, _ := cmd.Flags().GetStringSlice("players")
		body := map[string]any{"club_id": clubID, "requested_by_id": by, "initial_players": players}
		if notes, _ := cmd.Flags().GetString("notes"); notes != "" {
			body["notes"] = notes
		}
		return performRequest(http.MethodPost, "/matches/requests", nil, body)
	},
}

var getRequestCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a match request and its participants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches/requests/"+url.PathEscape(args[0]), nil, nil)
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add [request-id] [player-id]",
	Short: "Add a player to a match request",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		return performRequest(http.MethodPost, "/matches/requests/"+url.PathEscape(args[0])+"/players", nil, map[string]any{"player_id": args[1], "status": status})
	},
}

var respondCmd = &cobra.Command{
	Use:   "respond [request-id] [player-id] [invited|confirmed|declined]",
	Short: "Record a participant's answer",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/matches/requests/" + url.PathEscape(args[0]) + "/players/" + url.PathEscape(args[1])
		return performRequest(http.MethodPut, endpoint, nil, map[string]any{"status": args[2]})
	},
}

var completeRequestCmd = &cobra.Command{
	Use:   "complete [request-id]",
	Short: "Turn a request with four confirmed players into a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"match_request_id": args[0]}
		if override, _ := cmd.Flags().GetString("club-override"); override != "" {
			body["club_id"] = override
		}
		return performRequest(http.MethodPost, "/matches/from-request", nil, body)
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect the club's matchmaking settings",
}

var getSettingsCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the club's matchmaking settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireClub(); err != nil {
			return err
		}
		return performRequest(http.MethodGet, "/clubs/"+url.PathEscape(clubID)+"/matchmaking-settings", nil, nil)
	},
}

func requireClub() error {
	if clubID == "" {
		return fmt.Errorf("--club is required")
	}
	return nil
}

func performRequest(method, endpoint string, query url.Values, body any) error {
	if query == nil {
		query = url.Values{}
	}
	if dryRun {
		query.Set("dry_run", "true")
	}
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Printf("Making %s request to %s\n", method, target)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))
	return nil
}
