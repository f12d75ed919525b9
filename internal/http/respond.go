package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// errorCode classifies err into a stable API code. Club lookups report their
// own sentinels, which surface as NOT_FOUND like the engine's.
func errorCode(err error) string {
	if errors.Is(err, club.ErrClubNotFound) || errors.Is(err, club.ErrPlayerNotFound) {
		return matchmaking.CodeNotFound
	}
	return matchmaking.ErrorCode(err)
}

func statusForCode(code string) int {
	switch code {
	case matchmaking.CodeNotFound:
		return http.StatusNotFound
	case matchmaking.CodeInvalidState, matchmaking.CodeConflict:
		return http.StatusConflict
	case matchmaking.CodePreconditionFailed, matchmaking.CodeInsufficientPlayers, matchmaking.CodeInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to its code and status. Internal failures are logged
// and their details withheld from the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errorCode(err)
	s.Metrics.IncMatchmakingErrors(code)
	status := statusForCode(code)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "code", code, "error", err)
		message = "internal error"
	} else {
		log.Debug("Request rejected", "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON body: %v", matchmaking.ErrInvalidArgument, err)
	}
	return nil
}

func requireField(value, name string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", matchmaking.ErrInvalidArgument, name)
	}
	return nil
}
