package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cbodonnell/flipside/pkg/game"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/queue"
	"github.com/cbodonnell/flipside/pkg/repositories"
	"github.com/cbodonnell/flipside/pkg/state"
)

// DefaultCommandTimeout bounds how long a request waits for the game loop.
const DefaultCommandTimeout = 5 * time.Second

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func HandleGetState(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get game status: %v", err)
			http.Error(w, "Failed to get game status", http.StatusInternalServerError)
			return
		}
		writeJSON(w, status)
	}
}

func HandleListSaves(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := repository.List(r.Context())
		if err != nil {
			log.Error("failed to list saves: %v", err)
			http.Error(w, "Failed to list saves", http.StatusInternalServerError)
			return
		}
		writeJSON(w, slots)
	}
}

// HandleCommand queues a command for the game loop and waits for its result.
func HandleCommand(commands queue.Queue, kind game.CommandKind, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd := game.NewCommand(kind)
		if err := commands.Enqueue(cmd); err != nil {
			log.Error("failed to enqueue %s command: %v", kind, err)
			http.Error(w, "Game is busy", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		err := cmd.Wait(ctx)
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, game.ErrCommandRejected):
			http.Error(w, err.Error(), http.StatusConflict)
		case ctx.Err() != nil:
			log.Warn("%s command timed out", kind)
			http.Error(w, "Game did not respond", http.StatusGatewayTimeout)
		default:
			log.Error("%s command failed: %v", kind, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
