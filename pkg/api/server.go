// Package api serves the debug HTTP API. Every mutation is handed to the
// game loop as a command.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/flipside/pkg/api/handlers"
	"github.com/cbodonnell/flipside/pkg/api/middleware"
	"github.com/cbodonnell/flipside/pkg/game"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/queue"
	"github.com/cbodonnell/flipside/pkg/repositories"
	"github.com/cbodonnell/flipside/pkg/state"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
}

type NewAPIServerOptions struct {
	Port         int
	Repository   repositories.Repository
	StateManager state.StateManager
	Commands     queue.Queue
	// CommandTimeout bounds how long a request waits for the game loop.
	CommandTimeout time.Duration
}

// NewRouter builds the API routes.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	if opts.CommandTimeout <= 0 {
		opts.CommandTimeout = handlers.DefaultCommandTimeout
	}
	r := mux.NewRouter()
	r.Use(middleware.Logging, middleware.CORS)

	r.HandleFunc("/state", handlers.HandleGetState(opts.StateManager)).Methods(http.MethodGet)
	r.HandleFunc("/save", handlers.HandleListSaves(opts.Repository)).Methods(http.MethodGet)

	commands := map[string]game.CommandKind{
		"/save":     game.CommandSave,
		"/load":     game.CommandLoad,
		"/new-game": game.CommandNewGame,
		"/pause":    game.CommandPause,
		"/resume":   game.CommandResume,
	}
	for path, kind := range commands {
		r.HandleFunc(path, handlers.HandleCommand(opts.Commands, kind, opts.CommandTimeout)).Methods(http.MethodPost)
	}
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	return &APIServer{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", opts.Port),
			Handler: NewRouter(opts),
		},
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	log.Info("API server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
