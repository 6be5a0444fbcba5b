package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/flipside/pkg/game"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/queue"
	"github.com/cbodonnell/flipside/pkg/session"
	"github.com/cbodonnell/flipside/pkg/state"
)

// DefaultAutosaveInterval is used when no interval is configured.
const DefaultAutosaveInterval = 2 * time.Minute

type AutosaveWorker struct {
	commands     queue.Queue
	stateManager state.StateManager
	interval     time.Duration

	pending *game.Command
}

type NewAutosaveWorkerOptions struct {
	Commands     queue.Queue
	StateManager state.StateManager
	Interval     time.Duration
}

// NewAutosaveWorker creates a new AutosaveWorker.
// The worker periodically asks the game loop to save while a session is
// being played. It never touches game state itself.
func NewAutosaveWorker(opts NewAutosaveWorkerOptions) *AutosaveWorker {
	if opts.Interval <= 0 {
		opts.Interval = DefaultAutosaveInterval
	}
	return &AutosaveWorker{
		commands:     opts.Commands,
		stateManager: opts.StateManager,
		interval:     opts.Interval,
	}
}

func (w *AutosaveWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.autosave(ctx)
		}
	}
}

func (w *AutosaveWorker) autosave(ctx context.Context) {
	if w.pending != nil {
		select {
		case err := <-w.pending.Done:
			if err != nil {
				log.Error("Autosave failed: %v", err)
			} else {
				log.Debug("Autosave complete")
			}
			w.pending = nil
		default:
			log.Warn("Skipping autosave: the previous one has not run yet")
			return
		}
	}

	status, err := w.stateManager.Get(ctx)
	if err != nil {
		log.Error("Failed to get current game status: %v", err)
		return
	}
	if status.State != session.Playing.String() || status.Loading || status.Restoring {
		log.Trace("Skipping autosave in state %s", status.State)
		return
	}

	cmd := game.NewCommand(game.CommandSave)
	if err := w.commands.Enqueue(cmd); err != nil {
		log.Error("Failed to enqueue autosave: %v", err)
		return
	}
	w.pending = cmd
}
