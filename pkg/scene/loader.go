package scene

import (
	"errors"
	"fmt"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/sched"
)

// ErrLoadInProgress rejects a load requested while another one is in flight.
var ErrLoadInProgress = errors.New("scene load already in progress")

// Loader drives asynchronous scene transitions.
type Loader struct {
	hub       *events.Hub
	scheduler *sched.Scheduler
	manager   *Manager
	source    Source

	current     LoadOperation
	currentName string
}

type NewLoaderOptions struct {
	Hub       *events.Hub
	Scheduler *sched.Scheduler
	Manager   *Manager
	Source    Source
}

func NewLoader(opts NewLoaderOptions) *Loader {
	return &Loader{
		hub:       opts.Hub,
		scheduler: opts.Scheduler,
		manager:   opts.Manager,
		source:    opts.Source,
	}
}

// LoadScene starts loading name. Loading-started is emitted immediately,
// level-loaded once the scene is active, and onComplete runs one frame after
// that so other level-loaded subscribers react first.
func (l *Loader) LoadScene(name string, onComplete func()) error {
	if l.current != nil {
		log.Warn("Rejecting load of %s: %s is still loading", name, l.currentName)
		return fmt.Errorf("%w: %s", ErrLoadInProgress, l.currentName)
	}

	op, err := l.source.Begin(name)
	if err != nil {
		return fmt.Errorf("failed to begin loading %s: %w", name, err)
	}
	op.SetAllowActivation(false)
	l.current = op
	l.currentName = name

	log.Info("Loading scene %s", name)
	l.hub.LoadingStarted.Publish(events.LoadingStarted{Scene: name})
	l.hub.LevelStarted.Publish(events.LevelStarted{Level: name})

	l.scheduler.NextFrame(func() {
		l.pump(op, name, onComplete)
	})
	return nil
}

func (l *Loader) pump(op LoadOperation, name string, onComplete func()) {
	op.Advance()
	if op.Progress() >= ActivationThreshold {
		op.SetAllowActivation(true)
	}
	if !op.Done() {
		l.scheduler.NextFrame(func() {
			l.pump(op, name, onComplete)
		})
		return
	}

	if err := l.manager.Activate(op.Scene()); err != nil {
		log.Error("Failed to activate scene %s: %v", name, err)
	}
	l.current = nil
	l.currentName = ""

	log.Info("Scene %s loaded", name)
	l.hub.LevelLoaded.Publish(events.LevelLoaded{Level: name})

	if onComplete != nil {
		l.scheduler.NextFrame(onComplete)
	}
}

// IsLoading reports whether a load is in flight.
func (l *Loader) IsLoading() bool {
	return l.current != nil
}

// Progress returns normalized load progress in [0, 1], or 0 when idle.
func (l *Loader) Progress() float64 {
	if l.current == nil {
		return 0
	}
	p := l.current.Progress() / ActivationThreshold
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
