package game

import (
	"context"
	"errors"
	"fmt"
)

// ErrCommandRejected is returned for a command that could not be carried out
// in the current state, such as loading with no save present.
var ErrCommandRejected = errors.New("command rejected")

type CommandKind int

const (
	CommandSave CommandKind = iota
	CommandLoad
	CommandNewGame
	CommandPause
	CommandResume
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandSave:
		return "save"
	case CommandLoad:
		return "load"
	case CommandNewGame:
		return "new-game"
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandQuit:
		return "quit"
	}
	return "unknown"
}

// Command is a request from another goroutine, executed on the simulation
// thread at the start of the next tick. The result is sent on Done.
type Command struct {
	Kind CommandKind
	Done chan error
}

func NewCommand(kind CommandKind) *Command {
	return &Command{Kind: kind, Done: make(chan error, 1)}
}

func (c *Command) reply(err error) {
	if c.Done == nil {
		return
	}
	select {
	case c.Done <- err:
	default:
	}
}

// Wait blocks until the command has run or ctx is done.
func (c *Command) Wait(ctx context.Context) error {
	select {
	case err := <-c.Done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("command %s did not complete: %v", c.Kind, ctx.Err())
	}
}
