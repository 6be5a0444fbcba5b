package puzzles

import (
	"github.com/cbodonnell/flipside/pkg/events"
)

// KeyPuzzle is solved by collecting enough energy cores, each of which fills
// the next slot.
type KeyPuzzle struct {
	Base
	required int
	slots    int
	placed   []string
	filled   []bool
	sub      events.Subscription
}

// NewKeyPuzzleOptions contains options for creating a new KeyPuzzle.
type NewKeyPuzzleOptions struct {
	BaseOptions
	RequiredCores int
	Slots         int
}

func NewKeyPuzzle(opts NewKeyPuzzleOptions) *KeyPuzzle {
	if opts.RequiredCores <= 0 {
		opts.RequiredCores = 3
	}
	if opts.Slots <= 0 {
		opts.Slots = opts.RequiredCores
	}
	k := &KeyPuzzle{
		required: opts.RequiredCores,
		slots:    opts.Slots,
		filled:   make([]bool, opts.Slots),
	}
	k.Base = newBase(opts.BaseOptions, k)
	return k
}

func (k *KeyPuzzle) Init() error {
	if err := k.Base.Init(); err != nil {
		return err
	}
	k.sub = k.hub.EnergyCoreCollected.Subscribe(k.onEnergyCoreCollected)
	return nil
}

func (k *KeyPuzzle) Destroy() error {
	if k.sub != nil {
		k.sub.Cancel()
	}
	return k.Base.Destroy()
}

func (k *KeyPuzzle) onEnergyCoreCollected(ev events.EnergyCoreCollected) {
	if k.state != StateInProgress || len(k.placed) >= k.required {
		return
	}
	for _, id := range k.placed {
		if id == ev.CoreID {
			return
		}
	}
	slot := len(k.placed)
	if slot >= k.slots {
		return
	}
	k.placed = append(k.placed, ev.CoreID)
	k.filled[slot] = true
	k.ReportProgress(float64(len(k.placed)) / float64(k.required))
	if len(k.placed) >= k.required {
		k.Solve()
	}
}

// Placed returns the ids of the cores in the slots, in placement order.
func (k *KeyPuzzle) Placed() []string {
	out := make([]string, len(k.placed))
	copy(out, k.placed)
	return out
}

// FilledSlots returns the number of slots shown as filled.
func (k *KeyPuzzle) FilledSlots() int {
	n := 0
	for _, f := range k.filled {
		if f {
			n++
		}
	}
	return n
}

func (k *KeyPuzzle) Reset() {
	k.Base.Reset()
	k.placed = nil
	k.filled = make([]bool, k.slots)
}

// RestoreState fills the slots for a solved puzzle and empties them
// otherwise, so cores collected again after a revert count.
func (k *KeyPuzzle) RestoreState(state State) {
	k.Base.RestoreState(state)
	if state != StateSolved {
		k.placed = nil
		k.filled = make([]bool, k.slots)
		return
	}
	for i := 0; i < k.slots && i < k.required; i++ {
		k.filled[i] = true
	}
}
