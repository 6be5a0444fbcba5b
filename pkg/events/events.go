package events

import "github.com/cbodonnell/flipside/pkg/kinematic"

type GravityFlipped struct {
	Gravity kinematic.Vector
	Flipped bool
}

// ItemCollected is emitted for every pickup in addition to its specific event.
type ItemCollected struct {
	ItemID   string
	Position kinematic.Vector
}

type EnergyCoreCollected struct {
	CoreID   string
	Position kinematic.Vector
}

type KeyCardCollected struct {
	KeyCardID string
}

type NoteCollected struct {
	NoteID string
	Title  string
}

type InventoryKind uint8

const (
	InventoryKeyCard InventoryKind = iota
	InventoryEnergyCore
	InventoryNote
)

func (k InventoryKind) String() string {
	switch k {
	case InventoryKeyCard:
		return "key-card"
	case InventoryEnergyCore:
		return "energy-core"
	case InventoryNote:
		return "note"
	}
	return "unknown"
}

// InventoryChanged is emitted by the inventory store on every successful add.
type InventoryChanged struct {
	Kind InventoryKind
	ID   string
}

type PuzzleStarted struct {
	PuzzleID string
}

type PuzzleSolved struct {
	PuzzleID string
}

type PuzzleProgressed struct {
	PuzzleID string
	Progress float64
}

type HazardStateChanged struct {
	Path   string
	Active bool
}

type LevelCompleted struct {
	Level string
}

type LoadingStarted struct {
	Scene string
}

type LevelStarted struct {
	Level string
}

type LevelLoaded struct {
	Level string
}

type PlayerDeath struct{}

type PlayerDamaged struct {
	Amount float64
	Health float64
}

type TerminalActivated struct {
	PuzzleID string
}

type GamePaused struct{}

type GameResumed struct{}

type GameSaved struct {
	Level    string
	PlayTime float64
}

// PlayerRestored is emitted when the player transform restore protocol ends.
// Stable is false when the pose could not be verified within tolerance.
type PlayerRestored struct {
	Found  bool
	Stable bool
}

// SaveApplied is emitted once every reconciliation step of a load has run.
// Failed is set when the save's level could not be brought up and nothing
// was applied.
type SaveApplied struct {
	Level  string
	Failed bool
}
