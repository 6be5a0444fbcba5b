package events

// Hub groups every topic the game publishes on. It carries no logic.
type Hub struct {
	GravityFlipped      Topic[GravityFlipped]
	ItemCollected       Topic[ItemCollected]
	EnergyCoreCollected Topic[EnergyCoreCollected]
	KeyCardCollected    Topic[KeyCardCollected]
	NoteCollected       Topic[NoteCollected]
	InventoryChanged    Topic[InventoryChanged]
	PuzzleStarted       Topic[PuzzleStarted]
	PuzzleSolved        Topic[PuzzleSolved]
	PuzzleProgressed    Topic[PuzzleProgressed]
	HazardStateChanged  Topic[HazardStateChanged]
	LevelCompleted      Topic[LevelCompleted]
	LoadingStarted      Topic[LoadingStarted]
	LevelStarted        Topic[LevelStarted]
	LevelLoaded         Topic[LevelLoaded]
	PlayerDeath         Topic[PlayerDeath]
	PlayerDamaged       Topic[PlayerDamaged]
	TerminalActivated   Topic[TerminalActivated]
	GamePaused          Topic[GamePaused]
	GameResumed         Topic[GameResumed]
	GameSaved           Topic[GameSaved]
	PlayerRestored      Topic[PlayerRestored]
	SaveApplied         Topic[SaveApplied]
}

func NewHub() *Hub {
	return &Hub{}
}

// ClearAll drops every subscriber on every topic.
func (h *Hub) ClearAll() {
	h.GravityFlipped.Clear()
	h.ItemCollected.Clear()
	h.EnergyCoreCollected.Clear()
	h.KeyCardCollected.Clear()
	h.NoteCollected.Clear()
	h.InventoryChanged.Clear()
	h.PuzzleStarted.Clear()
	h.PuzzleSolved.Clear()
	h.PuzzleProgressed.Clear()
	h.HazardStateChanged.Clear()
	h.LevelCompleted.Clear()
	h.LoadingStarted.Clear()
	h.LevelStarted.Clear()
	h.LevelLoaded.Clear()
	h.PlayerDeath.Clear()
	h.PlayerDamaged.Clear()
	h.TerminalActivated.Clear()
	h.GamePaused.Clear()
	h.GameResumed.Clear()
	h.GameSaved.Clear()
	h.PlayerRestored.Clear()
	h.SaveApplied.Clear()
}

// Subscriptions collects handles so an owner can cancel them together.
type Subscriptions []Subscription

func (s *Subscriptions) Add(sub Subscription) {
	*s = append(*s, sub)
}

func (s *Subscriptions) CancelAll() {
	for _, sub := range *s {
		sub.Cancel()
	}
	*s = nil
}
