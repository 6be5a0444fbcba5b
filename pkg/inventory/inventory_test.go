package inventory

import (
	"testing"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/stretchr/testify/assert"
)

func TestStore_KeyCards(t *testing.T) {
	hub := events.NewHub()
	s := NewStore(hub)
	var changes []events.InventoryChanged
	hub.InventoryChanged.Subscribe(func(ev events.InventoryChanged) { changes = append(changes, ev) })

	assert.True(t, s.AddKeyCard("key_A"))
	assert.False(t, s.AddKeyCard("key_A"))
	assert.True(t, s.HasKeyCard("key_A"))
	assert.Equal(t, []string{"key_A"}, s.KeyCards())
	assert.Equal(t, []events.InventoryChanged{{Kind: events.InventoryKeyCard, ID: "key_A"}}, changes)

	s.RemoveKeyCard("key_A")
	assert.False(t, s.HasKeyCard("key_A"))
}

func TestStore_emptyIDsAreIgnored(t *testing.T) {
	hub := events.NewHub()
	s := NewStore(hub)
	calls := 0
	hub.InventoryChanged.Subscribe(func(events.InventoryChanged) { calls++ })

	assert.False(t, s.AddKeyCard(""))
	assert.False(t, s.AddEnergyCore(""))
	assert.False(t, s.AddNote("", "title", "text"))
	s.RemoveKeyCard("")
	s.RemoveEnergyCore("")

	assert.False(t, s.HasKeyCard(""))
	assert.False(t, s.HasEnergyCore(""))
	assert.False(t, s.HasNote(""))
	assert.Equal(t, 0, calls)
	assert.Empty(t, s.KeyCards())
}

func TestStore_EnergyCores(t *testing.T) {
	s := NewStore(events.NewHub())
	s.AddEnergyCore("core_2")
	s.AddEnergyCore("core_1")
	s.AddEnergyCore("core_1")

	assert.Equal(t, 2, s.EnergyCoreCount())
	assert.Equal(t, []string{"core_1", "core_2"}, s.EnergyCores())

	s.RemoveEnergyCore("core_2")
	assert.Equal(t, 1, s.EnergyCoreCount())
	assert.False(t, s.HasEnergyCore("core_2"))
}

func TestStore_NotesUpsert(t *testing.T) {
	hub := events.NewHub()
	s := NewStore(hub)
	calls := 0
	hub.InventoryChanged.Subscribe(func(events.InventoryChanged) { calls++ })

	assert.True(t, s.AddNote("log_1", "Day 1", "first"))
	assert.False(t, s.AddNote("log_1", "Day 1", "rewritten"))

	notes := s.AllNotes()
	assert.Equal(t, Note{ID: "log_1", Title: "Day 1", Text: "rewritten"}, notes["log_1"])
	assert.Equal(t, 1, calls)

	// the returned map is a copy
	delete(notes, "log_1")
	assert.True(t, s.HasNote("log_1"))
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(events.NewHub())
	s.AddKeyCard("key_A")
	s.AddEnergyCore("core_1")
	s.AddNote("log_1", "t", "x")

	s.Clear()

	assert.Empty(t, s.KeyCards())
	assert.Equal(t, 0, s.EnergyCoreCount())
	assert.Empty(t, s.AllNotes())
	assert.True(t, s.AddKeyCard("key_A"))
}
