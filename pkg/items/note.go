package items

import (
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/scene"
)

// NarrativeNote is a readable note added to the journal on pickup.
type NarrativeNote struct {
	pickup
	title string
	text  string
}

func NewNarrativeNote(svc Services, id, title, text string) *NarrativeNote {
	n := &NarrativeNote{
		pickup: newPickup(svc, id, events.InventoryNote),
		title:  title,
		text:   text,
	}
	n.owned = func() bool { return n.Inventory.HasNote(n.id) }
	n.onCollect = func() {
		n.Inventory.AddNote(n.id, n.title, n.text)
		n.Hub.NoteCollected.Publish(events.NoteCollected{NoteID: n.id, Title: n.title})
	}
	return n
}

func (n *NarrativeNote) Title() string {
	return n.title
}

func (n *NarrativeNote) Text() string {
	return n.text
}

func (n *NarrativeNote) Attach(node *scene.Node) {
	n.attach(node, pickupSize, n.Collect)
}

func (n *NarrativeNote) Init() error {
	n.hideIfOwned()
	return nil
}
