package models

// SaveSlot describes a stored save without decoding it.
type SaveSlot struct {
	Slot     string  `json:"slot"`
	Level    string  `json:"level"`
	PlayTime float64 `json:"play_time"`
	SavedAt  string  `json:"saved_at"`
}
