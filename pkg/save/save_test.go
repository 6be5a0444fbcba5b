package save

import (
	"testing"
	"time"

	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Snapshot {
	s := New(time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC))
	s.Player.Position = kinematic.Vector{X: 12, Y: 7, Z: -3}
	s.Player.Rotation = kinematic.FromEuler(0, 90, 0)
	s.Player.GravityFlipped = true
	s.Player.Health = 55
	s.CollectedKeyCardIDs = []string{"key_A"}
	s.CollectedEnergyCoreIDs = []string{"core_002", "core_001"}
	s.CollectedNotes = map[string]NoteData{"note_001": {Title: "Shift log", Text: "Reactor feed offline."}}
	s.SolvedPuzzleIDs = []string{"puzzle_007"}
	s.DisabledHazardPaths = []string{"Room/Discharge1"}
	s.CumulativePlayTimeSeconds = 42.5
	s.Normalize()
	return s
}

func TestNew(t *testing.T) {
	s := New(time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC))

	assert.Equal(t, Version, s.Version)
	assert.NotEqual(t, uuid.Nil, s.SessionID)
	assert.Equal(t, DefaultLevel, s.CurrentLevelName)
	assert.Equal(t, "2024-06-01 12:30:00", s.SaveTimestamp)
	assert.Equal(t, kinematic.Identity, s.Player.Rotation)
	assert.Equal(t, 100.0, s.Player.Health)
	assert.Equal(t, 100.0, s.Player.MaxEnergy)
	assert.NotNil(t, s.CollectedKeyCardIDs)
	assert.NotNil(t, s.CollectedNotes)
}

func TestSnapshot_Normalize(t *testing.T) {
	s := &Snapshot{
		Player:              Player{Health: 250, Energy: -4},
		SolvedPuzzleIDs:     []string{"b", "", "a", "b"},
		DisabledHazardPaths: nil,
		CollectedNotes:      map[string]NoteData{"": {Title: "x"}},
	}
	s.Normalize()

	assert.Equal(t, []string{"a", "b"}, s.SolvedPuzzleIDs)
	assert.Equal(t, []string{}, s.DisabledHazardPaths)
	assert.Empty(t, s.CollectedNotes)
	assert.Equal(t, 100.0, s.Player.MaxHealth)
	assert.Equal(t, 100.0, s.Player.Health)
	assert.Equal(t, 0.0, s.Player.Energy)
	assert.Equal(t, DefaultLevel, s.CurrentLevelName)
	assert.Equal(t, kinematic.Identity, s.Player.Rotation)
	assert.True(t, s.IsPuzzleSolved("a"))
	assert.False(t, s.IsPuzzleSolved("c"))
}

func TestSnapshot_Clone(t *testing.T) {
	s := sample()
	c := s.Clone()
	c.SolvedPuzzleIDs[0] = "other"
	c.CollectedNotes["note_002"] = NoteData{}

	assert.Equal(t, []string{"puzzle_007"}, s.SolvedPuzzleIDs)
	assert.Len(t, s.CollectedNotes, 1)
}

func TestCodec_roundTrip(t *testing.T) {
	tt := []struct {
		name  string
		codec Codec
	}{
		{name: "json", codec: CodecFor("savegame.json")},
		{name: "zstd", codec: CodecFor("savegame.json.zst")},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s := sample()
			data, err := tc.codec.Encode(s)
			require.NoError(t, err)
			assert.Equal(t, tc.codec.Compress, data[0] != '{')

			got, err := tc.codec.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, s, got)

			// decoding sniffs the payload, not the codec
			got, err = Codec{Compress: !tc.codec.Compress}.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, s, got)
		})
	}
}

func TestCodec_Decode(t *testing.T) {
	tt := []struct {
		name    string
		data    string
		wantErr bool
		check   func(t *testing.T, s *Snapshot)
	}{
		{name: "empty", data: "  ", wantErr: true},
		{name: "malformed", data: `{"player": [`, wantErr: true},
		{name: "wrong type", data: `{"solvedPuzzleIds": 3}`, wantErr: true},
		{
			name: "missing fields default",
			data: `{"currentLevelName": "Level02_ReactorCore", "solvedPuzzleIds": ["puzzle_101"]}`,
			check: func(t *testing.T, s *Snapshot) {
				assert.Equal(t, "Level02_ReactorCore", s.CurrentLevelName)
				assert.Equal(t, []string{"puzzle_101"}, s.SolvedPuzzleIDs)
				assert.Equal(t, 100.0, s.Player.Health)
				assert.Equal(t, []string{}, s.CollectedKeyCardIDs)
				assert.Equal(t, uuid.Nil, s.SessionID)
			},
		},
		{
			name: "unknown fields ignored",
			data: `{"futureField": {"a": 1}, "player": {"health": 20}}`,
			check: func(t *testing.T, s *Snapshot) {
				assert.Equal(t, 20.0, s.Player.Health)
				assert.Equal(t, 100.0, s.Player.MaxHealth)
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Codec{}.Decode([]byte(tc.data))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, s)
		})
	}
}
