package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cbodonnell/flipside/pkg/game"
	"github.com/cbodonnell/flipside/pkg/input"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	screenWidth  = 640
	screenHeight = 360
)

// window implements ebiten.Game. Rendering is a text overlay of the game
// status.
type window struct {
	ctx   context.Context
	app   *game.App
	input *input.Ebiten
	dt    float64
}

func newWindow(ctx context.Context, app *game.App, in *input.Ebiten, tps int) *window {
	return &window{ctx: ctx, app: app, input: in, dt: 1 / float64(tps)}
}

func (w *window) Update() error {
	select {
	case <-w.ctx.Done():
		return ebiten.Termination
	default:
	}

	if w.input.PauseJustPressed() {
		switch w.app.Session.State() {
		case session.Playing:
			w.app.Session.PauseGame()
		case session.Paused:
			w.app.Session.ResumeGame()
		}
	}
	if w.input.QuickSaveJustPressed() && !w.app.Persistence.IsRestoring() {
		if err := w.app.Persistence.SaveGame(); err != nil {
			log.Warn("Quick save failed: %v", err)
		}
	}
	if w.input.QuickLoadJustPressed() {
		w.app.Session.ContinueGame()
	}

	w.app.Tick(w.dt)
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	s := w.app.Status()
	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s]\n", s.Level, s.State)
	if s.Loading || s.Restoring {
		b.WriteString("Loading...\n")
	}
	fmt.Fprintf(&b, "Health %.0f  Energy %.0f  Gravity flipped %t\n", s.Health, s.Energy, s.GravityFlip)
	fmt.Fprintf(&b, "Key cards %d  Cores %d  Notes %d\n", len(s.KeyCards), len(s.EnergyCores), len(s.Notes))
	fmt.Fprintf(&b, "Puzzles %d/%d  Play time %.0fs\n", len(s.SolvedPuzzles), s.TotalPuzzles, s.PlayTime)
	b.WriteString("\nWASD move  Q/E turn  G flip  Esc pause  F5 save  F9 load")
	ebitenutil.DebugPrint(screen, b.String())
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
