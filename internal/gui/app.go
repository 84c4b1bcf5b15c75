// Package gui hosts the flip animation in a native window through
// ebiten. It is the windowed sibling of the terminal front end: same
// controller, same palette as the offscreen renderer.
package gui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/flipdeck/flipdeck/internal/config"
	"github.com/flipdeck/flipdeck/internal/flip"
	"github.com/flipdeck/flipdeck/internal/render"
)

const (
	screenW = 640
	screenH = 480
)

// Game implements ebiten.Game around one flip controller. Update runs
// on ebiten's fixed tick, so the animation is advanced by the nominal
// tick duration rather than wall-clock deltas.
type Game struct {
	anim    flip.Config
	ctrl    *flip.Controller
	tick    time.Duration
	palette render.Options
}

// NewGame builds the windowed host from an app config.
func NewGame(cfg *config.Config) (*Game, error) {
	anim, err := cfg.Animation()
	if err != nil {
		return nil, err
	}
	ctrl, err := flip.New(anim)
	if err != nil {
		return nil, err
	}
	return &Game{
		anim:    anim,
		ctrl:    ctrl,
		tick:    cfg.Tick(),
		palette: render.DefaultOptions(),
	}, nil
}

// Update handles input and advances the animation by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ctrl.Flip()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		next := g.anim
		if next.Axis == flip.Vertical {
			next.Axis = flip.Horizontal
		} else {
			next.Axis = flip.Vertical
		}
		g.rebuild(next)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		next := g.anim
		if next.Backface == flip.BackfaceTracking {
			next.Backface = flip.BackfacePinned
		} else {
			next.Backface = flip.BackfaceTracking
		}
		g.rebuild(next)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if ctrl, err := flip.New(g.anim); err == nil {
			g.ctrl = ctrl
		}
	}

	g.ctrl.Advance(g.tick)
	return nil
}

// rebuild swaps the controller for one carrying cfg, preserving the
// resting side. Ignored mid-flip.
func (g *Game) rebuild(cfg flip.Config) {
	if g.ctrl.Animating() {
		return
	}
	cfg.Orientation = g.ctrl.Orientation()
	ctrl, err := flip.New(cfg)
	if err != nil {
		return
	}
	g.anim = cfg
	g.ctrl = ctrl
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawCard(screen)
	g.drawStatus(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	fr := g.ctrl.Frame()
	st := g.ctrl.Stats()
	msg := fmt.Sprintf("face %s  axis %s  backface %s  flips %d\nspace/click flip  a axis  b backface  r reset  q quit",
		fr.Face, g.anim.Axis, g.anim.Backface, st.Flips)
	ebitenutil.DebugPrint(screen, msg)
}

// Run opens the window and blocks until the user quits.
func Run(cfg *config.Config) error {
	game, err := NewGame(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("flipdeck")
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
