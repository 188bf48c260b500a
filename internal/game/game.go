package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/coordinate-borders/internal/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// borderWidth is the pixel gap between the window edge and the field.
const borderWidth = 24

// hudScale is the integer upscale factor applied to all HUD text.
const hudScale = 2

// boundKeys are the keys handleInput watches, in dispatch order.
var boundKeys = []ebiten.Key{
	ebiten.KeySpace,
	ebiten.KeyArrowRight,
	ebiten.KeyR,
	ebiten.KeyC,
	ebiten.KeyH,
	ebiten.KeyEscape,
}

// Game is the interactive viewer: it shows the engine frame, fires passes
// from the keyboard and lists session events in a side panel.
type Game struct {
	width   int
	height  int
	fieldW  int
	fieldH  int
	offX    int
	offY    int
	session *Session

	showHUD  bool
	prevKeys map[ebiten.Key]bool

	// dirty is set when the engine frame changed and has not been uploaded.
	dirty bool

	fieldImg *ebiten.Image
	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image
}

// New builds a session from cfg and the images to show it.
func New(cfg config.Config, opts ...SessionOption) (*Game, error) {
	s, err := NewSession(append([]SessionOption{WithConfig(cfg)}, opts...)...)
	if err != nil {
		return nil, err
	}
	g := newGame(s)
	g.fieldImg = ebiten.NewImage(g.fieldW, g.fieldH)
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	return g, nil
}

func newGame(s *Session) *Game {
	cfg := s.Config()
	return &Game{
		width:    borderWidth + cfg.Width + borderWidth + logPanelWidth,
		height:   borderWidth + cfg.Height + borderWidth,
		fieldW:   cfg.Width,
		fieldH:   cfg.Height,
		offX:     borderWidth,
		offY:     borderWidth,
		session:  s,
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		dirty:    true,
	}
}

// Size returns the window size the viewer lays out for.
func (g *Game) Size() (int, int) { return g.width, g.height }

// Session returns the viewer's session.
func (g *Game) Session() *Session { return g.session }

func (g *Game) Update() error {
	current := make(map[ebiten.Key]bool, len(boundKeys))
	for _, k := range boundKeys {
		current[k] = ebiten.IsKeyPressed(k)
	}
	for _, k := range g.justPressed(current) {
		g.handleKey(k)
	}
	g.prevKeys = current

	if _, ok := g.session.Poll(); ok {
		g.dirty = true
	}
	if g.dirty && !g.session.Running() {
		g.fieldImg.WritePixels(g.session.Engine().Frame().Pix)
		g.dirty = false
	}
	return nil
}

// justPressed returns the bound keys that went down since the last frame.
func (g *Game) justPressed(current map[ebiten.Key]bool) []ebiten.Key {
	var out []ebiten.Key
	for _, k := range boundKeys {
		if current[k] && !g.prevKeys[k] {
			out = append(out, k)
		}
	}
	return out
}

func (g *Game) handleKey(k ebiten.Key) {
	switch k {
	case ebiten.KeySpace:
		g.session.Start(ActionCompute)
	case ebiten.KeyArrowRight:
		g.session.Start(ActionExtract)
	case ebiten.KeyR:
		if err := g.session.Regenerate(); err == nil {
			g.dirty = true
		}
	case ebiten.KeyC:
		_ = g.session.CopyReport()
	case ebiten.KeyH:
		g.showHUD = !g.showHUD
	case ebiten.KeyEscape:
		g.session.Cancel()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.fieldImg, &op)

	ox := float32(g.offX)
	oy := float32(g.offY)
	fw := float32(g.fieldW)
	fh := float32(g.fieldH)
	vector.StrokeRect(screen, ox-1, oy-1, fw+2, fh+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, fw+6, fh+6, 1.0, color.RGBA{R: 40, G: 65, B: 40, A: 100}, false)

	logX := g.offX + g.fieldW + g.offX
	g.session.Events.Draw(screen, logX, g.height)

	if g.session.Running() {
		ebitenutil.DebugPrintAt(screen, "pass running... Esc=cancel", g.offX+6, g.offY+6)
	}
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) hudLines() []string {
	s := g.session
	e := s.Engine()
	state := "idle"
	if s.Running() {
		state = "running"
	}
	if entries := s.Log.ForPass(s.Pass()); len(entries) > 0 {
		last := entries[len(entries)-1]
		state += fmt.Sprintf("  last: %s %s", last.Category, last.Key)
	}
	return []string{
		fmt.Sprintf("PASS %d: %s", s.Pass(), state),
		fmt.Sprintf("seeds=%d rng=%d  R=regenerate", e.Seeds().Len(), s.RNGSeed()),
		fmt.Sprintf("radius=%.1f workers=%d", e.Options().SmoothingRadius, s.Config().Workers),
		"[Space] compute borders",
		"[Right] extract vertices",
		"[C] copy report  [H] toggle HUD",
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := g.hudLines()

	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	// hudBuf is screen/hudScale.
	bufH := float32(g.height / hudScale)
	bx := float32(4)
	by := bufH - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1, 1.0, color.RGBA{R: 80, G: 140, B: 80, A: 80}, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
