// Package viz draws the pass evaluator's view of a simulated world with
// ebiten.
package viz

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Pass-Sense/internal/pass"
	"github.com/Garsondee/Pass-Sense/internal/sim"
)

// borderWidth is the pixel gap between the window edge and the field.
const borderWidth = 24

// statusFrames is how long a transient HUD message stays up.
const statusFrames = 120

const (
	centerCircleRadius = 750.0 // mm
	goalHalfWidth      = 800.0 // mm
)

var (
	pitchCol    = color.RGBA{R: 28, G: 92, B: 40, A: 255}
	lineCol     = color.RGBA{R: 230, G: 235, B: 230, A: 200}
	hostileCol  = color.RGBA{R: 200, G: 50, B: 40, A: 255}
	friendlyCol = color.RGBA{R: 40, G: 90, B: 210, A: 255}
	unknownCol  = color.RGBA{R: 140, G: 140, B: 140, A: 255}
	mateCol     = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	passerCol   = color.RGBA{R: 255, G: 230, B: 60, A: 255}
	ballCol     = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	probeCol    = color.RGBA{R: 255, G: 255, B: 255, A: 60}
	targetCol   = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// Config selects the world the visualiser starts with.
type Config struct {
	Seed      int64
	Mates     int
	Hostiles  int
	Strategy  pass.Strategy
	Field     pass.Field
	Tuning    pass.Tuning
	WidthPx   int
	CycleRate float64 // decision cycles per second
}

// Game is the ebiten game that runs and draws one world.
type Game struct {
	cfg   Config
	world *sim.World
	view  view

	paused    bool
	tickAccum float64
	prevKeys  map[ebiten.Key]bool

	face        text.Face
	status      string
	statusTicks int

	// OnCycle, when set, receives the world after every decision cycle.
	OnCycle func(*sim.World)
}

// New builds the game and its first world.
func New(cfg Config) *Game {
	if cfg.WidthPx <= 0 {
		cfg.WidthPx = 1280
	}
	if cfg.CycleRate <= 0 {
		cfg.CycleRate = 10
	}
	if cfg.Field.XOpponentGroundLine <= 0 {
		cfg.Field = pass.DefaultField()
	}
	g := &Game{
		cfg:      cfg,
		view:     newView(cfg.Field, cfg.WidthPx, borderWidth),
		prevKeys: make(map[ebiten.Key]bool),
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
	g.reseed(cfg.Seed)
	return g
}

// World returns the world being shown.
func (g *Game) World() *sim.World { return g.world }

// Size returns the window size that fits the field.
func (g *Game) Size() (int, int) { return g.view.size() }

func (g *Game) reseed(seed int64) {
	g.cfg.Seed = seed
	g.world = sim.NewWorld(
		sim.WithSeed(seed),
		sim.WithField(g.cfg.Field),
		sim.WithTuning(g.cfg.Tuning),
		sim.WithStrategy(g.cfg.Strategy),
		sim.WithRandomPlayers(g.cfg.Mates, g.cfg.Hostiles),
	)
	g.step()
}

func (g *Game) step() {
	g.world.Step()
	if g.OnCycle != nil {
		g.OnCycle(g.world)
	}
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusTicks = statusFrames
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.handleInput()
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	if g.paused {
		return nil
	}
	g.tickAccum += g.cfg.CycleRate / float64(ebiten.TPS())
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.step()
	}
	return nil
}

// pressed reports a key that went down this frame.
func (g *Game) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	if g.pressed(currentKeys, ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if g.pressed(currentKeys, ebiten.KeyN) && g.paused {
		g.step()
	}
	strategyKeys := [...]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}
	for i, k := range strategyKeys {
		if g.pressed(currentKeys, k) {
			g.cfg.Strategy = pass.Strategy(i)
			g.world.SetStrategy(g.cfg.Strategy)
			g.setStatus("strategy: " + g.cfg.Strategy.String())
		}
	}
	if g.pressed(currentKeys, ebiten.KeyR) {
		g.reseed(g.cfg.Seed + 1)
		g.setStatus(fmt.Sprintf("seed: %d", g.cfg.Seed))
	}
	if g.pressed(currentKeys, ebiten.KeyC) {
		if err := clipboard.WriteAll(Report(g.world)); err != nil {
			log.Printf("copy report: %v", err)
			g.setStatus("copy failed")
		} else {
			g.setStatus("report copied")
		}
	}

	g.prevKeys = currentKeys
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.view.size()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 16, B: 12, A: 255})
	g.drawField(screen)
	g.drawSearch(screen)
	g.drawObstacles(screen)
	g.drawCandidates(screen)
	g.drawPlayers(screen)
	g.drawTarget(screen)
	g.drawHUD(screen)
}

func (g *Game) drawField(screen *ebiten.Image) {
	f := g.cfg.Field
	x0, y0 := g.view.toScreen(pass.Vec2{X: -f.XOpponentGroundLine, Y: f.YLeftSideline})
	x1, y1 := g.view.toScreen(pass.Vec2{X: f.XOpponentGroundLine, Y: f.YRightSideline})
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, pitchCol, false)
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 2.0, lineCol, false)

	cx, cy := g.view.toScreen(pass.Vec2{})
	vector.StrokeLine(screen, cx, y0, cx, y1, 1.5, lineCol, false)
	vector.StrokeCircle(screen, cx, cy, g.view.length(centerCircleRadius), 1.5, lineCol, true)

	// Penalty mark and rear edge of the attacking band.
	px, _ := g.view.toScreen(pass.Vec2{X: f.XOpponentPenaltyMark})
	ax, _ := g.view.toScreen(pass.Vec2{X: f.AttackRearX})
	vector.StrokeLine(screen, px, y0, px, y1, 1.0, color.RGBA{R: 230, G: 235, B: 230, A: 60}, false)
	vector.StrokeLine(screen, ax, y0, ax, y1, 1.0, color.RGBA{R: 230, G: 235, B: 230, A: 30}, false)

	gx, gy := g.view.toScreen(f.OpponentGoal())
	half := g.view.length(goalHalfWidth)
	vector.DrawFilledRect(screen, gx-3, gy-half, 6, 2*half, ballCol, false)
}

func (g *Game) drawObstacles(screen *ebiten.Image) {
	for _, o := range g.world.Obstacles {
		x, y := g.view.toScreen(o.Center)
		c := unknownCol
		switch o.Kind {
		case pass.ObstacleHostile:
			c = hostileCol
		case pass.ObstacleFriendly:
			c = friendlyCol
		}
		vector.DrawFilledCircle(screen, x, y, g.view.length(o.Radius), c, true)
	}
}

func (g *Game) drawPlayers(screen *ebiten.Image) {
	r := g.view.length(120)
	for _, m := range g.world.Teammates {
		x, y := g.view.toScreen(m.Pose.Position)
		// Faded by report age.
		fresh := 1 - math.Min(1, float64(m.SinceUpdate)/float64(g.world.Tuning.Staleness))
		c := color.NRGBA{R: mateCol.R, G: mateCol.G, B: mateCol.B, A: uint8(80 + 175*fresh)}
		vector.DrawFilledCircle(screen, x, y, r, c, true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", m.Number), int(x)+int(r)+2, int(y)-8)
	}
	px, py := g.view.toScreen(g.world.Passer.Position)
	vector.DrawFilledCircle(screen, px, py, r, passerCol, true)
	bx, by := g.view.toScreen(g.world.Ball)
	vector.DrawFilledCircle(screen, bx, by, g.view.length(50)+1, ballCol, true)
}

// drawCandidates draws ball-to-mate and ball-to-through arrows coloured by
// utility.
func (g *Game) drawCandidates(screen *ebiten.Image) {
	snap := g.world.Snapshot()
	for _, o := range g.world.Evaluator().SpecialOptions(snap) {
		g.arrow(screen, snap.Ball, o.Direct, UtilityColor(o.DirectUtility))
		g.arrow(screen, snap.Ball, o.Through, UtilityColor(o.ThroughUtility))
	}
}

func (g *Game) drawSearch(screen *ebiten.Image) {
	res := g.world.LastSearch
	if res.Steps == 0 {
		return
	}
	px, py := g.view.toScreen(g.world.Passer.Position)
	lx, ly := g.view.toScreen(res.Left)
	rx, ry := g.view.toScreen(res.Right)
	vector.StrokeLine(screen, px, py, lx, ly, 1.0, probeCol, true)
	vector.StrokeLine(screen, px, py, rx, ry, 1.0, probeCol, true)
}

func (g *Game) drawTarget(screen *ebiten.Image) {
	if !g.world.HasDecision {
		return
	}
	x, y := g.view.toScreen(g.world.LastTarget)
	d := g.view.length(100) + 2
	vector.StrokeLine(screen, x-d, y-d, x+d, y+d, 2.0, targetCol, true)
	vector.StrokeLine(screen, x-d, y+d, x+d, y-d, 2.0, targetCol, true)
	vector.StrokeCircle(screen, x, y, d*1.4, 1.5, targetCol, true)
}

func (g *Game) arrow(screen *ebiten.Image, from, to pass.Vec2, c color.RGBA) {
	x0, y0 := g.view.toScreen(from)
	x1, y1 := g.view.toScreen(to)
	vector.StrokeLine(screen, x0, y0, x1, y1, 2.0, c, true)

	ang := math.Atan2(float64(y1-y0), float64(x1-x0))
	const head = 8.0
	for _, side := range []float64{-0.5, 0.5} {
		a := ang + math.Pi + side
		vector.StrokeLine(screen, x1, y1,
			x1+float32(head*math.Cos(a)), y1+float32(head*math.Sin(a)), 2.0, c, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.world
	opt := w.LastOption
	receiver := "none"
	if opt.HasReceiver {
		receiver = fmt.Sprintf("#%d", opt.Receiver)
	}
	state := "running"
	if g.paused {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("cycle %d  seed %d  %s", w.Cycle, g.cfg.Seed, state),
		fmt.Sprintf("strategy: %s", w.Strategy),
		fmt.Sprintf("target (%.0f,%.0f)  u=%.3f  receiver %s", opt.Target.X, opt.Target.Y, opt.Utility, receiver),
		"[space] pause  [N] step  [1/2/3] strategy  [R] reseed  [C] copy",
	}
	if g.statusTicks > 0 {
		lines = append(lines, g.status)
	}

	const lineH = 15
	const padX = 6
	const padY = 4
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	bx, by := float32(borderWidth+4), float32(borderWidth+4)
	boxW := float32(maxLen*7 + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	vector.DrawFilledRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)

	for i, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(bx)+padX, float64(by)+padY+float64(i*lineH))
		op.ColorScale.ScaleWithColor(lineCol)
		text.Draw(screen, l, g.face, op)
	}
}
