// Package sim drives the pass evaluator the way a robot framework would: it
// owns the world state, advances it cycle by cycle, and keeps the last chosen
// target for display.
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Garsondee/Pass-Sense/internal/pass"
)

const (
	defaultCycleTime   = 100 * time.Millisecond
	defaultJitter      = 40.0 // mm per cycle, standard deviation
	defaultRefreshRate = 0.3  // chance per cycle that a teammate report arrives
	obstacleRadius     = 150.0
	ballOffset         = 120.0 // ball distance in front of the passer
)

// World is a headless, seeded world that produces one snapshot per cycle and
// evaluates it.
type World struct {
	Field     pass.Field
	Tuning    pass.Tuning
	Strategy  pass.Strategy
	Passer    pass.Pose
	Ball      pass.Vec2
	Teammates []pass.Teammate
	Obstacles []pass.Obstacle
	Log       *DecisionLog
	Cycle     int

	CycleTime   time.Duration
	Jitter      float64
	RefreshRate float64

	// Outputs of the latest cycle. LastTarget is kept for display only and
	// never feeds back into a decision.
	LastTarget  pass.Vec2
	LastOption  pass.PassOption
	LastSearch  pass.SearchResult
	HasDecision bool

	eval    *pass.Evaluator
	rng     *rand.Rand
	ballSet bool
}

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optInfra    optionKind = iota // seed, field, tuning, strategy, log: applied first
	optPlayers                    // passer, ball, teammates: applied once the field is known
	optObstacle                   // obstacles: applied last
)

// Option is a builder function applied to a World during construction.
type Option struct {
	kind optionKind
	fn   func(*World)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) Option {
	return Option{optInfra, func(w *World) {
		w.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation
	}}
}

// WithField replaces the default field dimensions.
func WithField(f pass.Field) Option {
	return Option{optInfra, func(w *World) { w.Field = f }}
}

// WithTuning replaces the default tuning.
func WithTuning(t pass.Tuning) Option {
	return Option{optInfra, func(w *World) { w.Tuning = t }}
}

// WithStrategy selects the ranking mode.
func WithStrategy(s pass.Strategy) Option {
	return Option{optInfra, func(w *World) { w.Strategy = s }}
}

// WithVerbose enables the per-teammate utility breakdown in the log.
func WithVerbose(v bool) Option {
	return Option{optInfra, func(w *World) { w.Log = NewDecisionLog(v) }}
}

// WithJitter sets the per-cycle movement noise in mm. Zero freezes the world.
func WithJitter(mm float64) Option {
	return Option{optInfra, func(w *World) { w.Jitter = math.Max(0, mm) }}
}

// WithRefreshRate sets the chance per cycle that a teammate report is renewed.
func WithRefreshRate(p float64) Option {
	return Option{optInfra, func(w *World) { w.RefreshRate = p }}
}

// WithPasser places the passer.
func WithPasser(x, y float64) Option {
	return Option{optPlayers, func(w *World) {
		w.Passer = pass.Pose{Position: pass.Vec2{X: x, Y: y}}
	}}
}

// WithBall places the ball. Without it the ball sits just in front of the
// passer.
func WithBall(x, y float64) Option {
	return Option{optPlayers, func(w *World) {
		w.Ball = pass.Vec2{X: x, Y: y}
		w.ballSet = true
	}}
}

// WithTeammate adds a teammate whose report is age old.
func WithTeammate(number int, x, y float64, age time.Duration) Option {
	return Option{optPlayers, func(w *World) {
		w.Teammates = append(w.Teammates, pass.Teammate{
			Number:      number,
			Pose:        pass.Pose{Position: pass.Vec2{X: x, Y: y}},
			SinceUpdate: age,
		})
	}}
}

// WithRandomPlayers places the passer in its own half and scatters mates
// teammates and hostiles obstacles across the field.
func WithRandomPlayers(mates, hostiles int) Option {
	return Option{optPlayers, func(w *World) {
		w.scatter(mates, hostiles)
	}}
}

// WithHostile adds an opponent obstacle.
func WithHostile(x, y float64) Option {
	return Option{optObstacle, func(w *World) {
		w.addObstacle(x, y, pass.ObstacleHostile)
	}}
}

// WithFriendly adds a friendly obstacle.
func WithFriendly(x, y float64) Option {
	return Option{optObstacle, func(w *World) {
		w.addObstacle(x, y, pass.ObstacleFriendly)
	}}
}

// NewWorld constructs a World from the given options in three ordered passes:
//  1. Infrastructure (seed, field, tuning, strategy, log)
//  2. Players
//  3. Obstacles
func NewWorld(opts ...Option) *World {
	w := &World{
		Field:       pass.DefaultField(),
		Tuning:      pass.DefaultTuning(),
		Log:         NewDecisionLog(false),
		CycleTime:   defaultCycleTime,
		Jitter:      defaultJitter,
		RefreshRate: defaultRefreshRate,
		rng:         rand.New(rand.NewSource(1)), // #nosec G404 -- simulation default
	}
	for _, kind := range []optionKind{optInfra, optPlayers, optObstacle} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(w)
			}
		}
		if kind == optInfra {
			w.eval = pass.NewEvaluator(w.Field, w.Tuning)
			w.Field, w.Tuning = w.eval.Field, w.eval.Tuning
		}
	}
	if !w.ballSet {
		w.Ball = w.ballAtFeet()
	}
	return w
}

// Evaluator returns the evaluator bound to the world's field and tuning.
func (w *World) Evaluator() *pass.Evaluator { return w.eval }

// SetStrategy switches the ranking mode for subsequent cycles.
func (w *World) SetStrategy(s pass.Strategy) { w.Strategy = s }

func (w *World) ballAtFeet() pass.Vec2 {
	dir := pass.Vec2{X: math.Cos(w.Passer.Rotation), Y: math.Sin(w.Passer.Rotation)}
	return w.Field.Clamp(w.Passer.Position.Add(dir.Scale(ballOffset)))
}

func (w *World) addObstacle(x, y float64, kind pass.ObstacleKind) {
	w.Obstacles = append(w.Obstacles, pass.Obstacle{
		Center: pass.Vec2{X: x, Y: y},
		Radius: obstacleRadius,
		Kind:   kind,
	})
}

func (w *World) randomPoint(xLo, xHi float64) pass.Vec2 {
	return pass.Vec2{
		X: xLo + w.rng.Float64()*(xHi-xLo),
		Y: w.Field.YRightSideline + w.rng.Float64()*(w.Field.YLeftSideline-w.Field.YRightSideline),
	}
}

func (w *World) scatter(mates, hostiles int) {
	gl := w.Field.XOpponentGroundLine
	p := w.randomPoint(-gl*0.8, gl*0.3)
	p.Y *= 0.8
	w.Passer = pass.Pose{Position: p}
	for i := 0; i < mates; i++ {
		w.Teammates = append(w.Teammates, pass.Teammate{
			Number:      i + 2, // the passer is 1
			Pose:        pass.Pose{Position: w.randomPoint(-gl, gl)},
			SinceUpdate: time.Duration(w.rng.Int63n(int64(w.Tuning.Staleness))),
		})
	}
	for i := 0; i < hostiles; i++ {
		c := w.randomPoint(-gl, gl)
		w.addObstacle(c.X, c.Y, pass.ObstacleHostile)
	}
}

// Snapshot returns a copy of the current world state for one decision cycle.
func (w *World) Snapshot() pass.Snapshot {
	return pass.Snapshot{
		Passer:    w.Passer,
		Ball:      w.Ball,
		Obstacles: append([]pass.Obstacle(nil), w.Obstacles...),
		Teammates: append([]pass.Teammate(nil), w.Teammates...),
	}
}

// Step advances the world one cycle and evaluates it.
func (w *World) Step() pass.PassOption {
	w.Cycle++
	w.move()
	w.age()

	snap := w.Snapshot()
	opt := w.eval.Evaluate(w.Strategy, snap)
	w.search(snap)
	w.record(snap, opt)

	w.LastOption = opt
	w.LastTarget = opt.Target
	w.HasDecision = true
	return opt
}

// Run advances n cycles.
func (w *World) Run(n int) {
	for i := 0; i < n; i++ {
		w.Step()
	}
}

func (w *World) nudge(p pass.Vec2) pass.Vec2 {
	if w.Jitter == 0 {
		return p
	}
	p.X += w.rng.NormFloat64() * w.Jitter
	p.Y += w.rng.NormFloat64() * w.Jitter
	return w.Field.Clamp(p)
}

func (w *World) move() {
	if w.Jitter == 0 {
		return
	}
	before := w.Passer.Position
	w.Passer.Position = w.nudge(before)
	w.Ball = w.Field.Clamp(w.Ball.Add(w.Passer.Position.Sub(before)))
	for i := range w.Teammates {
		w.Teammates[i].Pose.Position = w.nudge(w.Teammates[i].Pose.Position)
	}
	for i := range w.Obstacles {
		w.Obstacles[i].Center = w.nudge(w.Obstacles[i].Center)
	}
}

func (w *World) age() {
	for i := range w.Teammates {
		if w.RefreshRate > 0 && w.rng.Float64() < w.RefreshRate {
			w.Teammates[i].SinceUpdate = 0
			continue
		}
		w.Teammates[i].SinceUpdate += w.CycleTime
	}
}

// search reruns the line-of-sight search over the ranked candidates so the
// probes of the last attempt can be shown and failed searches logged.
func (w *World) search(snap pass.Snapshot) {
	cands := w.eval.RankCandidates(snap)
	guards := make([]pass.Vec2, 0, len(cands))
	for _, c := range cands {
		guards = append(guards, c.Position)
	}
	w.LastSearch = pass.SearchResult{Target: w.Field.FarCenter()}
	for _, c := range cands {
		res := pass.SearchPassingLine(w.Field, w.Tuning, snap.Passer.Position, c.Position, snap.Obstacles, guards)
		w.LastSearch = res
		if res.Found {
			return
		}
		w.Log.Add(Entry{Cycle: w.Cycle, Event: EventSearchFallback, Mate: c.Number,
			Value: fmt.Sprintf("no clear line after %d steps", res.Steps), Num: float64(res.Steps)})
	}
}

func (w *World) record(snap pass.Snapshot, opt pass.PassOption) {
	if w.Log.Verbose() {
		for _, m := range snap.Teammates {
			f := w.eval.Factors(snap, m.Pose.Position, m.SinceUpdate)
			w.Log.Add(Entry{Cycle: w.Cycle, Event: EventFactors, Mate: m.Number,
				Value: fmt.Sprintf("dist=%.3f clear=%.3f fresh=%.3f veto=%v", f.Distance, f.Clearance, f.Freshness, f.Vetoed),
				Num:   f.Utility})
		}
	}

	mate := 0
	if opt.HasReceiver {
		mate = opt.Receiver
	}
	w.Log.Add(Entry{Cycle: w.Cycle, Event: EventChoice, Mate: mate,
		Value: fmt.Sprintf("%s -> (%.0f,%.0f) u=%.3f", w.Strategy, opt.Target.X, opt.Target.Y, opt.Utility),
		Num:   opt.Utility})
	if !opt.HasReceiver {
		w.Log.Add(Entry{Cycle: w.Cycle, Event: EventFallback,
			Value: fmt.Sprintf("(%.0f,%.0f)", opt.Target.X, opt.Target.Y), Num: opt.Utility})
	}
	if w.HasDecision && (opt.HasReceiver != w.LastOption.HasReceiver || opt.Receiver != w.LastOption.Receiver) {
		w.Log.Add(Entry{Cycle: w.Cycle, Event: EventReceiverChange, Mate: mate,
			Value: fmt.Sprintf("%s -> %s", optionLabel(w.LastOption), optionLabel(opt))})
	}
}

func mateLabel(n int) string { return fmt.Sprintf("#%d", n) }

func optionLabel(o pass.PassOption) string {
	if !o.HasReceiver {
		return "none"
	}
	return mateLabel(o.Receiver)
}
