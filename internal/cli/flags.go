// Package cli holds the flags shared by the pass-sense commands.
package cli

import (
	"flag"
	"log"
	"math"
	"time"

	"github.com/Garsondee/Pass-Sense/internal/pass"
)

// Flags are the tuning flags every command accepts.
type Flags struct {
	ConfigPath string
	Strategy   string

	ideal       *float64
	variance    *float64
	clearance   *float64
	minGain     *float64
	stalenessMs *float64
}

// Register adds the shared flags to fs.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "tuning", "configs/pass.json", "path to tuning/field JSON")
	fs.StringVar(&f.Strategy, "strategy", "best-passage", "ranking mode: best-passage, best-passage-special, pose-to-pass")
	f.ideal = fs.Float64("ideal-distance", math.NaN(), "override ideal pass distance in mm")
	f.variance = fs.Float64("distance-variance", math.NaN(), "override pass distance variance in mm²")
	f.clearance = fs.Float64("interceptor-clearance", math.NaN(), "override interceptor clearance in mm")
	f.minGain = fs.Float64("min-gain", math.NaN(), "override minimum forward gain in mm")
	f.stalenessMs = fs.Float64("staleness-ms", math.NaN(), "override report staleness in ms")
	return f
}

// Overrides collects the override flags that were set.
func (f *Flags) Overrides() pass.TuningOverrides {
	var o pass.TuningOverrides
	set := func(v *float64) *float64 {
		if v == nil || math.IsNaN(*v) {
			return nil
		}
		val := *v
		return &val
	}
	o.IdealPassDistance = set(f.ideal)
	o.PassDistanceVariance = set(f.variance)
	o.InterceptorClearance = set(f.clearance)
	o.MinForwardGain = set(f.minGain)
	if ms := set(f.stalenessMs); ms != nil {
		d := time.Duration(*ms * float64(time.Millisecond))
		o.Staleness = &d
	}
	return o
}

// ParseStrategy returns the selected ranking mode.
func (f *Flags) ParseStrategy() (pass.Strategy, error) {
	return pass.ParseStrategy(f.Strategy)
}

// Resolve loads the config file over the defaults and applies the overrides.
// Unreadable config falls back to the defaults with a log line.
func (f *Flags) Resolve() (pass.Field, pass.Tuning) {
	field, err := pass.LoadField(f.ConfigPath, pass.DefaultField())
	if err != nil {
		log.Printf("field config: %v (using defaults)", err)
	}
	tuning, err := pass.LoadTuning(f.ConfigPath, pass.DefaultTuning())
	if err != nil {
		log.Printf("tuning config: %v (using defaults)", err)
	}
	return field, f.Overrides().Apply(tuning)
}
