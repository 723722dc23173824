package pass

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// Tuning holds the read-only constants of the evaluator. Distances are in
// millimetres.
type Tuning struct {
	IdealPassDistance    float64       // peak of the distance response
	PassDistanceVariance float64       // variance of the distance response, mm²
	InterceptorClearance float64       // hostile distance at which a line counts as fully clear
	MinForwardGain       float64       // required gain in goal distance for a pass to count
	Staleness            time.Duration // report age at which freshness reaches 0

	LineClearance          float64 // obstacle distance a search probe line must keep
	BackPassMargin         float64 // base margin around a mate's back on forward passes
	ProbeStep              float64 // lateral widening per search step
	ForwardPassBonus       float64 // x lead added to pose-to-pass targets outside the attacking zone
	ThroughDistance        float64 // through-pass lead for BestPassage
	ThroughDistanceSpecial float64 // through-pass lead for BestPassageSpecial
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		IdealPassDistance:    2000,
		PassDistanceVariance: 1_000_000,
		InterceptorClearance: 500,
		MinForwardGain:       300,
		Staleness:            4 * time.Second,

		LineClearance:          400,
		BackPassMargin:         200,
		ProbeStep:              50,
		ForwardPassBonus:       600,
		ThroughDistance:        400,
		ThroughDistanceSpecial: 300,
	}
}

// SanitizeTuning replaces unusable values with their defaults. Every field
// except MinForwardGain and ForwardPassBonus must be strictly positive; those
// two may be zero.
func SanitizeTuning(t Tuning) Tuning {
	d := DefaultTuning()
	positive := func(v *float64, def float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
			*v = def
		}
	}
	nonNegative := func(v *float64, def float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
			*v = def
		}
	}
	positive(&t.IdealPassDistance, d.IdealPassDistance)
	positive(&t.PassDistanceVariance, d.PassDistanceVariance)
	positive(&t.InterceptorClearance, d.InterceptorClearance)
	nonNegative(&t.MinForwardGain, d.MinForwardGain)
	if t.Staleness <= 0 {
		t.Staleness = d.Staleness
	}
	positive(&t.LineClearance, d.LineClearance)
	positive(&t.BackPassMargin, d.BackPassMargin)
	positive(&t.ProbeStep, d.ProbeStep)
	nonNegative(&t.ForwardPassBonus, d.ForwardPassBonus)
	positive(&t.ThroughDistance, d.ThroughDistance)
	positive(&t.ThroughDistanceSpecial, d.ThroughDistanceSpecial)
	return t
}

// errBadField reports a field section that cannot describe a pitch.
var errBadField = errors.New("invalid field dimensions")

type tuningConfig struct {
	IdealPassDistance      *float64 `json:"idealPassDistance"`
	PassDistanceVariance   *float64 `json:"passDistanceVariance"`
	InterceptorClearance   *float64 `json:"interceptorClearance"`
	MinForwardGain         *float64 `json:"minForwardGain"`
	StalenessMs            *int64   `json:"stalenessMs"`
	LineClearance          *float64 `json:"lineClearance"`
	BackPassMargin         *float64 `json:"backPassMargin"`
	ProbeStep              *float64 `json:"probeStep"`
	ForwardPassBonus       *float64 `json:"forwardPassBonus"`
	ThroughDistance        *float64 `json:"throughDistance"`
	ThroughDistanceSpecial *float64 `json:"throughDistanceSpecial"`
}

type fileConfig struct {
	Tuning *tuningConfig   `json:"tuning"`
	Field  json.RawMessage `json:"field"`
}

// TuningOverrides are optional command-line overrides.
type TuningOverrides struct {
	IdealPassDistance    *float64
	PassDistanceVariance *float64
	InterceptorClearance *float64
	MinForwardGain       *float64
	Staleness            *time.Duration
}

// Apply returns base with every set override applied.
func (o TuningOverrides) Apply(base Tuning) Tuning {
	if o.IdealPassDistance != nil {
		base.IdealPassDistance = *o.IdealPassDistance
	}
	if o.PassDistanceVariance != nil {
		base.PassDistanceVariance = *o.PassDistanceVariance
	}
	if o.InterceptorClearance != nil {
		base.InterceptorClearance = *o.InterceptorClearance
	}
	if o.MinForwardGain != nil {
		base.MinForwardGain = *o.MinForwardGain
	}
	if o.Staleness != nil {
		base.Staleness = *o.Staleness
	}
	return SanitizeTuning(base)
}

func mergeTuning(base Tuning, cfg *tuningConfig) Tuning {
	if cfg == nil {
		return SanitizeTuning(base)
	}
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&base.IdealPassDistance, cfg.IdealPassDistance)
	set(&base.PassDistanceVariance, cfg.PassDistanceVariance)
	set(&base.InterceptorClearance, cfg.InterceptorClearance)
	set(&base.MinForwardGain, cfg.MinForwardGain)
	if cfg.StalenessMs != nil {
		base.Staleness = time.Duration(*cfg.StalenessMs) * time.Millisecond
	}
	set(&base.LineClearance, cfg.LineClearance)
	set(&base.BackPassMargin, cfg.BackPassMargin)
	set(&base.ProbeStep, cfg.ProbeStep)
	set(&base.ForwardPassBonus, cfg.ForwardPassBonus)
	set(&base.ThroughDistance, cfg.ThroughDistance)
	set(&base.ThroughDistanceSpecial, cfg.ThroughDistanceSpecial)
	return SanitizeTuning(base)
}

func readConfig(path string) (*fileConfig, error) {
	if path == "" {
		return nil, nil
	}
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tuning %q: %w", cleanPath, err)
	}
	var cfg fileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse tuning %q: %w", cleanPath, err)
	}
	return &cfg, nil
}

// LoadTuning reads the "tuning" section of the JSON file at path and merges it
// over base. A missing file is not an error. On error the sanitized base is
// returned alongside it.
func LoadTuning(path string, base Tuning) (Tuning, error) {
	cfg, err := readConfig(path)
	if err != nil || cfg == nil {
		return SanitizeTuning(base), err
	}
	return mergeTuning(base, cfg.Tuning), nil
}

// LoadField reads the "field" section of the same file over base. Keys that
// are absent keep their base values.
func LoadField(path string, base Field) (Field, error) {
	cfg, err := readConfig(path)
	if err != nil || cfg == nil || len(cfg.Field) == 0 {
		return base, err
	}
	f := base
	if err := json.Unmarshal(cfg.Field, &f); err != nil {
		return base, fmt.Errorf("parse field %q: %w", filepath.Clean(path), err)
	}
	if !f.Valid() {
		return base, fmt.Errorf("field in %q: ground line %.0f, sidelines %.0f/%.0f: %w",
			filepath.Clean(path), f.XOpponentGroundLine, f.YLeftSideline, f.YRightSideline, errBadField)
	}
	return f, nil
}
