package cli

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Garsondee/Pass-Sense/internal/pass"
)

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := Register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return f
}

func TestFlags_UnsetOverridesAreNil(t *testing.T) {
	o := parse(t).Overrides()
	if o.IdealPassDistance != nil || o.PassDistanceVariance != nil || o.InterceptorClearance != nil ||
		o.MinForwardGain != nil || o.Staleness != nil {
		t.Fatalf("expected no overrides, got %+v", o)
	}
}

func TestFlags_Overrides(t *testing.T) {
	o := parse(t, "-ideal-distance", "1800", "-min-gain", "0", "-staleness-ms", "2500").Overrides()
	if o.IdealPassDistance == nil || *o.IdealPassDistance != 1800 {
		t.Fatalf("ideal distance not set: %+v", o)
	}
	if o.MinForwardGain == nil || *o.MinForwardGain != 0 {
		t.Fatalf("zero gain must still count as set: %+v", o)
	}
	if o.Staleness == nil || *o.Staleness != 2500*time.Millisecond {
		t.Fatalf("staleness not converted: %+v", o.Staleness)
	}
}

func TestFlags_ParseStrategy(t *testing.T) {
	s, err := parse(t, "-strategy", "pose-to-pass").ParseStrategy()
	if err != nil || s != pass.StrategyPoseToPass {
		t.Fatalf("got %v err=%v", s, err)
	}
	if _, err := parse(t, "-strategy", "hoof-it").ParseStrategy(); err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
}

func TestFlags_ResolveLayersFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pass.json")
	body := `{"tuning": {"idealPassDistance": 2500, "interceptorClearance": 650}, "field": {"xOpponentPenaltyMark": 3000}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	field, tuning := parse(t, "-tuning", path, "-ideal-distance", "1500").Resolve()
	if tuning.IdealPassDistance != 1500 {
		t.Fatalf("flag should win over the file, got %.0f", tuning.IdealPassDistance)
	}
	if tuning.InterceptorClearance != 650 {
		t.Fatalf("file value lost, got %.0f", tuning.InterceptorClearance)
	}
	if field.XOpponentPenaltyMark != 3000 || field.XOpponentGroundLine != pass.DefaultField().XOpponentGroundLine {
		t.Fatalf("unexpected field %+v", field)
	}
}

func TestFlags_ResolveMissingFileUsesDefaults(t *testing.T) {
	field, tuning := parse(t, "-tuning", filepath.Join(t.TempDir(), "absent.json")).Resolve()
	if field != pass.DefaultField() || tuning != pass.DefaultTuning() {
		t.Fatalf("expected defaults, got %+v %+v", field, tuning)
	}
}
