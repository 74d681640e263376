package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/tilelife/config"
	"github.com/pthm-cable/tilelife/telemetry"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	defaults := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(defaults))
	for i := range defaults {
		if math.Abs(back[i]-defaults[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, defaults[i], back[i])
		}
	}

	pv.ApplyToConfig(cfg, defaults)
	got := pv.ExtractFromConfig(cfg)
	if len(got) != pv.Dim() {
		t.Fatalf("ExtractFromConfig returned %d values, want %d", len(got), pv.Dim())
	}
	for i := range got {
		if got[i] != defaults[i] {
			t.Errorf("%s: applied %v, extracted %v", pv.Specs[i].Name, defaults[i], got[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults produce an invalid config: %v", err)
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	v := make([]float64, pv.Dim())
	for i := range v {
		v[i] = -1e6
	}
	for i, c := range pv.Clamp(v) {
		if c != pv.Specs[i].Min {
			t.Errorf("%s clamped to %v, want %v", pv.Specs[i].Name, c, pv.Specs[i].Min)
		}
	}
}

func TestQualityNeedsCoexistence(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	fe := NewFitnessEvaluator(NewParamVector(), 10, []int64{1}, cfg)

	windows := make([]telemetry.WindowStats, 8)
	if q := fe.computeQuality(windows); q != 0 {
		t.Errorf("empty windows quality = %v, want 0", q)
	}

	for i := range windows {
		windows[i] = telemetry.WindowStats{
			Animals:         10,
			Plants:          50,
			AnimalEnergyP50: cfg.Organisms.Animal.MaxEnergy / 2,
			PlantEnergyP50:  cfg.Organisms.Plant.MaxEnergy / 2,
			Attacks:         20,
			KillRate:        0.1,
		}
	}
	if q := fe.computeQuality(windows); math.Abs(q-1) > 1e-9 {
		t.Errorf("ideal windows quality = %v, want 1", q)
	}
}
