package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/tilelife/components"
	"github.com/pthm-cable/tilelife/simerr"
)

var testKind = components.KindConstants{
	MaxHealth:       100,
	MaxEnergy:       100,
	NutritionFactor: 0.5,
	MaintenanceCost: 2,
	WaterDamage:     5,
}

func TestGainEnergyOverflowHeals(t *testing.T) {
	tests := []struct {
		name       string
		start      components.Vitals
		amount     float64
		wantEnergy float64
		wantHealth float64
	}{
		{"below cap", components.Vitals{Health: 50, Energy: 10}, 5, 15, 50},
		{"overflow into health", components.Vitals{Health: 50, Energy: 99}, 5, 100, 54},
		{"health capped", components.Vitals{Health: 98, Energy: 99}, 5, 100, 100},
		{"negative ignored", components.Vitals{Health: 50, Energy: 10}, -3, 10, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.start
			GainEnergy(&v, testKind, tt.amount)
			if v.Energy != tt.wantEnergy || v.Health != tt.wantHealth {
				t.Errorf("got energy=%v health=%v, want energy=%v health=%v",
					v.Energy, v.Health, tt.wantEnergy, tt.wantHealth)
			}
		})
	}
}

func TestSpendEnergyUnderflowHurts(t *testing.T) {
	v := components.Vitals{Health: 50, Energy: 3}
	SpendEnergy(&v, 5)
	if v.Energy != 0 {
		t.Errorf("energy = %v, want 0", v.Energy)
	}
	if v.Health != 48 {
		t.Errorf("health = %v, want 48", v.Health)
	}
}

func TestMaintain(t *testing.T) {
	v := components.Vitals{Health: 10, Energy: 10, Age: 4}
	Maintain(&v, testKind)
	if v.Energy != 8 || v.Age != 5 {
		t.Errorf("after Maintain: %+v", v)
	}
}

func TestRatiosRejectOverflow(t *testing.T) {
	if _, err := HealthRatio(components.Vitals{Health: 101}, testKind); !errors.Is(err, simerr.ErrInvariant) {
		t.Errorf("HealthRatio err = %v, want ErrInvariant", err)
	}
	if _, err := EnergyRatio(components.Vitals{Energy: 100.5}, testKind); !errors.Is(err, simerr.ErrInvariant) {
		t.Errorf("EnergyRatio err = %v, want ErrInvariant", err)
	}

	r, err := HealthRatio(components.Vitals{Health: 25}, testKind)
	if err != nil || math.Abs(r-0.25) > 1e-12 {
		t.Errorf("HealthRatio = %v, %v", r, err)
	}
}

func TestWantsToEat(t *testing.T) {
	tests := []struct {
		v    components.Vitals
		want bool
	}{
		{components.Vitals{Health: 100, Energy: 100}, false},
		{components.Vitals{Health: 99, Energy: 100}, true},
		{components.Vitals{Health: 100, Energy: 0}, true},
	}
	for _, tt := range tests {
		got, err := WantsToEat(tt.v, testKind)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("WantsToEat(%+v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
