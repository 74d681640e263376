package telemetry

import (
	"testing"

	"github.com/pthm-cable/tilelife/components"
)

func TestCollectorCountsAndResets(t *testing.T) {
	c := NewCollector(10, true)

	c.Record(NewBirthEvent(1, 5, 0, components.KindAnimal))
	c.Record(NewBirthEvent(1, 6, 0, components.KindPlant))
	c.Record(NewBirthEvent(2, 7, 6, components.KindPlant))
	c.Record(NewAttackEvent(3, 5, 6, 4))
	c.Record(NewAttackEvent(4, 5, 6, 4))
	c.Record(NewKillEvent(4, 5, 6, components.KindPlant))
	c.Record(NewDrownEvent(5, 5, 2))
	c.Record(NewMoveEvent(6, 5))
	c.Record(NewDeathEvent(4, 6, components.KindPlant, &OrganismRow{Kind: "plant", ID: 6}))

	if c.ShouldFlush(9) {
		t.Error("window should not be full at tick 9")
	}
	if !c.ShouldFlush(10) {
		t.Error("window should be full at tick 10")
	}

	stats := c.Flush(10, Population{
		Animals:        1,
		Plants:         1,
		AnimalEnergies: []float64{40},
		AttackPowers:   []float64{8},
		TotalBorn:      3,
		TotalDied:      1,
	})

	if stats.AnimalBirths != 1 || stats.PlantBirths != 2 || stats.PlantDeaths != 1 {
		t.Errorf("births/deaths = %+v", stats)
	}
	if stats.Attacks != 2 || stats.PlantKills != 1 || stats.KillRate != 0.5 || stats.DamageDealt != 8 {
		t.Errorf("grazing = %+v", stats)
	}
	if stats.Drownings != 1 || stats.Moves != 1 {
		t.Errorf("drownings=%d moves=%d", stats.Drownings, stats.Moves)
	}
	if stats.AnimalEnergyMean != 40 || stats.AttackPowerMean != 8 || stats.TotalBorn != 3 {
		t.Errorf("population = %+v", stats)
	}

	rows := c.DrainDeathRows()
	if len(rows) != 1 || rows[0].ID != 6 {
		t.Errorf("death rows = %+v", rows)
	}
	if len(c.DrainDeathRows()) != 0 {
		t.Error("drain should clear the buffer")
	}

	next := c.Flush(20, Population{})
	if next.WindowStartTick != 10 || next.Attacks != 0 || next.PlantBirths != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollectorWithoutDeathRows(t *testing.T) {
	c := NewCollector(0, false)
	if c.WindowTicks() != 1 {
		t.Errorf("WindowTicks = %d, want 1", c.WindowTicks())
	}
	c.Record(NewDeathEvent(1, 1, components.KindAnimal, &OrganismRow{ID: 1}))
	if len(c.DrainDeathRows()) != 0 {
		t.Error("rows should not be kept")
	}
}
