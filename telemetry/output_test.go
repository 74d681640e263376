package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/tilelife/traits"
)

func TestOptionalCells(t *testing.T) {
	if s, _ := (OptionalInt{}).MarshalCSV(); s != "" {
		t.Errorf("unset int = %q", s)
	}
	if s, _ := (OptionalInt{Value: 12, Valid: true}).MarshalCSV(); s != "12" {
		t.Errorf("int = %q", s)
	}
	if s, _ := (OptionalFloat{Value: 0.25, Valid: true}).MarshalCSV(); s != "0.25" {
		t.Errorf("float = %q", s)
	}
}

func TestRowGeneColumns(t *testing.T) {
	var row OrganismRow
	for _, tr := range traits.All() {
		row.SetGene(tr, float64(tr)+1)
	}
	for _, tr := range traits.All() {
		g := row.Gene(tr)
		if !g.Valid || g.Value != float64(tr)+1 {
			t.Errorf("%s column = %+v", tr, g)
		}
	}
}

func TestOutputManagerWritesHeadersOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om.RunID() == "" {
		t.Error("run id should be set")
	}

	plant := OrganismRow{Kind: "plant", ID: 2, BirthTick: 0, DeathTick: OptionalInt{Value: 7, Valid: true}}
	plant.SetGene(traits.HeightPreference, 0.5)
	animal := OrganismRow{Kind: "animal", ID: 3, AttackPower: OptionalFloat{Value: 9, Valid: true}}

	if err := om.WriteOrganisms([]OrganismRow{plant}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteOrganisms([]OrganismRow{animal}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 100, Plants: 4}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 200, Plants: 5}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkPlantCrash, Tick: 200, Description: "crash"}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "organisms.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("organisms.csv has %d lines, want header + 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "kind,id,birth_tick,death_tick,lifetime_ticks,health") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], "gene_reproduction_chance,gene_energy_to_offspring_ratio") {
		t.Errorf("header should end with the gene columns: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "plant,2,0,7,") {
		t.Errorf("plant row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "animal,3,0,,") {
		t.Errorf("animal row should have an empty death tick: %q", lines[2])
	}

	data, err = os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2", len(lines))
	}
	if !strings.HasPrefix(lines[1], om.RunID()+",100,") {
		t.Errorf("telemetry row = %q", lines[1])
	}
}

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v, %v", om, err)
	}
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}
