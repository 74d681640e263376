// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/tilelife/terrain"

// Kind distinguishes organism types.
type Kind uint8

const (
	KindAnimal Kind = iota
	KindPlant

	// KindCount is the number of organism kinds.
	KindCount
)

// String returns the lowercase kind name used in logs and CSV rows.
func (k Kind) String() string {
	switch k {
	case KindAnimal:
		return "animal"
	case KindPlant:
		return "plant"
	default:
		return "unknown"
	}
}

// Identity holds the immutable bookkeeping of an organism.
type Identity struct {
	ID        uint64
	Kind      Kind
	ParentID  uint64 // 0 for founders
	BirthTick int
	DeathTick int
	Dead      bool
}

// Placement links an organism to the tile it occupies.
// A nil tile means the organism is detached and therefore dead.
type Placement struct {
	Tile *terrain.Tile
}
