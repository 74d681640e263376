// Package simerr defines the error taxonomy shared by the simulation packages.
//
// Call sites wrap one of the sentinels with context, e.g.
//
//	fmt.Errorf("gene %q: min %v > max %v: %w", name, min, max, simerr.ErrConfiguration)
//
// and callers match with errors.Is.
package simerr

import "errors"

var (
	// ErrConfiguration reports bad constructor arguments: inverted gene bounds,
	// negative mutation ranges, conflicting neighbor filters, invalid config.
	ErrConfiguration = errors.New("configuration error")

	// ErrRange reports an elevation or moisture value outside [0,1].
	ErrRange = errors.New("range error")

	// ErrOccupancy reports an attempt to put a second organism of a kind on a tile.
	ErrOccupancy = errors.New("occupancy error")

	// ErrInvariant reports a broken structural invariant of the simulation loop
	// (tile cross-reference mismatch, ratio above 1, non-adjacent attack).
	ErrInvariant = errors.New("invariant violation")
)

// IsDefect reports whether err belongs to the defect class (occupancy or
// invariant). Defects are never recovered from inside the tick loop.
func IsDefect(err error) bool {
	return errors.Is(err, ErrOccupancy) || errors.Is(err, ErrInvariant)
}
