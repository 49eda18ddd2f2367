// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shader

// Direction selects which side of the threshold is
// discarded when masking points by texture brightness.
type Direction int

// Directions.
const (
	// Discard where the sampled magnitude is greater
	// than the threshold (keeps dark texels).
	DiscardAbove Direction = iota
	// Discard where the sampled magnitude is less
	// than the threshold (keeps bright texels).
	DiscardBelow
)

// Sign returns the value that the shader multiplies the
// signed distance from the threshold by.
func (d Direction) Sign() float32 {
	if d == DiscardBelow {
		return -1
	}
	return 1
}

// Discard reports whether a fragment whose sampled color
// has the given magnitude is discarded.
// It evaluates the same expression as fs_main in the
// points module, so magnitudes equal to the threshold are
// always kept.
func (d Direction) Discard(magnitude, threshold float32) bool {
	return d.Sign()*(magnitude-threshold) > 0
}

func (d Direction) String() string {
	switch d {
	case DiscardAbove:
		return "discard-above"
	case DiscardBelow:
		return "discard-below"
	}
	return "invalid"
}

// Valid reports whether d is a defined Direction.
func (d Direction) Valid() bool { return d == DiscardAbove || d == DiscardBelow }
