// Package dice provides the core randomness abstraction for the Crusade
// combat engine.
package dice

// DefaultSides is the number of faces on the standard combat die.
const DefaultSides = 6

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Roll returns a uniformly distributed result of a single die with the given
// number of faces.
//
// Precondition: src must be non-nil; sides >= 2. Panics with
// "dice: Roll called with sides < 2" on violation.
// Postcondition: Returns a value in [1, sides].
func Roll(src Source, sides int) int {
	if sides < 2 {
		panic("dice: Roll called with sides < 2")
	}
	return src.Intn(sides) + 1
}

// D6 rolls the standard six-sided combat die.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a value in [1, 6].
func D6(src Source) int {
	return Roll(src, DefaultSides)
}
