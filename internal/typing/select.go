package typing

import "serotyper/internal/blast"

// State is the terminal state of best-hit selection.
type State string

const (
	Unresolved State = "unresolved" // no hit survived filtering
	Unique     State = "unique"     // exactly one hit survived
	Contested  State = "contested"  // several hits survived; highest score won
)

// Selection is the outcome of Select. Pos is the index of the winner in the
// filtered slice, -1 when unresolved.
type Selection struct {
	State State
	Hit   blast.Hit
	Pos   int
}

// Select picks the hit that determines the call. With several hits the
// highest Score wins; among equal scores the earliest hit wins.
func Select(hits []blast.Hit) Selection {
	switch len(hits) {
	case 0:
		return Selection{State: Unresolved, Pos: -1}
	case 1:
		return Selection{State: Unique, Hit: hits[0], Pos: 0}
	}
	best := 0
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[best].Score {
			best = i
		}
	}
	return Selection{State: Contested, Hit: hits[best], Pos: best}
}
