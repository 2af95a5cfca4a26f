// Package outcome compares the two sides of a game.
package outcome

import "cmp"

type Outcome string

const (
	First  Outcome = "first"
	Second Outcome = "second"
	Draw   Outcome = "draw"
)

// Classify returns First when a > b, Second when b > a and Draw otherwise.
// The same rule decides actual results (goals) and favorites (market values).
func Classify[T cmp.Ordered](a, b T) Outcome {
	switch {
	case a > b:
		return First
	case b > a:
		return Second
	default:
		return Draw
	}
}

// Flip swaps First and Second, leaving Draw alone
func (o Outcome) Flip() Outcome {
	switch o {
	case First:
		return Second
	case Second:
		return First
	}
	return o
}

// Result is a game outcome seen from one club
type Result string

const (
	Win  Result = "win"
	Loss Result = "loss"
	Tie  Result = "draw"
)

// ForFirst maps an outcome to the result of the first compared side
func (o Outcome) ForFirst() Result {
	switch o {
	case First:
		return Win
	case Second:
		return Loss
	}
	return Tie
}

// ForSecond maps an outcome to the result of the second compared side
func (o Outcome) ForSecond() Result {
	return o.Flip().ForFirst()
}
