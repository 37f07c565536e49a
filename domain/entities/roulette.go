package entities

import "strings"

// RouletteColor is a pocket color on the wheel
type RouletteColor string

const (
	RouletteRed   RouletteColor = "red"
	RouletteBlack RouletteColor = "black"
	RouletteGreen RouletteColor = "green"
)

// WheelPositions is the number of pockets; the last one is green
const WheelPositions = 15

// ParseRouletteColor normalizes user input into a color
func ParseRouletteColor(s string) (RouletteColor, error) {
	switch c := RouletteColor(strings.ToLower(strings.TrimSpace(s))); c {
	case RouletteRed, RouletteBlack, RouletteGreen:
		return c, nil
	}
	return "", NewValidationError(ErrInvalidColor, s)
}

// ColorAt maps a wheel position in 1..15 to its color
func ColorAt(position int) RouletteColor {
	switch {
	case position == WheelPositions:
		return RouletteGreen
	case position%2 == 0:
		return RouletteBlack
	default:
		return RouletteRed
	}
}

// Multiplier is the payout multiple of the wager when this color hits
func (c RouletteColor) Multiplier() int64 {
	if c == RouletteGreen {
		return 14
	}
	return 2
}

// RouletteOutcome is a resolved spin, before touching the ledger
type RouletteOutcome struct {
	Chosen   RouletteColor
	Result   RouletteColor
	Position int
	Wager    int64
	Payout   int64 // Zero on a miss
}

// Won reports whether the chosen color hit
func (o RouletteOutcome) Won() bool {
	return o.Payout > 0
}

// NetChange is the ledger delta of the spin, counting the debit
func (o RouletteOutcome) NetChange() int64 {
	return o.Payout - o.Wager
}

// RouletteResult is a spin applied to the ledger
type RouletteResult struct {
	RouletteOutcome
	NewBalance int64
}
