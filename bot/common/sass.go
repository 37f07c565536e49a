package common

import "casinobot/domain/interfaces"

// TooPoor answers a wager or transfer the balance cannot cover
var TooPoor = []string{
	"You’re broke. Emotionally and financially.",
	"That wallet is looking *real* empty.",
	"Nice try, Rockefeller.",
	"You can’t bet what you don’t have.",
	"Even the dealer feels bad for you.",
	"This casino does not accept vibes.",
	"Your balance said no.",
	"Try again after capitalism helps you.",
	"Money required. You lack it.",
	"Come back when you have funds.",
}

// InvalidColor answers a roulette color that is not on the wheel
var InvalidColor = []string{
	"That’s not a roulette color.",
	"Ah yes, the legendary roulette color.",
	"The wheel disagrees.",
	"Try red, black, or green.",
	"Inventing colors won’t help.",
}

// BlackjackSass opens every blackjack hand
var BlackjackSass = []string{
	"Bold move. Let’s see how it ends.",
	"Dealer cracks knuckles.",
	"Ah, confidence.",
	"The cards have opinions.",
	"Time to ruin someone financially.",
}

// Pick returns a uniformly random line
func Pick(rng interfaces.Randomizer, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[rng.IntN(len(lines))]
}
