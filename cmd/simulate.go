package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
	"casinobot/domain/services"
)

// SimulationWager is the stake used for every simulated game
const SimulationWager = 100

// RouletteStats is how one color fared over every simulated spin
type RouletteStats struct {
	Color       entities.RouletteColor
	Hits        int
	Probability float64 // Exact hit probability on the wheel
	NetPerSpin  float64 // Mean ledger change per wager of SimulationWager
}

// BlackjackStats is the outcome mix for a player who hits below 17
type BlackjackStats struct {
	Wins       int
	Pushes     int
	Losses     int
	Busts      int
	NetPerGame float64
}

// SimulationReport summarizes a run of simulated games
type SimulationReport struct {
	Trials             int
	Roulette           []RouletteStats
	PositionChiSquared float64 // 14 degrees of freedom
	Blackjack          BlackjackStats
}

// Simulate spins the wheel and plays blackjack trials times each
func Simulate(trials int, rng interfaces.Randomizer) SimulationReport {
	colors := []entities.RouletteColor{entities.RouletteRed, entities.RouletteBlack, entities.RouletteGreen}
	report := SimulationReport{Trials: trials}

	positions := make([]int, entities.WheelPositions+1)
	hits := make(map[entities.RouletteColor]int)
	net := make(map[entities.RouletteColor]int64)
	for i := 0; i < trials; i++ {
		position := services.SpinWheel(rng)
		positions[position]++
		for _, color := range colors {
			outcome := services.ResolveRoulette(SimulationWager, color, position)
			if outcome.Won() {
				hits[color]++
			}
			net[color] += outcome.NetChange()
		}
	}

	pockets := make(map[entities.RouletteColor]int)
	for p := 1; p <= entities.WheelPositions; p++ {
		pockets[entities.ColorAt(p)]++
	}
	for _, color := range colors {
		report.Roulette = append(report.Roulette, RouletteStats{
			Color:       color,
			Hits:        hits[color],
			Probability: float64(pockets[color]) / entities.WheelPositions,
			NetPerSpin:  float64(net[color]) / float64(trials),
		})
	}

	expected := float64(trials) / entities.WheelPositions
	for p := 1; p <= entities.WheelPositions; p++ {
		report.PositionChiSquared += math.Pow(float64(positions[p])-expected, 2) / expected
	}

	dealer := services.NewDealer(rng)
	var blackjackNet int64
	for i := 0; i < trials; i++ {
		player := dealer.PlayOut(dealer.DrawN(2))
		house := dealer.DrawN(2)
		if !player.IsBust() {
			house = dealer.PlayOut(house)
		}

		outcome := services.DetermineBlackjackOutcome(player.Value(), house.Value())
		switch outcome {
		case entities.BlackjackOutcomeWin:
			report.Blackjack.Wins++
		case entities.BlackjackOutcomePush:
			report.Blackjack.Pushes++
		case entities.BlackjackOutcomeBust:
			report.Blackjack.Busts++
		default:
			report.Blackjack.Losses++
		}
		blackjackNet += SimulationWager*outcome.PayoutMultiplier() - SimulationWager
	}
	report.Blackjack.NetPerGame = float64(blackjackNet) / float64(trials)

	return report
}

// Print writes the report as a plain text table
func (r SimulationReport) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Casino simulation: %d trials, wager %d ===\n\n", r.Trials, SimulationWager)

	fmt.Fprintln(w, "Roulette")
	for _, s := range r.Roulette {
		actual := float64(s.Hits) / float64(r.Trials)
		fmt.Fprintf(w, "  %-6s expected %6.2f%% | actual %6.2f%% | net per spin %+7.2f\n",
			s.Color, s.Probability*100, actual*100, s.NetPerSpin)
	}
	fmt.Fprintf(w, "  χ² (positions): %.2f (should be < 23.68 for 95%% confidence with 14 df)\n\n", r.PositionChiSquared)

	b := r.Blackjack
	pct := func(n int) float64 { return float64(n) / float64(r.Trials) * 100 }
	fmt.Fprintln(w, "Blackjack (player hits below 17)")
	fmt.Fprintf(w, "  win %6.2f%% | push %6.2f%% | loss %6.2f%% | bust %6.2f%%\n",
		pct(b.Wins), pct(b.Pushes), pct(b.Losses), pct(b.Busts))
	fmt.Fprintf(w, "  net per game %+7.2f\n", b.NetPerGame)
}

// RunSimulation handles: simulate [trials] [seed]
func RunSimulation(args []string, w io.Writer) error {
	trials := 100000
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("trials must be a positive integer, got %q", args[0])
		}
		trials = n
	}

	rng := services.NewRandomizer()
	if len(args) > 1 {
		seed, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", args[1], err)
		}
		rng = services.NewSeededRandomizer(seed)
	}

	Simulate(trials, rng).Print(w)
	return nil
}
