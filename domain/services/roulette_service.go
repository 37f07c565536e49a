package services

import (
	"context"
	"fmt"

	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
	"casinobot/events"
)

// SpinWheel picks a wheel position in 1..15
func SpinWheel(rng interfaces.Randomizer) int {
	return rng.IntN(entities.WheelPositions) + 1
}

// ResolveRoulette settles a wager on a color against a wheel position. It does not touch the ledger.
func ResolveRoulette(wager int64, chosen entities.RouletteColor, position int) entities.RouletteOutcome {
	result := entities.ColorAt(position)
	outcome := entities.RouletteOutcome{
		Chosen:   chosen,
		Result:   result,
		Position: position,
		Wager:    wager,
	}
	if chosen == result {
		outcome.Payout = wager * result.Multiplier()
	}
	return outcome
}

type rouletteService struct {
	accountService interfaces.AccountService
	eventPublisher interfaces.EventPublisher
	rng            interfaces.Randomizer
}

// NewRouletteService creates a new roulette service
func NewRouletteService(accountService interfaces.AccountService, eventPublisher interfaces.EventPublisher, rng interfaces.Randomizer) interfaces.RouletteService {
	return &rouletteService{
		accountService: accountService,
		eventPublisher: eventPublisher,
		rng:            rng,
	}
}

func (s *rouletteService) Play(ctx context.Context, player entities.Player, color entities.RouletteColor, wager int64) (*entities.RouletteResult, error) {
	chosen, err := entities.ParseRouletteColor(string(color))
	if err != nil {
		return nil, err
	}
	if wager <= 0 {
		return nil, entities.NewValidationError(entities.ErrInvalidAmount, "wager must be positive")
	}

	account, err := s.accountService.GetOrCreate(ctx, player.Identity, player.DisplayName)
	if err != nil {
		return nil, err
	}
	if err := account.ValidateWager(wager); err != nil {
		return nil, err
	}

	// The wager leaves the ledger exactly once; a win credits the full payout back
	if err := s.accountService.Debit(ctx, account, wager, entities.TransactionTypeRouletteWager); err != nil {
		return nil, err
	}

	outcome := ResolveRoulette(wager, chosen, SpinWheel(s.rng))
	if outcome.Won() {
		if err := s.accountService.Credit(ctx, account, outcome.Payout, entities.TransactionTypeRoulettePayout); err != nil {
			return nil, err
		}
	}

	result := "loss"
	if outcome.Won() {
		result = "win"
	}
	if err := s.eventPublisher.Publish(events.GameSettledEvent{
		Game:     "roulette",
		Identity: player.Identity,
		Wager:    wager,
		Payout:   outcome.Payout,
		Outcome:  result,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish game settled event: %w", err)
	}

	return &entities.RouletteResult{
		RouletteOutcome: outcome,
		NewBalance:      account.Balance,
	}, nil
}
