package services

import (
	"context"
	"fmt"
	"time"

	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
	"casinobot/events"
)

// DetermineBlackjackOutcome compares final hand values
func DetermineBlackjackOutcome(playerValue, dealerValue int) entities.BlackjackOutcome {
	switch {
	case playerValue > 21:
		return entities.BlackjackOutcomeBust
	case dealerValue > 21 || playerValue > dealerValue:
		return entities.BlackjackOutcomeWin
	case playerValue == dealerValue:
		return entities.BlackjackOutcomePush
	default:
		return entities.BlackjackOutcomeLoss
	}
}

type blackjackService struct {
	accountService interfaces.AccountService
	eventPublisher interfaces.EventPublisher
	dealer         *Dealer
	now            func() time.Time
}

// NewBlackjackService creates a new blackjack service
func NewBlackjackService(accountService interfaces.AccountService, eventPublisher interfaces.EventPublisher, dealer *Dealer) interfaces.BlackjackService {
	return &blackjackService{
		accountService: accountService,
		eventPublisher: eventPublisher,
		dealer:         dealer,
		now:            time.Now,
	}
}

func (s *blackjackService) Open(ctx context.Context, player entities.Player, wager int64) (*entities.BlackjackSession, *entities.Account, error) {
	if wager <= 0 {
		return nil, nil, entities.NewValidationError(entities.ErrInvalidAmount, "wager must be positive")
	}

	account, err := s.accountService.GetOrCreate(ctx, player.Identity, player.DisplayName)
	if err != nil {
		return nil, nil, err
	}
	if err := account.ValidateWager(wager); err != nil {
		return nil, nil, err
	}

	if err := s.accountService.Debit(ctx, account, wager, entities.TransactionTypeBlackjackWager); err != nil {
		return nil, nil, err
	}

	session := &entities.BlackjackSession{
		Identity:  player.Identity,
		Wager:     wager,
		Player:    s.dealer.DrawN(2),
		Dealer:    s.dealer.DrawN(2),
		StartedAt: s.now(),
	}
	return session, account, nil
}

// Settle leaves session untouched so a failed commit can be retried
func (s *blackjackService) Settle(ctx context.Context, session *entities.BlackjackSession, displayName string) (*entities.BlackjackResult, error) {
	dealerHand := s.dealer.PlayOut(session.Dealer)
	playerValue := session.Player.Value()
	dealerValue := dealerHand.Value()

	outcome := DetermineBlackjackOutcome(playerValue, dealerValue)
	payout := session.Wager * outcome.PayoutMultiplier()

	account, err := s.accountService.GetOrCreate(ctx, session.Identity, displayName)
	if err != nil {
		return nil, err
	}
	if payout > 0 {
		if err := s.accountService.Credit(ctx, account, payout, entities.TransactionTypeBlackjackPayout); err != nil {
			return nil, err
		}
	}

	if err := s.eventPublisher.Publish(events.GameSettledEvent{
		Game:     "blackjack",
		Identity: session.Identity,
		Wager:    session.Wager,
		Payout:   payout,
		Outcome:  string(outcome),
	}); err != nil {
		return nil, fmt.Errorf("failed to publish game settled event: %w", err)
	}

	return &entities.BlackjackResult{
		Outcome:     outcome,
		Wager:       session.Wager,
		Payout:      payout,
		Player:      session.Player.Clone(),
		PlayerValue: playerValue,
		Dealer:      dealerHand,
		DealerValue: dealerValue,
		NewBalance:  account.Balance,
	}, nil
}
