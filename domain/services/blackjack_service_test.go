package services

import (
	"context"
	"testing"

	"casinobot/domain/entities"
	"casinobot/domain/testhelpers"
	"casinobot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineBlackjackOutcome(t *testing.T) {
	tests := []struct {
		player, dealer int
		expected       entities.BlackjackOutcome
	}{
		{22, 18, entities.BlackjackOutcomeBust},
		{20, 22, entities.BlackjackOutcomeWin},
		{20, 19, entities.BlackjackOutcomeWin},
		{18, 18, entities.BlackjackOutcomePush},
		{21, 21, entities.BlackjackOutcomePush},
		{17, 20, entities.BlackjackOutcomeLoss},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetermineBlackjackOutcome(tt.player, tt.dealer), "player %d dealer %d", tt.player, tt.dealer)
	}
}

func TestBlackjackService_Open(t *testing.T) {
	ctx := context.Background()
	repo, publisher, accounts := newTestAccounts(t, &entities.Account{Identity: "1", DisplayName: "user1", Balance: 1000})
	rng := testhelpers.NewScriptedRandomizer().QueueCards(
		testhelpers.Card("K"), testhelpers.Card("7", "♥️"), // player
		testhelpers.Card("9", "♦️"), testhelpers.Card("5", "♣️"), // dealer
	)
	service := NewBlackjackService(accounts, publisher, NewDealer(rng))

	session, account, err := service.Open(ctx, player("1"), 100)

	require.NoError(t, err)
	assert.Equal(t, "1", session.Identity)
	assert.Equal(t, int64(100), session.Wager)
	assert.Equal(t, "K♠️ 7♥️", session.Player.String())
	assert.Equal(t, 17, session.Player.Value())
	assert.Equal(t, "9♦️", session.DealerUpCard().String())
	assert.False(t, session.StartedAt.IsZero())
	assert.Equal(t, int64(900), account.Balance)
	assert.Equal(t, int64(900), repo.Balance("1"))

	require.Len(t, publisher.Events, 1)
	change := publisher.Events[0].(events.BalanceChangeEvent)
	assert.Equal(t, entities.TransactionTypeBlackjackWager, change.TransactionType)
	assert.Equal(t, int64(-100), change.ChangeAmount)
}

func TestBlackjackService_Open_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("non positive wager", func(t *testing.T) {
		repo, publisher, accounts := newTestAccounts(t, &entities.Account{Identity: "1", DisplayName: "user1", Balance: 1000})
		service := NewBlackjackService(accounts, publisher, NewDealer(testhelpers.NewScriptedRandomizer()))

		_, _, err := service.Open(ctx, player("1"), 0)

		assert.True(t, entities.IsValidation(err))
		assert.Equal(t, int64(1000), repo.Balance("1"))
	})

	t.Run("wager above balance", func(t *testing.T) {
		repo, publisher, accounts := newTestAccounts(t, &entities.Account{Identity: "1", DisplayName: "user1", Balance: 50})
		service := NewBlackjackService(accounts, publisher, NewDealer(testhelpers.NewScriptedRandomizer()))

		_, _, err := service.Open(ctx, player("1"), 100)

		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
		assert.Equal(t, int64(50), repo.Balance("1"))
		assert.Empty(t, publisher.Events)
	})
}

func TestBlackjackService_Settle(t *testing.T) {
	tests := []struct {
		name        string
		player      entities.Hand
		dealer      entities.Hand
		draws       []entities.Card
		outcome     entities.BlackjackOutcome
		payout      int64
		finalAmount int64
	}{
		{
			name:        "dealer busts",
			player:      entities.Hand{testhelpers.Card("K"), testhelpers.Card("9")},
			dealer:      entities.Hand{testhelpers.Card("10"), testhelpers.Card("6")},
			draws:       []entities.Card{testhelpers.Card("K")},
			outcome:     entities.BlackjackOutcomeWin,
			payout:      200,
			finalAmount: 1100,
		},
		{
			name:        "push",
			player:      entities.Hand{testhelpers.Card("K"), testhelpers.Card("8")},
			dealer:      entities.Hand{testhelpers.Card("10"), testhelpers.Card("8")},
			outcome:     entities.BlackjackOutcomePush,
			payout:      100,
			finalAmount: 1000,
		},
		{
			name:        "dealer higher",
			player:      entities.Hand{testhelpers.Card("K"), testhelpers.Card("6")},
			dealer:      entities.Hand{testhelpers.Card("10"), testhelpers.Card("7")},
			outcome:     entities.BlackjackOutcomeLoss,
			payout:      0,
			finalAmount: 900,
		},
		{
			name:        "dealer draws to a higher total",
			player:      entities.Hand{testhelpers.Card("K"), testhelpers.Card("8")},
			dealer:      entities.Hand{testhelpers.Card("2"), testhelpers.Card("3")},
			draws:       []entities.Card{testhelpers.Card("4"), testhelpers.Card("10")},
			outcome:     entities.BlackjackOutcomeLoss,
			payout:      0,
			finalAmount: 900,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			// Wager already debited: 1000 - 100
			repo, publisher, accounts := newTestAccounts(t, &entities.Account{Identity: "1", DisplayName: "user1", Balance: 900})
			rng := testhelpers.NewScriptedRandomizer().QueueCards(tt.draws...)
			service := NewBlackjackService(accounts, publisher, NewDealer(rng))

			session := &entities.BlackjackSession{Identity: "1", Wager: 100, Player: tt.player, Dealer: tt.dealer}
			dealerBefore := session.Dealer.String()

			result, err := service.Settle(ctx, session, "user1")

			require.NoError(t, err)
			assert.Equal(t, tt.outcome, result.Outcome)
			assert.Equal(t, tt.payout, result.Payout)
			assert.Equal(t, tt.finalAmount, result.NewBalance)
			assert.Equal(t, tt.finalAmount, repo.Balance("1"))
			assert.GreaterOrEqual(t, result.DealerValue, DealerStandValue)
			assert.Contains(t, []int64{-100, 0, 100}, result.NetChange())
			assert.Equal(t, dealerBefore, session.Dealer.String(), "settle must not change the session")

			settled := publisher.Events[len(publisher.Events)-1].(events.GameSettledEvent)
			assert.Equal(t, "blackjack", settled.Game)
			assert.Equal(t, string(tt.outcome), settled.Outcome)
		})
	}
}
