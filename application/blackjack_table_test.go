package application_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"casinobot/application"
	"casinobot/domain/entities"
	"casinobot/domain/services"
	"casinobot/domain/testhelpers"
	"casinobot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var card = testhelpers.Card

func TestBlackjackTable_StartStandScenario(t *testing.T) {
	ctx := context.Background()
	ledger, factory := newTestLedger(t, nil)
	rng := testhelpers.NewScriptedRandomizer().
		QueueCards(card("10"), card("7"), card("10", "♥️"), card("6")).
		QueueCards(card("5"))
	casino := application.NewCasino(factory, rng)
	table := application.NewBlackjackTable(factory, rng, nil, 0)
	alice := player("1")

	account, err := casino.Balance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), account.Balance)

	view, err := table.Start(ctx, alice, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(500), view.Balance)
	assert.Equal(t, 17, view.PlayerValue)
	assert.Equal(t, card("10", "♥️"), view.DealerShows)
	assert.Equal(t, int64(500), balanceOf(t, ledger, "1"))

	_, err = table.Start(ctx, alice, 1)
	assert.ErrorIs(t, err, entities.ErrGameInProgress)
	assert.Equal(t, int64(500), balanceOf(t, ledger, "1"), "second start debits nothing")
	assert.Equal(t, 1, table.ActiveSessions())

	result, err := table.Stand(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, entities.BlackjackOutcomeLoss, result.Outcome)
	assert.Equal(t, 21, result.DealerValue)
	assert.Equal(t, int64(-500), result.NetChange())
	assert.Equal(t, int64(500), balanceOf(t, ledger, "1"))
	assert.Zero(t, table.ActiveSessions())

	ints, _ := rng.Remaining()
	assert.Zero(t, ints)
}

func TestBlackjackTable_StandOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		cards       []entities.Card
		wantOutcome entities.BlackjackOutcome
		wantBalance int64
	}{
		{
			name:        "player beats dealer",
			cards:       []entities.Card{card("10"), card("9"), card("10"), card("7")},
			wantOutcome: entities.BlackjackOutcomeWin,
			wantBalance: 1100,
		},
		{
			name:        "dealer busts",
			cards:       []entities.Card{card("10"), card("2"), card("10"), card("6"), card("K")},
			wantOutcome: entities.BlackjackOutcomeWin,
			wantBalance: 1100,
		},
		{
			name:        "push returns the wager",
			cards:       []entities.Card{card("10"), card("8"), card("10"), card("8")},
			wantOutcome: entities.BlackjackOutcomePush,
			wantBalance: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ledger, factory := newTestLedger(t, nil)
			rng := testhelpers.NewScriptedRandomizer().QueueCards(tt.cards...)
			table := application.NewBlackjackTable(factory, rng, nil, 0)

			_, err := table.Start(ctx, player("1"), 100)
			require.NoError(t, err)
			assert.Equal(t, int64(900), balanceOf(t, ledger, "1"))

			result, err := table.Stand(ctx, player("1"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, result.Outcome)
			assert.Equal(t, tt.wantBalance, result.NewBalance)
			assert.Equal(t, tt.wantBalance, balanceOf(t, ledger, "1"))
		})
	}
}

func TestBlackjackTable_HitBustEndsSession(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	settled := make(chan events.GameSettledEvent, 1)
	bus.Subscribe(events.EventTypeGameSettled, func(ctx context.Context, e events.Event) {
		settled <- e.(events.GameSettledEvent)
	})
	ledger, factory := newTestLedger(t, nil)
	rng := testhelpers.NewScriptedRandomizer().
		QueueCards(card("10"), card("6"), card("10"), card("7"), card("K"))
	table := application.NewBlackjackTable(factory, rng, bus, 0)

	_, err := table.Start(ctx, player("1"), 200)
	require.NoError(t, err)

	hit, err := table.Hit(ctx, player("1"))
	require.NoError(t, err)
	assert.True(t, hit.Bust)
	assert.Equal(t, 26, hit.PlayerValue)
	assert.Len(t, hit.Player, 3)
	assert.Zero(t, table.ActiveSessions())
	assert.Equal(t, int64(800), balanceOf(t, ledger, "1"))

	_, err = table.Stand(ctx, player("1"))
	assert.ErrorIs(t, err, entities.ErrNoActiveGame)

	select {
	case e := <-settled:
		assert.Equal(t, string(entities.BlackjackOutcomeBust), e.Outcome)
		assert.Equal(t, int64(200), e.Wager)
	case <-time.After(2 * time.Second):
		t.Fatal("bust not reported")
	}
}

func TestBlackjackTable_HitWithoutBust(t *testing.T) {
	ctx := context.Background()
	_, factory := newTestLedger(t, nil)
	rng := testhelpers.NewScriptedRandomizer().
		QueueCards(card("2"), card("3"), card("10"), card("7"), card("4"))
	table := application.NewBlackjackTable(factory, rng, nil, 0)

	_, err := table.Start(ctx, player("1"), 100)
	require.NoError(t, err)

	hit, err := table.Hit(ctx, player("1"))
	require.NoError(t, err)
	assert.False(t, hit.Bust)
	assert.Equal(t, 9, hit.PlayerValue)
	assert.Equal(t, 1, table.ActiveSessions())
}

func TestBlackjackTable_NoActiveGame(t *testing.T) {
	ctx := context.Background()
	_, factory := newTestLedger(t, nil)
	table := application.NewBlackjackTable(factory, testhelpers.NewScriptedRandomizer(), nil, 0)

	_, err := table.Hit(ctx, player("1"))
	assert.ErrorIs(t, err, entities.ErrNoActiveGame)

	_, err = table.Stand(ctx, player("1"))
	assert.ErrorIs(t, err, entities.ErrNoActiveGame)
}

func TestBlackjackTable_StartRejections(t *testing.T) {
	tests := []struct {
		name    string
		wager   int64
		wantErr error
	}{
		{"zero wager", 0, entities.ErrInvalidAmount},
		{"negative wager", -10, entities.ErrInvalidAmount},
		{"over balance", 1001, entities.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ledger, factory := newTestLedger(t, nil)
			table := application.NewBlackjackTable(factory, testhelpers.NewScriptedRandomizer(), nil, 0)

			_, err := table.Start(ctx, player("1"), tt.wager)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, table.ActiveSessions())
			assert.Equal(t, int64(-1), balanceOf(t, ledger, "1"))
		})
	}
}

func TestBlackjackTable_FailedCommitKeepsState(t *testing.T) {
	ctx := context.Background()
	ledger, fileFactory := newTestLedger(t, nil)
	factory := &failingCommitFactory{inner: fileFactory}
	rng := testhelpers.NewScriptedRandomizer().
		QueueCards(card("10"), card("9"), card("10"), card("7")).
		QueueCards(card("10"), card("9"), card("10"), card("7"))
	table := application.NewBlackjackTable(factory, rng, nil, 0)

	t.Run("start", func(t *testing.T) {
		factory.fail = true
		_, err := table.Start(ctx, player("1"), 100)

		assert.ErrorIs(t, err, errCommitFailed)
		assert.Zero(t, table.ActiveSessions())
		assert.Equal(t, int64(-1), balanceOf(t, ledger, "1"))
	})

	t.Run("stand", func(t *testing.T) {
		factory.fail = false
		_, err := table.Start(ctx, player("1"), 100)
		require.NoError(t, err)

		factory.fail = true
		_, err = table.Stand(ctx, player("1"))
		assert.ErrorIs(t, err, errCommitFailed)
		assert.Equal(t, 1, table.ActiveSessions(), "session survives a failed settle")
		assert.Equal(t, int64(900), balanceOf(t, ledger, "1"))

		sessions := table.Sessions()
		require.Len(t, sessions, 1)
		assert.Len(t, sessions[0].Dealer, 2, "dealer hand untouched")

		factory.fail = false
		result, err := table.Stand(ctx, player("1"))
		require.NoError(t, err)
		assert.Equal(t, entities.BlackjackOutcomeWin, result.Outcome)
		assert.Equal(t, int64(1100), balanceOf(t, ledger, "1"))
		assert.Zero(t, table.ActiveSessions())
	})
}

func TestBlackjackTable_ExpiredSessionIsForfeited(t *testing.T) {
	ctx := context.Background()
	ledger, factory := newTestLedger(t, nil)
	rng := testhelpers.NewScriptedRandomizer().
		QueueCards(card("10"), card("7"), card("10"), card("7")).
		QueueCards(card("10"), card("7"), card("10"), card("7"))
	table := application.NewBlackjackTable(factory, rng, nil, 20*time.Millisecond)

	_, err := table.Start(ctx, player("1"), 100)
	require.NoError(t, err)

	_, err = table.Start(ctx, player("1"), 100)
	require.ErrorIs(t, err, entities.ErrGameInProgress)

	time.Sleep(50 * time.Millisecond)

	view, err := table.Start(ctx, player("1"), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(800), view.Balance, "the abandoned wager is not refunded")
	assert.Equal(t, int64(800), balanceOf(t, ledger, "1"))
	assert.Equal(t, 1, table.ActiveSessions())
}

func TestBlackjackTable_Sessions(t *testing.T) {
	ctx := context.Background()
	_, factory := newTestLedger(t, nil)
	table := application.NewBlackjackTable(factory, services.NewSeededRandomizer(7), nil, 0)

	for _, id := range []string{"3", "1", "2"} {
		_, err := table.Start(ctx, player(id), 10)
		require.NoError(t, err)
	}

	sessions := table.Sessions()
	require.Len(t, sessions, 3)
	assert.Equal(t, "3", sessions[0].Identity)
	for _, s := range sessions {
		assert.Len(t, s.Player, 2)
		assert.Equal(t, int64(10), s.Wager)
	}

	// Returned copies do not alias table state
	sessions[0].Player[0] = card("A")
	sessions[0].Player = append(sessions[0].Player, card("A"))
	assert.Len(t, table.Sessions()[0].Player, 2)
}

func TestBlackjackTable_ConcurrentPlayers(t *testing.T) {
	ctx := context.Background()
	ledger, factory := newTestLedger(t, nil)
	table := application.NewBlackjackTable(factory, services.NewSeededRandomizer(42), nil, 0)

	const players = 20
	var wg sync.WaitGroup
	results := make([]*entities.BlackjackResult, players)
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := player(fmt.Sprint(i))
			if _, err := table.Start(ctx, p, 100); err != nil {
				t.Error(err)
				return
			}
			result, err := table.Stand(ctx, p)
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	assert.Zero(t, table.ActiveSessions())
	for i, result := range results {
		require.NotNil(t, result)
		assert.Equal(t, 1000+result.NetChange(), balanceOf(t, ledger, fmt.Sprint(i)))
	}
}
