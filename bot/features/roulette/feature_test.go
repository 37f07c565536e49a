package roulette

import (
	"context"
	"testing"

	"casinobot/bot/common"
	"casinobot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCasino records the last call and returns a canned result
type fakeCasino struct {
	color  string
	wager  int64
	result *entities.RouletteResult
	err    error
}

func (f *fakeCasino) Roulette(ctx context.Context, player entities.Player, color string, wager int64) (*entities.RouletteResult, error) {
	f.color, f.wager = color, wager
	return f.result, f.err
}

func TestFeature_HandleRoulette(t *testing.T) {
	ctx := context.Background()
	alice := entities.Player{Identity: "1", DisplayName: "alice"}

	t.Run("win with default wager", func(t *testing.T) {
		casino := &fakeCasino{result: &entities.RouletteResult{
			RouletteOutcome: entities.RouletteOutcome{Chosen: entities.RouletteRed, Result: entities.RouletteRed, Position: 1, Wager: 100, Payout: 200},
			NewBalance:      1100,
		}}

		reply, err := New(casino).HandleRoulette(ctx, &common.Invocation{Author: alice, Args: []string{"red"}})

		require.NoError(t, err)
		assert.Equal(t, int64(DefaultWager), casino.wager)
		assert.Equal(t, "red", casino.color)
		assert.Equal(t, "🎉 **RED!** You won **$200**\nBalance: **$1,100**", reply)
	})

	t.Run("loss", func(t *testing.T) {
		casino := &fakeCasino{result: &entities.RouletteResult{
			RouletteOutcome: entities.RouletteOutcome{Chosen: entities.RouletteGreen, Result: entities.RouletteBlack, Position: 2, Wager: 50},
			NewBalance:      950,
		}}

		reply, err := New(casino).HandleRoulette(ctx, &common.Invocation{Author: alice, Args: []string{"green", "50"}})

		require.NoError(t, err)
		assert.Equal(t, int64(50), casino.wager)
		assert.Equal(t, "💀 **BLACK**. You lost **$50**\nBalance: **$950**", reply)
	})

	t.Run("missing color", func(t *testing.T) {
		_, err := New(&fakeCasino{}).HandleRoulette(ctx, &common.Invocation{Author: alice})

		assert.ErrorIs(t, err, entities.ErrInvalidColor)
	})

	t.Run("unparsable amount", func(t *testing.T) {
		_, err := New(&fakeCasino{}).HandleRoulette(ctx, &common.Invocation{Author: alice, Args: []string{"red", "all"}})

		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
	})
}
