package economy

import (
	"context"
	"testing"

	"casinobot/bot/common"
	"casinobot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCasino struct {
	mock.Mock
}

func (m *mockCasino) Work(ctx context.Context, player entities.Player) (*entities.WorkResult, error) {
	args := m.Called(ctx, player)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WorkResult), args.Error(1)
}

func (m *mockCasino) Give(ctx context.Context, from, to entities.Player, amount int64) (*entities.TransferResult, error) {
	args := m.Called(ctx, from, to, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransferResult), args.Error(1)
}

func (m *mockCasino) Pickpocket(ctx context.Context, actor, target entities.Player) (*entities.PickpocketResult, error) {
	args := m.Called(ctx, actor, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PickpocketResult), args.Error(1)
}

func (m *mockCasino) Mint(ctx context.Context, caller, target entities.Player, amount int64) (*entities.MintResult, error) {
	args := m.Called(ctx, caller, target, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MintResult), args.Error(1)
}

var (
	alice = entities.Player{Identity: "1", DisplayName: "alice"}
	bob   = entities.Player{Identity: "2", DisplayName: "bob"}
)

func invocation(args []string, mentions ...entities.Player) *common.Invocation {
	return &common.Invocation{Author: alice, Args: args, Mentions: mentions}
}

func userMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	botErr, ok := err.(*common.BotError)
	require.True(t, ok, "expected a BotError, got %T", err)
	return botErr.UserMessage
}

func TestFeature_HandleWork(t *testing.T) {
	ctx := context.Background()
	casino := new(mockCasino)
	casino.On("Work", ctx, alice).Return(&entities.WorkResult{Earned: 75, NewBalance: 1075}, nil)

	reply, err := New(casino, "!").HandleWork(ctx, invocation(nil))

	require.NoError(t, err)
	assert.Equal(t, "🛠 You worked and earned **$75**.", reply)
}

func TestFeature_HandleGive(t *testing.T) {
	ctx := context.Background()

	t.Run("transfer", func(t *testing.T) {
		casino := new(mockCasino)
		casino.On("Give", ctx, alice, bob, int64(300)).
			Return(&entities.TransferResult{Amount: 300, FromBalanceAfter: 700, ToBalanceAfter: 1300}, nil)

		reply, err := New(casino, "!").HandleGive(ctx, invocation([]string{"<@2>", "300"}, bob))

		require.NoError(t, err)
		assert.Equal(t, "💸 **TRANSFER COMPLETE**\nalice → bob\nAmount: **$300**", reply)
		casino.AssertExpectations(t)
	})

	t.Run("usage", func(t *testing.T) {
		casino := new(mockCasino)
		feature := New(casino, "!")

		_, err := feature.HandleGive(ctx, invocation([]string{"300"}))
		assert.Equal(t, "Usage: `!give @user amount`", userMessage(t, err))

		_, err = feature.HandleGive(ctx, invocation([]string{"<@2>"}, bob))
		assert.Equal(t, "Usage: `!give @user amount`", userMessage(t, err))
		casino.AssertNotCalled(t, "Give")
	})

	t.Run("negative amount", func(t *testing.T) {
		casino := new(mockCasino)
		casino.On("Give", ctx, alice, bob, int64(-5)).
			Return(nil, entities.NewValidationError(entities.ErrInvalidAmount, "transfer amount must be positive"))

		_, err := New(casino, "!").HandleGive(ctx, invocation([]string{"<@2>", "-5"}, bob))

		assert.Equal(t, MsgGiveNegative, userMessage(t, err))
	})

	t.Run("insufficient funds passes through", func(t *testing.T) {
		casino := new(mockCasino)
		casino.On("Give", ctx, alice, bob, int64(5000)).Return(nil, entities.ErrInsufficientFunds)

		_, err := New(casino, "!").HandleGive(ctx, invocation([]string{"<@2>", "5000"}, bob))

		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	})
}

func TestFeature_HandlePickpocket(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		casino := new(mockCasino)
		casino.On("Pickpocket", ctx, alice, bob).Return(&entities.PickpocketResult{Success: true, Stolen: 150}, nil)

		reply, err := New(casino, "!").HandlePickpocket(ctx, invocation([]string{"<@2>"}, bob))

		require.NoError(t, err)
		assert.Equal(t, "You stole **$150** from bob.", reply)
	})

	t.Run("caught", func(t *testing.T) {
		casino := new(mockCasino)
		casino.On("Pickpocket", ctx, alice, bob).Return(&entities.PickpocketResult{}, nil)

		reply, err := New(casino, "!").HandlePickpocket(ctx, invocation([]string{"<@2>"}, bob))

		require.NoError(t, err)
		assert.Equal(t, MsgPickpocketCaught, reply)
	})

	t.Run("self", func(t *testing.T) {
		casino := new(mockCasino)
		casino.On("Pickpocket", ctx, alice, alice).
			Return(nil, entities.NewValidationError(entities.ErrSelfTarget, "cannot pickpocket yourself"))

		_, err := New(casino, "!").HandlePickpocket(ctx, invocation([]string{"<@1>"}, alice))

		assert.Equal(t, MsgPickpocketSelf, userMessage(t, err))
	})

	t.Run("usage", func(t *testing.T) {
		_, err := New(new(mockCasino), "$").HandlePickpocket(ctx, invocation(nil))

		assert.Equal(t, "Usage: `$pickpocket @user`", userMessage(t, err))
	})
}

func TestFeature_HandleMint(t *testing.T) {
	ctx := context.Background()
	casino := new(mockCasino)
	casino.On("Mint", ctx, alice, bob, int64(500)).Return(&entities.MintResult{Amount: 500, TargetBalance: 1500}, nil)

	reply, err := New(casino, "!").HandleMint(ctx, invocation([]string{"<@2>", "500"}, bob))

	require.NoError(t, err)
	assert.Equal(t, "💸 **ADMIN ABUSE SUCCESSFUL**\nalice blessed bob\nAmount: **$500**", reply)

	_, err = New(casino, "!").HandleMint(ctx, invocation([]string{"<@2>", "many"}, bob))
	assert.ErrorIs(t, err, entities.ErrInvalidAmount)
}
