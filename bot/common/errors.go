package common

import (
	"errors"
	"fmt"

	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
)

// Fixed user messages
const (
	MsgWrongChannel   = "🎰 Take it to the casino channel."
	MsgBotTarget      = "Bots do not need money. They need therapy."
	MsgBadAmount      = "Nice try."
	MsgGameInProgress = "Finish your current game first."
	MsgNoActiveGame   = "You’re not playing blackjack."
	MsgUnknownRole    = "Tank, Damage, or Support. Choose wisely."
	MsgNotAllowed     = "No"
	MsgCorruptLedger  = "🔒 The casino books are damaged. An admin has to look at them before anyone plays."
	MsgStaleWrite     = "The books changed while you were playing. Try again."
	MsgSystemError    = "❌ Something went wrong. Please try again later."
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to Discord user
	LogMessage  string // Internal message for logging
	Err         error  // Underlying error
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// IsSystem reports whether the error was unexpected and should be logged at error level
func (e *BotError) IsSystem() bool {
	return e.UserMessage == MsgSystemError || e.UserMessage == MsgCorruptLedger
}

// NewUserError creates an error for user-caused issues (validation, insufficient funds, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// NewSystemError creates an error for system issues (storage, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: MsgSystemError,
		LogMessage:  logMessage,
		Err:         err,
	}
}

// ToBotError maps a domain error to the message the player sees. BotErrors pass through.
func ToBotError(err error, rng interfaces.Randomizer) *BotError {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr
	}

	user := func(msg string) *BotError {
		return &BotError{UserMessage: msg, LogMessage: "command rejected", Err: err}
	}

	switch {
	case errors.Is(err, entities.ErrInsufficientFunds):
		return user(Pick(rng, TooPoor))
	case errors.Is(err, entities.ErrInvalidColor):
		return user(Pick(rng, InvalidColor))
	case errors.Is(err, entities.ErrInvalidAmount):
		return user(MsgBadAmount)
	case errors.Is(err, entities.ErrBotTarget):
		return user(MsgBotTarget)
	case errors.Is(err, entities.ErrUnknownRole):
		return user(MsgUnknownRole)
	case errors.Is(err, entities.ErrWrongChannel):
		return user(MsgWrongChannel)
	case errors.Is(err, entities.ErrGameInProgress):
		return user(MsgGameInProgress)
	case errors.Is(err, entities.ErrNoActiveGame):
		return user(MsgNoActiveGame)
	case errors.Is(err, entities.ErrStaleWrite):
		return user(MsgStaleWrite)
	case errors.Is(err, entities.ErrStorageCorrupted):
		return &BotError{UserMessage: MsgCorruptLedger, LogMessage: "ledger storage is corrupted", Err: err}
	case entities.IsValidation(err):
		return user(MsgBadAmount)
	}

	return NewSystemError(err, "unexpected error in command")
}
