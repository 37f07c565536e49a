package entities

import (
	"errors"
	"fmt"
)

// Validation failures
var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidColor  = errors.New("invalid roulette color")
	ErrSelfTarget    = errors.New("cannot target yourself")
	ErrBotTarget     = errors.New("cannot target a bot")
	ErrUnknownRole   = errors.New("unknown hero role")
	ErrWrongChannel  = errors.New("command not allowed in this channel")
)

// Ledger and session failures
var (
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrGameInProgress    = errors.New("blackjack game already in progress")
	ErrNoActiveGame      = errors.New("no active blackjack game")
	ErrStorageCorrupted  = errors.New("ledger storage is corrupted")
	ErrStaleWrite        = errors.New("ledger was modified concurrently")
	ErrAccountNotFound   = errors.New("account not found")
)

// ValidationError is a bad or missing argument. It never changes state.
type ValidationError struct {
	Reason string
	Err    error
}

// NewValidationError wraps one of the validation sentinels with a reason
func NewValidationError(err error, reason string) *ValidationError {
	return &ValidationError{Reason: reason, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageCorruptionError reports a ledger file that exists but cannot be read
type StorageCorruptionError struct {
	Path string
	Err  error
}

func (e *StorageCorruptionError) Error() string {
	return fmt.Sprintf("ledger %s is corrupted: %v", e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause
func (e *StorageCorruptionError) Unwrap() []error {
	return []error{ErrStorageCorrupted, e.Err}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsSessionConflict reports whether err is a blackjack session conflict
func IsSessionConflict(err error) bool {
	return errors.Is(err, ErrGameInProgress) || errors.Is(err, ErrNoActiveGame)
}
