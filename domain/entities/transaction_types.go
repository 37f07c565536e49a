package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	// Game transactions
	TransactionTypeBlackjackWager  TransactionType = "blackjack_wager"
	TransactionTypeBlackjackPayout TransactionType = "blackjack_payout"
	TransactionTypeRouletteWager   TransactionType = "roulette_wager"
	TransactionTypeRoulettePayout  TransactionType = "roulette_payout"

	// Transfer transactions
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"

	// Theft
	TransactionTypePickpocketGain TransactionType = "pickpocket_gain"
	TransactionTypePickpocketLoss TransactionType = "pickpocket_loss"

	// System transactions
	TransactionTypeInitial TransactionType = "initial"
	TransactionTypeWork    TransactionType = "work"
	TransactionTypeMint    TransactionType = "mint"
)

// IsWager returns true if the transaction stakes money on a game
func (tt TransactionType) IsWager() bool {
	return tt == TransactionTypeBlackjackWager || tt == TransactionTypeRouletteWager
}

// IsPayout returns true if the transaction pays out a game
func (tt TransactionType) IsPayout() bool {
	return tt == TransactionTypeBlackjackPayout || tt == TransactionTypeRoulettePayout
}

// IsTransferType returns true if the transaction type represents a transfer
func (tt TransactionType) IsTransferType() bool {
	return tt == TransactionTypeTransferIn ||
		tt == TransactionTypeTransferOut
}

// IsSystemGenerated returns true if money enters the economy from nowhere
func (tt TransactionType) IsSystemGenerated() bool {
	return tt == TransactionTypeInitial ||
		tt == TransactionTypeWork ||
		tt == TransactionTypeMint
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
