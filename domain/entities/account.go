package entities

// Account is a player's row in the ledger
type Account struct {
	Identity    string `json:"-"`
	DisplayName string `json:"name"`
	Balance     int64  `json:"balance"`
	Version     int64  `json:"-"` // Bumped on every persisted update
}

// CanAfford checks if the account balance covers an amount
func (a *Account) CanAfford(amount int64) bool {
	return a.Balance >= amount
}

// ValidateWager checks that a wager is positive and affordable
func (a *Account) ValidateWager(amount int64) error {
	if amount <= 0 {
		return NewValidationError(ErrInvalidAmount, "wager must be positive")
	}
	if !a.CanAfford(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// Ledger maps player identity to account
type Ledger map[string]*Account

// Clone returns a deep copy of the ledger
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for id, acct := range l {
		copied := *acct
		out[id] = &copied
	}
	return out
}
