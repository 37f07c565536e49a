package entities

// WorkResult is a paid shift
type WorkResult struct {
	Earned     int64
	NewBalance int64
}

// TransferResult is a completed give
type TransferResult struct {
	Amount           int64
	FromBalanceAfter int64
	ToBalanceAfter   int64
}

// PickpocketResult is an attempted theft. Stolen is zero when the attempt failed.
type PickpocketResult struct {
	Success bool
	Stolen  int64
}

// MintResult is a privileged credit
type MintResult struct {
	Amount        int64
	TargetBalance int64
}

// Player identifies who issued or is targeted by a command
type Player struct {
	Identity    string
	DisplayName string
	Bot         bool
}
