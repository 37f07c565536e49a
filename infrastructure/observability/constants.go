package observability

// Metric name prefixes
const (
	MetricPrefix = "casino"
)

// Metric names
const (
	// Discord metrics
	CommandsTotal = MetricPrefix + ".commands.total"

	// Ledger metrics
	AccountsCreatedTotal     = MetricPrefix + ".accounts.created_total"
	BalanceTransactionsTotal = MetricPrefix + ".balance.transactions_total"
	BalanceVolume            = MetricPrefix + ".balance.volume"

	// Game metrics
	GamesSettledTotal       = MetricPrefix + ".games.settled_total"
	GamesWageredTotal       = MetricPrefix + ".games.wagered_total"
	BlackjackSessionsActive = MetricPrefix + ".blackjack.sessions_active"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelType      = "type"
	LabelEventType = "event_type"
	LabelGame      = "game"
	LabelOutcome   = "outcome"
	LabelCommand   = "command"
	LabelResult    = "result"
)

// Command results
const (
	CommandResultOK       = "ok"
	CommandResultRejected = "rejected"
	CommandResultError    = "error"
)
