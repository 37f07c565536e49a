package infrastructure

import (
	"context"

	"casinobot/events"

	log "github.com/sirupsen/logrus"
)

// LogEvent writes each committed event at debug level
func LogEvent(ctx context.Context, event events.Event) {
	fields := log.Fields{"eventType": event.Type()}

	switch e := event.(type) {
	case events.AccountCreatedEvent:
		fields["identity"] = e.Identity
		fields["initialBalance"] = e.InitialBalance
	case events.BalanceChangeEvent:
		fields["identity"] = e.Identity
		fields["oldBalance"] = e.OldBalance
		fields["newBalance"] = e.NewBalance
		fields["transactionType"] = e.TransactionType
	case events.GameSettledEvent:
		fields["identity"] = e.Identity
		fields["game"] = e.Game
		fields["wager"] = e.Wager
		fields["payout"] = e.Payout
		fields["outcome"] = e.Outcome
	}

	log.WithFields(fields).Debug("Domain event")
}
