package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"casinobot/domain/entities"
	"casinobot/domain/interfaces"
	"casinobot/domain/services"
	"casinobot/events"

	log "github.com/sirupsen/logrus"
)

// BlackjackTable owns every open blackjack session. One mutex covers the session
// map for the whole command, including its ledger unit of work, and is always
// taken before the ledger.
type BlackjackTable struct {
	mu         sync.Mutex
	sessions   map[string]*entities.BlackjackSession
	uowFactory UnitOfWorkFactory
	dealer     *services.Dealer
	eventBus   *events.Bus
	sessionTTL time.Duration // zero keeps sessions until they finish
	now        func() time.Time
}

// NewBlackjackTable creates an empty table. eventBus may be nil.
func NewBlackjackTable(uowFactory UnitOfWorkFactory, rng interfaces.Randomizer, eventBus *events.Bus, sessionTTL time.Duration) *BlackjackTable {
	return &BlackjackTable{
		sessions:   make(map[string]*entities.BlackjackSession),
		uowFactory: uowFactory,
		dealer:     services.NewDealer(rng),
		eventBus:   eventBus,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Start debits the wager and opens a session. On any failure the ledger is
// unchanged and no session exists.
func (t *BlackjackTable) Start(ctx context.Context, player entities.Player, wager int64) (*entities.BlackjackView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.sessions[player.Identity]; ok {
		if !t.expired(existing) {
			return nil, entities.ErrGameInProgress
		}
		log.WithFields(log.Fields{
			"identity":  player.Identity,
			"wager":     existing.Wager,
			"startedAt": existing.StartedAt,
		}).Info("Abandoned blackjack session expired, wager forfeited")
		delete(t.sessions, player.Identity)
		t.emitSettled(existing, entities.BlackjackOutcomeLoss)
	}

	var session *entities.BlackjackSession
	var account *entities.Account
	err := withUnitOfWork(ctx, t.uowFactory, func(uow UnitOfWork) error {
		var err error
		blackjack := services.NewBlackjackService(accountServiceFor(uow), uow.EventBus(), t.dealer)
		session, account, err = blackjack.Open(ctx, player, wager)
		return err
	})
	if err != nil {
		return nil, err
	}

	session.StartedAt = t.now()
	t.sessions[player.Identity] = session

	return &entities.BlackjackView{
		Wager:       session.Wager,
		Player:      session.Player.Clone(),
		PlayerValue: session.Player.Value(),
		DealerShows: session.DealerUpCard(),
		Balance:     account.Balance,
	}, nil
}

// Hit draws a card for the player. A bust ends the session; the wager is already gone.
func (t *BlackjackTable) Hit(ctx context.Context, player entities.Player) (*entities.BlackjackHitResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, ok := t.sessions[player.Identity]
	if !ok {
		return nil, entities.ErrNoActiveGame
	}

	result := t.dealer.Hit(session)
	if result.Bust {
		delete(t.sessions, player.Identity)
		t.emitSettled(session, entities.BlackjackOutcomeBust)
	}
	return result, nil
}

// Stand plays the dealer out and settles. The session is removed only after the
// ledger commit succeeds; on failure it stays open and unchanged.
func (t *BlackjackTable) Stand(ctx context.Context, player entities.Player) (*entities.BlackjackResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	session, ok := t.sessions[player.Identity]
	if !ok {
		return nil, entities.ErrNoActiveGame
	}

	var result *entities.BlackjackResult
	err := withUnitOfWork(ctx, t.uowFactory, func(uow UnitOfWork) error {
		var err error
		blackjack := services.NewBlackjackService(accountServiceFor(uow), uow.EventBus(), t.dealer)
		result, err = blackjack.Settle(ctx, session, player.DisplayName)
		return err
	})
	if err != nil {
		return nil, err
	}

	delete(t.sessions, player.Identity)
	return result, nil
}

// ActiveSessions returns the number of open games
func (t *BlackjackTable) ActiveSessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Sessions returns copies of the open games ordered by start time
func (t *BlackjackTable) Sessions() []entities.BlackjackSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]entities.BlackjackSession, 0, len(t.sessions))
	for _, s := range t.sessions {
		copied := *s
		copied.Player = s.Player.Clone()
		copied.Dealer = s.Dealer.Clone()
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

func (t *BlackjackTable) expired(session *entities.BlackjackSession) bool {
	return t.sessionTTL > 0 && t.now().Sub(session.StartedAt) > t.sessionTTL
}

// emitSettled reports games that end without a ledger change
func (t *BlackjackTable) emitSettled(session *entities.BlackjackSession, outcome entities.BlackjackOutcome) {
	if t.eventBus == nil {
		return
	}
	t.eventBus.Emit(context.Background(), events.GameSettledEvent{
		Game:     "blackjack",
		Identity: session.Identity,
		Wager:    session.Wager,
		Payout:   0,
		Outcome:  string(outcome),
	})
}
