package bot

import (
	"context"
	"strings"

	"casinobot/application"
	"casinobot/bot/common"
	"casinobot/bot/features/balance"
	"casinobot/bot/features/blackjack"
	"casinobot/bot/features/economy"
	"casinobot/bot/features/heroes"
	"casinobot/bot/features/roulette"
	"casinobot/domain/interfaces"
	"casinobot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// HandlerFunc runs one command and returns the reply text
type HandlerFunc func(ctx context.Context, inv *common.Invocation) (string, error)

// Command binds a name to its handler and gate requirement
type Command struct {
	Name     string
	Handler  HandlerFunc
	Requires Requirement
}

// CommandRecorder counts dispatched commands by result
type CommandRecorder interface {
	RecordCommand(command, result string)
}

// Router parses prefixed messages and dispatches them to registered commands
type Router struct {
	prefix   string
	commands map[string]Command
	gate     *PermissionGate
	rng      interfaces.Randomizer
	recorder CommandRecorder
}

// NewRouter creates an empty router. recorder may be nil.
func NewRouter(prefix string, gate *PermissionGate, rng interfaces.Randomizer, recorder CommandRecorder) *Router {
	return &Router{
		prefix:   prefix,
		commands: make(map[string]Command),
		gate:     gate,
		rng:      rng,
		recorder: recorder,
	}
}

// Register adds a command. Names are matched case-insensitively.
func (r *Router) Register(cmd Command) {
	r.commands[strings.ToLower(cmd.Name)] = cmd
}

// Parse splits a message into a lowercased command name and its arguments
func (r *Router) Parse(content string) (string, []string, bool) {
	if !strings.HasPrefix(content, r.prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, r.prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// Dispatch runs the invocation's command. Unknown commands are ignored and
// report handled=false. Every failure becomes the message the player sees.
func (r *Router) Dispatch(ctx context.Context, inv *common.Invocation) (reply string, handled bool) {
	cmd, ok := r.commands[strings.ToLower(inv.Command)]
	if !ok {
		return "", false
	}

	logger := log.WithFields(log.Fields{
		"command": cmd.Name,
		"user":    inv.Author.Identity,
		"channel": inv.ChannelID,
	})

	err := r.gate.Check(cmd.Requires, inv)
	if err == nil {
		reply, err = cmd.Handler(ctx, inv)
	}
	if err == nil {
		r.record(cmd.Name, observability.CommandResultOK)
		logger.Debug("Command handled")
		return reply, true
	}

	botErr := common.ToBotError(err, r.rng)
	if botErr.IsSystem() {
		r.record(cmd.Name, observability.CommandResultError)
		logger.WithError(err).Error(botErr.LogMessage)
	} else {
		r.record(cmd.Name, observability.CommandResultRejected)
		logger.WithError(err).Debug("Command rejected")
	}
	return botErr.UserMessage, true
}

func (r *Router) record(command, result string) {
	if r.recorder != nil {
		r.recorder.RecordCommand(command, result)
	}
}

// NewCommandRouter builds a router with every casino command registered
func NewCommandRouter(cfg Config, casino *application.Casino, table *application.BlackjackTable, rng interfaces.Randomizer, recorder CommandRecorder) *Router {
	router := NewRouter(cfg.CommandPrefix, NewPermissionGate(cfg.CasinoChannelName, cfg.MintRoleName), rng, recorder)

	balanceFeature := balance.New(casino)
	economyFeature := economy.New(casino, cfg.CommandPrefix)
	rouletteFeature := roulette.New(casino)
	blackjackFeature := blackjack.New(table, rng, cfg.CommandPrefix)
	heroesFeature := heroes.New(rng)

	for _, cmd := range []Command{
		{Name: "balance", Handler: balanceFeature.HandleBalance},
		{Name: "work", Handler: economyFeature.HandleWork, Requires: RequireCasinoChannel},
		{Name: "roulette", Handler: rouletteFeature.HandleRoulette, Requires: RequireCasinoChannel},
		{Name: "blackjack", Handler: blackjackFeature.HandleBlackjack, Requires: RequireCasinoChannel},
		{Name: "hit", Handler: blackjackFeature.HandleHit},
		{Name: "stand", Handler: blackjackFeature.HandleStand},
		{Name: "give", Handler: economyFeature.HandleGive},
		{Name: "pickpocket", Handler: economyFeature.HandlePickpocket},
		{Name: "adminAbuse", Handler: economyFeature.HandleMint, Requires: RequireMintRole},
		{Name: "pickHero", Handler: heroesFeature.HandlePickHero},
	} {
		router.Register(cmd)
	}

	return router
}
