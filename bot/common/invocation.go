package common

import (
	"strconv"
	"strings"

	"casinobot/domain/entities"
)

// Invocation is one parsed command with everything the handlers need to know
// about who sent it and where
type Invocation struct {
	Command     string
	Args        []string
	Author      entities.Player
	Mentions    []entities.Player
	ChannelID   string
	ChannelName string
	IsAdmin     bool
	RoleNames   []string
}

// HasRole reports whether the author holds a role with exactly this name
func (inv *Invocation) HasRole(name string) bool {
	for _, r := range inv.RoleNames {
		if r == name {
			return true
		}
	}
	return false
}

// Target returns the first mentioned player
func (inv *Invocation) Target() (entities.Player, bool) {
	if len(inv.Mentions) == 0 {
		return entities.Player{}, false
	}
	return inv.Mentions[0], true
}

// PlainArgs returns the arguments that are not user mentions
func (inv *Invocation) PlainArgs() []string {
	out := make([]string, 0, len(inv.Args))
	for _, a := range inv.Args {
		if !IsMentionToken(a) {
			out = append(out, a)
		}
	}
	return out
}

// PlainArg returns the i-th non-mention argument
func (inv *Invocation) PlainArg(i int) (string, bool) {
	args := inv.PlainArgs()
	if i < 0 || i >= len(args) {
		return "", false
	}
	return args[i], true
}

// AmountArg parses the i-th non-mention argument as an amount. A missing argument
// yields def; a present but unparsable one is a validation error.
func (inv *Invocation) AmountArg(i int, def int64) (int64, error) {
	raw, ok := inv.PlainArg(i)
	if !ok {
		return def, nil
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, entities.NewValidationError(entities.ErrInvalidAmount, raw)
	}
	return amount, nil
}

// IsMentionToken reports whether s is a user mention such as <@123> or <@!123>
func IsMentionToken(s string) bool {
	if !strings.HasPrefix(s, "<@") || !strings.HasSuffix(s, ">") {
		return false
	}
	id := strings.TrimPrefix(strings.TrimSuffix(s[2:], ">"), "!")
	if id == "" {
		return false
	}
	_, err := strconv.ParseUint(id, 10, 64)
	return err == nil
}
