package bot

import (
	"casinobot/bot/common"
	"casinobot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// CannedReplies answer any message that mentions the bot
var CannedReplies = []string{
	"The house always wins.",
	"I only speak in chips.",
	"Place your bets.",
	"Ask the dealer, not me.",
	"Have you tried `!work`? Just a thought.",
	"Every table is a lucky table until it isn't.",
}

// Responder picks a canned reply when the bot is mentioned
type Responder struct {
	rng interfaces.Randomizer
}

func NewResponder(rng interfaces.Randomizer) *Responder {
	return &Responder{
		rng: rng,
	}
}

// Reply returns a canned line when botID is among mentions
func (r *Responder) Reply(botID string, mentions []*discordgo.User) (string, bool) {
	for _, u := range mentions {
		if u != nil && u.ID == botID {
			return common.Pick(r.rng, CannedReplies), true
		}
	}
	return "", false
}
