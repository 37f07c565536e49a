package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// NoTextPlaceholder stands in for a direct message with only attachments
const NoTextPlaceholder = "*[No text]*"

// ChannelSender posts a plain message to a channel
type ChannelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DMRelay forwards direct messages into a guild's casino channel
type DMRelay struct {
	sender      ChannelSender
	guilds      func() []*discordgo.Guild
	guildID     string // Only this guild receives relays when set
	channelName string
}

// NewDMRelay creates a relay. guilds lists the guilds the bot has joined, in join order.
func NewDMRelay(sender ChannelSender, guilds func() []*discordgo.Guild, guildID, channelName string) *DMRelay {
	return &DMRelay{
		sender:      sender,
		guilds:      guilds,
		guildID:     guildID,
		channelName: channelName,
	}
}

// Forward posts the text, then one message per attachment URL, to the first
// eligible guild's channel. It reports false when no guild has the channel.
func (r *DMRelay) Forward(content string, attachmentURLs []string) (bool, error) {
	channelID, ok := r.findChannel()
	if !ok {
		log.WithField("channel", r.channelName).Debug("No guild channel to relay direct message to")
		return false, nil
	}

	if content == "" {
		content = NoTextPlaceholder
	}
	if _, err := r.sender.ChannelMessageSend(channelID, content); err != nil {
		return true, fmt.Errorf("failed to relay message: %w", err)
	}
	for _, url := range attachmentURLs {
		if _, err := r.sender.ChannelMessageSend(channelID, url); err != nil {
			return true, fmt.Errorf("failed to relay attachment: %w", err)
		}
	}
	return true, nil
}

func (r *DMRelay) findChannel() (string, bool) {
	for _, guild := range r.guilds() {
		if r.guildID != "" && guild.ID != r.guildID {
			continue
		}
		for _, ch := range guild.Channels {
			if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == r.channelName {
				return ch.ID, true
			}
		}
	}
	return "", false
}
