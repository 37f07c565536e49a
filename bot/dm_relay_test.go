package bot

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	channelID string
	content   string
}

type fakeSender struct {
	sent    []sentMessage
	failAt  int // 1-based send that fails; zero never fails
	sendErr error
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, sentMessage{channelID: channelID, content: content})
	if f.failAt == len(f.sent) {
		return nil, f.sendErr
	}
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func testGuilds() func() []*discordgo.Guild {
	return func() []*discordgo.Guild {
		return []*discordgo.Guild{
			{ID: "g1", Channels: []*discordgo.Channel{
				{ID: "g1-voice", Name: "casino", Type: discordgo.ChannelTypeGuildVoice},
				{ID: "g1-general", Name: "general", Type: discordgo.ChannelTypeGuildText},
			}},
			{ID: "g2", Channels: []*discordgo.Channel{
				{ID: "g2-casino", Name: "casino", Type: discordgo.ChannelTypeGuildText},
			}},
			{ID: "g3", Channels: []*discordgo.Channel{
				{ID: "g3-casino", Name: "casino", Type: discordgo.ChannelTypeGuildText},
			}},
		}
	}
}

func TestDMRelay_Forward(t *testing.T) {
	t.Run("first guild with a casino text channel", func(t *testing.T) {
		sender := &fakeSender{}
		relay := NewDMRelay(sender, testGuilds(), "", "casino")

		relayed, err := relay.Forward("psst", []string{"https://cdn/a.png", "https://cdn/b.png"})

		require.NoError(t, err)
		assert.True(t, relayed)
		assert.Equal(t, []sentMessage{
			{"g2-casino", "psst"},
			{"g2-casino", "https://cdn/a.png"},
			{"g2-casino", "https://cdn/b.png"},
		}, sender.sent)
	})

	t.Run("configured guild", func(t *testing.T) {
		sender := &fakeSender{}
		relay := NewDMRelay(sender, testGuilds(), "g3", "casino")

		_, err := relay.Forward("hi", nil)

		require.NoError(t, err)
		assert.Equal(t, []sentMessage{{"g3-casino", "hi"}}, sender.sent)
	})

	t.Run("configured guild without the channel", func(t *testing.T) {
		sender := &fakeSender{}
		relay := NewDMRelay(sender, testGuilds(), "g1", "casino")

		relayed, err := relay.Forward("hi", nil)

		require.NoError(t, err)
		assert.False(t, relayed)
		assert.Empty(t, sender.sent)
	})

	t.Run("attachment only", func(t *testing.T) {
		sender := &fakeSender{}
		relay := NewDMRelay(sender, testGuilds(), "", "casino")

		_, err := relay.Forward("", []string{"https://cdn/a.png"})

		require.NoError(t, err)
		assert.Equal(t, []sentMessage{
			{"g2-casino", NoTextPlaceholder},
			{"g2-casino", "https://cdn/a.png"},
		}, sender.sent)
	})

	t.Run("send failure stops the relay", func(t *testing.T) {
		sender := &fakeSender{failAt: 1, sendErr: errors.New("rate limited")}
		relay := NewDMRelay(sender, testGuilds(), "", "casino")

		relayed, err := relay.Forward("hi", []string{"https://cdn/a.png"})

		assert.True(t, relayed)
		assert.ErrorContains(t, err, "rate limited")
		assert.Len(t, sender.sent, 1)
	})
}
