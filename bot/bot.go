package bot

import (
	"context"
	"fmt"
	"strings"

	"casinobot/application"
	"casinobot/bot/common"
	"casinobot/domain/entities"
	"casinobot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token             string
	GuildID           string
	CommandPrefix     string
	CasinoChannelName string
	MintRoleName      string
}

// Bot connects the command router to a Discord session
type Bot struct {
	config    Config
	session   *discordgo.Session
	router    *Router
	relay     *DMRelay
	responder *Responder
}

// New creates a bot with every command registered. Call Open to connect.
func New(config Config, casino *application.Casino, table *application.BlackjackTable, rng interfaces.Randomizer, recorder CommandRecorder) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers

	bot := &Bot{
		config:    config,
		session:   dg,
		router:    NewCommandRouter(config, casino, table, rng, recorder),
		relay:     NewDMRelay(dg, stateGuilds(dg.State), config.GuildID, config.CasinoChannelName),
		responder: NewResponder(rng),
	}

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleMessageCreate)

	return bot, nil
}

// Open connects to the Discord gateway
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	return nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Bot is ready")
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	if m.GuildID == "" {
		urls := make([]string, 0, len(m.Attachments))
		for _, a := range m.Attachments {
			urls = append(urls, a.URL)
		}
		if _, err := b.relay.Forward(m.Content, urls); err != nil {
			log.WithError(err).WithField("user", m.Author.ID).Error("Failed to relay direct message")
		}
	}

	if name, args, ok := b.router.Parse(m.Content); ok {
		inv := b.buildInvocation(s, m, name, args)
		if reply, handled := b.router.Dispatch(context.Background(), inv); handled {
			b.send(s, m.ChannelID, reply)
		}
		return
	}

	if s.State.User == nil {
		return
	}
	if reply, ok := b.responder.Reply(s.State.User.ID, m.Mentions); ok {
		b.send(s, m.ChannelID, reply)
	}
}

func (b *Bot) send(s *discordgo.Session, channelID, content string) {
	if content == "" {
		return
	}
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.WithError(err).WithField("channel", channelID).Error("Failed to send reply")
	}
}

// buildInvocation resolves the channel name, administrator flag, role names and
// mentioned players for a command message
func (b *Bot) buildInvocation(s *discordgo.Session, m *discordgo.MessageCreate, name string, args []string) *common.Invocation {
	inv := &common.Invocation{
		Command:   name,
		Args:      args,
		Author:    playerFromUser(m.Author),
		ChannelID: m.ChannelID,
		Mentions:  mentionedPlayers(args, m.Mentions),
	}

	if ch, err := s.State.Channel(m.ChannelID); err == nil {
		inv.ChannelName = ch.Name
	} else if ch, err := s.Channel(m.ChannelID); err == nil {
		inv.ChannelName = ch.Name
	}

	if m.GuildID == "" {
		return inv
	}

	if perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID); err == nil {
		inv.IsAdmin = perms&discordgo.PermissionAdministrator != 0
	} else {
		log.WithError(err).WithField("user", m.Author.ID).Debug("Could not resolve channel permissions")
	}

	if m.Member != nil {
		for _, roleID := range m.Member.Roles {
			if role, err := s.State.Role(m.GuildID, roleID); err == nil {
				inv.RoleNames = append(inv.RoleNames, role.Name)
			}
		}
	}

	return inv
}

func playerFromUser(u *discordgo.User) entities.Player {
	return entities.Player{
		Identity:    u.ID,
		DisplayName: u.Username,
		Bot:         u.Bot,
	}
}

// mentionedPlayers returns the mentioned users in the order their tokens appear in args
func mentionedPlayers(args []string, users []*discordgo.User) []entities.Player {
	byID := make(map[string]*discordgo.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var players []entities.Player
	for _, arg := range args {
		if !common.IsMentionToken(arg) {
			continue
		}
		id := strings.TrimPrefix(strings.TrimSuffix(arg[2:], ">"), "!")
		if u, ok := byID[id]; ok {
			players = append(players, playerFromUser(u))
		}
	}
	return players
}

// stateGuilds lists the guilds in the session state under its read lock
func stateGuilds(state *discordgo.State) func() []*discordgo.Guild {
	return func() []*discordgo.Guild {
		state.RLock()
		defer state.RUnlock()
		guilds := make([]*discordgo.Guild, 0, len(state.Guilds))
		for _, g := range state.Guilds {
			guilds = append(guilds, &discordgo.Guild{
				ID:       g.ID,
				Name:     g.Name,
				Channels: append([]*discordgo.Channel(nil), g.Channels...),
			})
		}
		return guilds
	}
}
