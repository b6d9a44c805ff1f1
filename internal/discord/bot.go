// Package discord wires the command framework to a discordgo session.
package discord

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"bgsbot/internal/config"
	"bgsbot/internal/core"
	"bgsbot/internal/report"
	"bgsbot/internal/storage"
	"bgsbot/pkg/retrylimit"
)

// Bot is the Discord front end. Inbound messages that mention the bot are
// parsed into <command> <subcommand> [args...] and dispatched through the
// registry; each invocation gets its own reply sink and role directory.
type Bot struct {
	dg       *discordgo.Session
	store    *storage.Storage
	registry *core.Registry
	cfg      *config.Config
	limiter  *retrylimit.AdaptiveLimiter
	ctx      context.Context
}

func NewBot(cfg *config.Config, store *storage.Storage, registry *core.Registry) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &Bot{
		dg:       dg,
		store:    store,
		registry: registry,
		cfg:      cfg,
		limiter:  retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5),
		ctx:      context.Background(),
	}, nil
}

// Run opens the session and blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onMessageCreate)
	b.dg.AddHandler(b.onGuildCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Closing Discord session...")
	return nil
}

// SendPage sends a report page to an arbitrary channel. Used by the tick
// listener and the auto-report scheduler.
func (b *Bot) SendPage(ctx context.Context, channelID string, page *report.Page) error {
	sink := &ChannelSink{Session: b.dg, ChannelID: channelID, Limiter: b.limiter}
	return sink.SendEmbed(ctx, page)
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] Logged in as %s#%s, serving %d guild(s)",
		r.User.Username, r.User.Discriminator, len(r.Guilds))
}

// onGuildCreate makes sure every guild the bot lands in has a configuration
// row. This is the only path that creates one.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if err := b.store.EnsureGuild(g.ID); err != nil {
		log.Printf("[ERR] Failed to set up guild %s: %v", g.ID, err)
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if s.State.User == nil || m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID == "" {
		return // guild commands only
	}

	mentioned := false
	for _, user := range m.Mentions {
		if user.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return
	}

	content := stripMention(m.Content, s.State.User.ID)
	name, rest := splitCommand(content)
	if name == "" {
		return
	}

	inv := b.invocation(s, m)

	cmd, ok := b.registry.Get(name)
	if !ok {
		if err := inv.Reply.SendText(b.ctx, core.Response(core.ResponseNotACommand)); err != nil {
			log.Printf("[ERR] Failed to send notice: %v", err)
		}
		return
	}

	if err := cmd.Run(b.ctx, inv, rest); err != nil {
		log.Printf("[ERR] Command %s failed: %v", cmd.Name(), err)
	}
}

func (b *Bot) invocation(s *discordgo.Session, m *discordgo.MessageCreate) *core.Invocation {
	var memberRoles []string
	if m.Member != nil {
		memberRoles = m.Member.Roles
	}

	return &core.Invocation{
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		AuthorID:    m.Author.ID,
		MemberRoles: memberRoles,
		IsAdmin:     b.isAdministrator(s, m),
		Reply:       &ChannelSink{Session: s, ChannelID: m.ChannelID, Limiter: b.limiter},
		Roles:       &GuildRoles{Session: s, GuildID: m.GuildID},
	}
}

// isAdministrator reports whether the author carries the platform
// administrator capability: configured developer id, guild owner, or any
// role with the administrator permission.
func (b *Bot) isAdministrator(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if b.cfg.DeveloperID != "" && m.Author.ID == b.cfg.DeveloperID {
		return true
	}

	guild, err := s.State.Guild(m.GuildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(m.GuildID)
		if err != nil {
			return false
		}
	}
	if m.Author.ID == guild.OwnerID {
		return true
	}

	if m.Member == nil {
		return false
	}
	for _, r := range m.Member.Roles {
		role, _ := s.State.Role(m.GuildID, r)
		if role != nil && role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}
	return false
}

// stripMention removes the bot's mention tokens from the message content.
func stripMention(content, botID string) string {
	content = strings.ReplaceAll(content, "<@"+botID+">", "")
	content = strings.ReplaceAll(content, "<@!"+botID+">", "")
	return strings.TrimSpace(content)
}

// splitCommand separates the command name from its raw argument string.
func splitCommand(content string) (name, rest string) {
	parts := strings.SplitN(content, " ", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}
	return name, rest
}
