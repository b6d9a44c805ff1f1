package command

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"bgsbot/internal/core"
	"bgsbot/internal/report"
	"bgsbot/internal/storage"
)

// AutoReportCommand manages the scheduled faction report configuration: the
// channel announcements go to and the set of factions reported on.
type AutoReportCommand struct {
	store *storage.Storage
	gate  core.PermissionGate
	subs  *core.SubRouter
}

func NewAutoReport(store *storage.Storage, gate core.PermissionGate) *AutoReportCommand {
	c := &AutoReportCommand{
		store: store,
		gate:  gate,
		subs:  core.NewSubRouter(),
	}
	c.subs.Handle("add", c.add)
	c.subs.Handle("remove", c.remove)
	c.subs.Handle("list", c.list)
	c.subs.Handle("channel", c.channel)
	return c
}

func (c *AutoReportCommand) Name() string { return "autoreport" }
func (c *AutoReportCommand) Description() string {
	return "Configures the channel and factions for scheduled status reports"
}
func (c *AutoReportCommand) Usage() string {
	return "autoreport <add|remove> <faction name> | autoreport channel <channel id> | autoreport list"
}
func (c *AutoReportCommand) Examples() []string {
	return []string{
		"autoreport add knights of karma",
		"autoreport remove knights of karma",
		"autoreport channel 123456789012345678",
		"autoreport list",
	}
}

func (c *AutoReportCommand) Run(ctx context.Context, inv *core.Invocation, args string) error {
	return c.subs.Dispatch(ctx, inv, args)
}

func (c *AutoReportCommand) add(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, adminAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) < 2 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseNoParams))
	}

	name := strings.ToLower(strings.Join(args[1:], " "))
	err := c.store.AddAutoReportFaction(inv.GuildID, name)
	if errors.Is(err, storage.ErrGuildNotConfigured) {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseGuildNotSetup))
	}
	if err != nil {
		log.Printf("[ERR] autoreport: failed to add faction %q for guild %s: %v", name, inv.GuildID, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}
	return inv.Reply.SendText(ctx, core.Response(core.ResponseSuccess))
}

func (c *AutoReportCommand) remove(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, adminAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) < 2 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseNoParams))
	}

	name := strings.ToLower(strings.Join(args[1:], " "))
	err := c.store.RemoveAutoReportFaction(inv.GuildID, name)
	if errors.Is(err, storage.ErrGuildNotConfigured) {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseGuildNotSetup))
	}
	if err != nil {
		log.Printf("[ERR] autoreport: failed to remove faction %q for guild %s: %v", name, inv.GuildID, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}
	return inv.Reply.SendText(ctx, core.Response(core.ResponseSuccess))
}

func (c *AutoReportCommand) channel(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, adminAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) > 2 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseTooManyParams))
	}
	if len(args) < 2 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseNoParams))
	}

	err := c.store.SetAnnounceChannel(inv.GuildID, args[1])
	if errors.Is(err, storage.ErrGuildNotConfigured) {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseGuildNotSetup))
	}
	if err != nil {
		log.Printf("[ERR] autoreport: failed to set channel for guild %s: %v", inv.GuildID, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}
	return inv.Reply.SendText(ctx, core.Response(core.ResponseSuccess))
}

func (c *AutoReportCommand) list(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, adminAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) != 1 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseTooManyParams))
	}

	cfg, found, err := c.store.FindGuild(inv.GuildID)
	if err != nil {
		log.Printf("[ERR] autoreport: failed to read guild %s: %v", inv.GuildID, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}
	if !found {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseGuildNotSetup))
	}
	if len(cfg.AutoReportFactions) == 0 {
		return inv.Reply.SendText(ctx, "You don't have any auto-report factions set up")
	}

	channel := cfg.AnnounceChannelID
	if channel == "" {
		channel = "not set"
	}

	page := report.Page{
		Title:     "Auto Report",
		Color:     report.EmbedColor,
		Timestamp: time.Now().UTC(),
		Fields: []report.Field{
			{Title: "Channel", Body: channel},
			{Title: "Factions", Body: strings.Join(cfg.AutoReportFactions, "\n")},
		},
	}
	return inv.Reply.SendEmbed(ctx, &page)
}
