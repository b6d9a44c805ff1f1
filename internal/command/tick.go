package command

import (
	"context"
	"errors"
	"log"

	"bgsbot/internal/core"
	"bgsbot/internal/ebgs"
	"bgsbot/internal/report"
	"bgsbot/internal/storage"
)

type TickCommand struct {
	fetcher   *ebgs.Client
	store     *storage.Storage
	gate      core.PermissionGate
	announcer core.TickAnnouncer
	subs      *core.SubRouter
}

func NewTick(fetcher *ebgs.Client, store *storage.Storage, gate core.PermissionGate, announcer core.TickAnnouncer) *TickCommand {
	c := &TickCommand{
		fetcher:   fetcher,
		store:     store,
		gate:      gate,
		announcer: announcer,
		subs:      core.NewSubRouter(),
	}
	c.subs.Handle("get", c.get)
	c.subs.Handle("detect", c.detect)
	c.subs.Handle("stopdetect", c.stopdetect)
	return c
}

func (c *TickCommand) Name() string { return "tick" }
func (c *TickCommand) Description() string {
	return "Gets the last tick or sets and removes the automatic announcement of the tick"
}
func (c *TickCommand) Usage() string { return "tick <get|detect|stopdetect>" }
func (c *TickCommand) Examples() []string {
	return []string{"tick get", "tick detect", "tick stopdetect"}
}

func (c *TickCommand) Run(ctx context.Context, inv *core.Invocation, args string) error {
	return c.subs.Dispatch(ctx, inv, args)
}

func (c *TickCommand) get(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, bgsAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) != 1 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseTooManyParams))
	}

	tick, err := c.fetcher.LastTick(ctx)
	if err != nil {
		log.Printf("[ERR] tick: failed to fetch last tick: %v", err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}

	page := report.TickPage(tick.Time)
	return inv.Reply.SendEmbed(ctx, &page)
}

func (c *TickCommand) detect(ctx context.Context, inv *core.Invocation, args []string) error {
	return c.setDetection(ctx, inv, args, true)
}

func (c *TickCommand) stopdetect(ctx context.Context, inv *core.Invocation, args []string) error {
	return c.setDetection(ctx, inv, args, false)
}

// setDetection persists the announce flag first; the listener registration
// happens only after the write is confirmed and only if the stored value
// actually changed, so socket membership always mirrors the configuration.
func (c *TickCommand) setDetection(ctx context.Context, inv *core.Invocation, args []string, announce bool) error {
	if err := c.gate.Has(inv, bgsAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) != 1 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseTooManyParams))
	}

	changed, err := c.store.SetAnnounceTick(inv.GuildID, announce)
	if errors.Is(err, storage.ErrGuildNotConfigured) {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseGuildNotSetup))
	}
	if err != nil {
		log.Printf("[ERR] tick: failed to update announce flag for guild %s: %v", inv.GuildID, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}

	if changed {
		if announce {
			c.announcer.AddGuild(inv.GuildID)
		} else {
			c.announcer.RemoveGuild(inv.GuildID)
		}
	}
	return inv.Reply.SendText(ctx, core.Response(core.ResponseSuccess))
}
