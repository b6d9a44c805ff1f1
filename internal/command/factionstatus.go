// Package command implements the bot's chat commands. Each command receives
// its collaborators (fetcher, storage, gate, listener) at construction and
// talks to the platform only through the invocation.
package command

import (
	"context"
	"errors"
	"log"
	"strings"

	"bgsbot/internal/core"
	"bgsbot/internal/ebgs"
	"bgsbot/internal/report"
	"bgsbot/internal/storage"
)

// bgsAccess is the capability set for read-only status commands.
var bgsAccess = []core.Access{core.AccessAdmin, core.AccessBGS, core.AccessForbidden}

// adminAccess is the capability set for configuration commands.
var adminAccess = []core.Access{core.AccessAdmin, core.AccessForbidden}

type FactionStatusCommand struct {
	fetcher *ebgs.Client
	store   *storage.Storage
	gate    core.PermissionGate
	subs    *core.SubRouter
}

func NewFactionStatus(fetcher *ebgs.Client, store *storage.Storage, gate core.PermissionGate) *FactionStatusCommand {
	c := &FactionStatusCommand{
		fetcher: fetcher,
		store:   store,
		gate:    gate,
		subs:    core.NewSubRouter(),
	}
	c.subs.Handle("get", c.get)
	return c
}

func (c *FactionStatusCommand) Name() string        { return "factionstatus" }
func (c *FactionStatusCommand) Description() string { return "Gets the details of a faction" }
func (c *FactionStatusCommand) Usage() string       { return "factionstatus get <faction name>" }
func (c *FactionStatusCommand) Examples() []string {
	return []string{"factionstatus get knights of karma"}
}

func (c *FactionStatusCommand) Run(ctx context.Context, inv *core.Invocation, args string) error {
	return c.subs.Dispatch(ctx, inv, args)
}

func (c *FactionStatusCommand) get(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, bgsAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) < 2 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseNoParams))
	}

	factionName := strings.ToLower(strings.Join(args[1:], " "))

	cfg, found, err := c.store.FindGuild(inv.GuildID)
	if err != nil {
		log.Printf("[ERR] factionstatus: failed to read guild %s: %v", inv.GuildID, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}
	if !found {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseGuildNotSetup))
	}

	spec := report.SortSpec{Key: report.SortKey(cfg.Sort), Order: cfg.SortOrder}

	pages, err := report.FactionReport(ctx, c.fetcher, factionName, spec)
	if errors.Is(err, ebgs.ErrNotFound) {
		return inv.Reply.SendText(ctx, "Faction not found")
	}
	if err != nil {
		log.Printf("[ERR] factionstatus: report for %q failed: %v", factionName, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}

	// Pages go out strictly in order; a failed page is logged and the rest
	// still attempt to send.
	for i := range pages {
		if err := inv.Reply.SendEmbed(ctx, &pages[i]); err != nil {
			log.Printf("[ERR] factionstatus: failed to send page %d/%d for %q: %v", i+1, len(pages), factionName, err)
		}
	}
	return nil
}
