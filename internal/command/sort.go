package command

import (
	"context"
	"errors"
	"log"
	"strings"

	"bgsbot/internal/core"
	"bgsbot/internal/storage"
)

type SortCommand struct {
	store *storage.Storage
	gate  core.PermissionGate
	subs  *core.SubRouter
}

func NewSort(store *storage.Storage, gate core.PermissionGate) *SortCommand {
	c := &SortCommand{
		store: store,
		gate:  gate,
		subs:  core.NewSubRouter(),
	}
	c.subs.Handle("set", c.set)
	c.subs.Handle("disable", c.disable)
	return c
}

func (c *SortCommand) Name() string { return "sort" }
func (c *SortCommand) Description() string {
	return "Sets or disables the sort order of faction status reports"
}
func (c *SortCommand) Usage() string { return "sort <set <name|influence> <asc|desc>|disable>" }
func (c *SortCommand) Examples() []string {
	return []string{"sort set influence desc", "sort set name asc", "sort disable"}
}

func (c *SortCommand) Run(ctx context.Context, inv *core.Invocation, args string) error {
	return c.subs.Dispatch(ctx, inv, args)
}

func (c *SortCommand) set(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, adminAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) > 3 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseTooManyParams))
	}
	if len(args) < 3 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseNoParams))
	}

	key := strings.ToLower(args[1])
	if key != "name" && key != "influence" {
		return inv.Reply.SendText(ctx, "Sort key must be `name` or `influence`")
	}

	var order int
	switch strings.ToLower(args[2]) {
	case "asc", "ascending":
		order = 1
	case "desc", "descending":
		order = -1
	default:
		return inv.Reply.SendText(ctx, "Sort order must be `asc` or `desc`")
	}

	return c.apply(ctx, inv, key, order)
}

func (c *SortCommand) disable(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, adminAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) != 1 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseTooManyParams))
	}
	return c.apply(ctx, inv, "", 0)
}

func (c *SortCommand) apply(ctx context.Context, inv *core.Invocation, key string, order int) error {
	err := c.store.SetSortPolicy(inv.GuildID, key, order)
	if errors.Is(err, storage.ErrGuildNotConfigured) {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseGuildNotSetup))
	}
	if err != nil {
		log.Printf("[ERR] sort: failed to update policy for guild %s: %v", inv.GuildID, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}
	return inv.Reply.SendText(ctx, core.Response(core.ResponseSuccess))
}
