package command

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bgsbot/internal/core"
	"bgsbot/internal/report"
	"bgsbot/internal/storage"
)

// roleBindingCommand is the shared add/remove/list shape of the commands
// that manage one of the guild's role bindings. Only the binding's name,
// copy and storage accessors differ between them.
type roleBindingCommand struct {
	store *storage.Storage
	gate  core.PermissionGate
	subs  *core.SubRouter

	name        string
	description string
	listTitle   string
	emptyNotice string
	addRole     func(guildID, roleID string) error
	removeRole  func(guildID, roleID string) error
	boundRoles  func(cfg *storage.GuildConfig) []string
}

func newRoleBindingCommand(c *roleBindingCommand) *roleBindingCommand {
	c.subs = core.NewSubRouter()
	c.subs.Handle("add", c.add)
	c.subs.Handle("remove", c.remove)
	c.subs.Handle("list", c.list)
	return c
}

// NewForbiddenRoles manages the roles barred from using the bot.
func NewForbiddenRoles(store *storage.Storage, gate core.PermissionGate) core.Command {
	return newRoleBindingCommand(&roleBindingCommand{
		store:       store,
		gate:        gate,
		name:        "forbiddenroles",
		description: "Adds, removes or lists the roles that should be forbidden from accessing the bot",
		listTitle:   "Forbidden Roles",
		emptyNotice: "You don't have any forbidden roles set up",
		addRole:     store.AddForbiddenRole,
		removeRole:  store.RemoveForbiddenRole,
		boundRoles:  func(cfg *storage.GuildConfig) []string { return cfg.ForbiddenRolesID },
	})
}

// NewAdminRoles manages the roles granted admin-level bot access.
func NewAdminRoles(store *storage.Storage, gate core.PermissionGate) core.Command {
	return newRoleBindingCommand(&roleBindingCommand{
		store:       store,
		gate:        gate,
		name:        "adminroles",
		description: "Adds, removes or lists the roles that can administer the bot",
		listTitle:   "Admin Roles",
		emptyNotice: "You don't have any admin roles set up",
		addRole:     store.AddAdminRole,
		removeRole:  store.RemoveAdminRole,
		boundRoles:  func(cfg *storage.GuildConfig) []string { return cfg.AdminRolesID },
	})
}

// NewBGSRoles manages the roles granted access to BGS reporting commands.
func NewBGSRoles(store *storage.Storage, gate core.PermissionGate) core.Command {
	return newRoleBindingCommand(&roleBindingCommand{
		store:       store,
		gate:        gate,
		name:        "bgsroles",
		description: "Adds, removes or lists the roles that can use the BGS reporting commands",
		listTitle:   "BGS Roles",
		emptyNotice: "You don't have any BGS roles set up",
		addRole:     store.AddBGSRole,
		removeRole:  store.RemoveBGSRole,
		boundRoles:  func(cfg *storage.GuildConfig) []string { return cfg.BGSRolesID },
	})
}

func (c *roleBindingCommand) Name() string        { return c.name }
func (c *roleBindingCommand) Description() string { return c.description }
func (c *roleBindingCommand) Usage() string {
	return fmt.Sprintf("%s <add|remove|list> <role id>", c.name)
}
func (c *roleBindingCommand) Examples() []string {
	return []string{
		fmt.Sprintf("%s add 123456789012345678", c.name),
		fmt.Sprintf("%s remove 123456789012345678", c.name),
		fmt.Sprintf("%s list", c.name),
	}
}

func (c *roleBindingCommand) Run(ctx context.Context, inv *core.Invocation, args string) error {
	return c.subs.Dispatch(ctx, inv, args)
}

func (c *roleBindingCommand) add(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, adminAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) > 2 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseTooManyParams))
	}
	if len(args) < 2 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseNoParams))
	}

	roleID := args[1]
	if !inv.Roles.HasRole(roleID) {
		// Unknown role on the platform; nothing is written.
		return inv.Reply.SendText(ctx, core.Response(core.ResponseIDNotFound))
	}

	err := c.addRole(inv.GuildID, roleID)
	if errors.Is(err, storage.ErrGuildNotConfigured) {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseGuildNotSetup))
	}
	if err != nil {
		log.Printf("[ERR] %s: failed to add role %s for guild %s: %v", c.name, roleID, inv.GuildID, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}
	return inv.Reply.SendText(ctx, core.Response(core.ResponseSuccess))
}

func (c *roleBindingCommand) remove(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, adminAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) > 2 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseTooManyParams))
	}
	if len(args) < 2 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseNoParams))
	}

	// Removing an id that is not in the set succeeds without effect.
	err := c.removeRole(inv.GuildID, args[1])
	if errors.Is(err, storage.ErrGuildNotConfigured) {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseGuildNotSetup))
	}
	if err != nil {
		log.Printf("[ERR] %s: failed to remove role %s for guild %s: %v", c.name, args[1], inv.GuildID, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}
	return inv.Reply.SendText(ctx, core.Response(core.ResponseSuccess))
}

func (c *roleBindingCommand) list(ctx context.Context, inv *core.Invocation, args []string) error {
	if err := c.gate.Has(inv, adminAccess); err != nil {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseInsufficientPerms))
	}
	if len(args) != 1 {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseTooManyParams))
	}

	cfg, found, err := c.store.FindGuild(inv.GuildID)
	if err != nil {
		log.Printf("[ERR] %s: failed to read guild %s: %v", c.name, inv.GuildID, err)
		return inv.Reply.SendText(ctx, core.Response(core.ResponseFail))
	}
	if !found {
		return inv.Reply.SendText(ctx, core.Response(core.ResponseGuildNotSetup))
	}

	bound := c.boundRoles(cfg)
	if len(bound) == 0 {
		return inv.Reply.SendText(ctx, c.emptyNotice)
	}

	// Stale ids are annotated, never pruned; deletion is an explicit admin
	// action.
	var idList strings.Builder
	for _, id := range bound {
		if name, ok := inv.Roles.RoleName(id); ok {
			fmt.Fprintf(&idList, "%s - @%s\n", id, name)
		} else {
			fmt.Fprintf(&idList, "%s - Does not exist in Discord. Please delete this entry\n", id)
		}
	}

	page := report.Page{
		Title:     c.listTitle,
		Color:     report.EmbedColor,
		Timestamp: time.Now().UTC(),
		Fields: []report.Field{
			{Title: "Ids and Names", Body: idList.String()},
		},
	}
	return inv.Reply.SendEmbed(ctx, &page)
}
