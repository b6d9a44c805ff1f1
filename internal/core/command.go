package core

import (
	"context"

	"bgsbot/internal/report"
)

// Access names a capability that guild configuration can bind roles to.
type Access string

const (
	AccessAdmin     Access = "admin"
	AccessBGS       Access = "bgs"
	AccessForbidden Access = "forbidden"
)

// Channel is the outbound message sink for one invocation. Implementations
// may retry transient failures internally; delivery is at-most-once.
type Channel interface {
	SendText(ctx context.Context, content string) error
	SendEmbed(ctx context.Context, page *report.Page) error
}

// RoleDirectory resolves roles that exist on the platform guild.
type RoleDirectory interface {
	HasRole(roleID string) bool
	RoleName(roleID string) (string, bool)
}

// PermissionGate checks an invocation against a required capability set.
// A nil return allows the invocation.
type PermissionGate interface {
	Has(inv *Invocation, required []Access) error
}

// TickAnnouncer is the push-socket registration collaborator for tick
// announcements.
type TickAnnouncer interface {
	AddGuild(guildID string)
	RemoveGuild(guildID string)
}

// Invocation is the per-message context handed to command handlers. Handlers
// talk to the platform only through it.
type Invocation struct {
	GuildID     string
	ChannelID   string
	AuthorID    string
	MemberRoles []string
	IsAdmin     bool
	Reply       Channel
	Roles       RoleDirectory
}

// Command is a top-level chat command. Run receives the raw argument string
// after the command name; most commands delegate it to a SubRouter.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Examples() []string
	Run(ctx context.Context, inv *Invocation, args string) error
}
