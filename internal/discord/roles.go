package discord

import (
	"github.com/bwmarrin/discordgo"
)

// GuildRoles resolves role ids against the live guild. It implements
// core.RoleDirectory.
type GuildRoles struct {
	Session *discordgo.Session
	GuildID string
}

func (g *GuildRoles) HasRole(roleID string) bool {
	_, ok := g.RoleName(roleID)
	return ok
}

func (g *GuildRoles) RoleName(roleID string) (string, bool) {
	for _, role := range g.roles() {
		if role.ID == roleID {
			return role.Name, true
		}
	}
	return "", false
}

func (g *GuildRoles) roles() []*discordgo.Role {
	guild, err := g.Session.State.Guild(g.GuildID)
	if err != nil || guild == nil {
		guild, err = g.Session.Guild(g.GuildID)
		if err != nil {
			return nil
		}
	}
	return guild.Roles
}
