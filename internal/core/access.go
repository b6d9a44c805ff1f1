package core

import (
	"errors"

	"bgsbot/internal/storage"
)

// ErrPermissionDenied is returned by the gate when the invoking member holds
// none of the required roles.
var ErrPermissionDenied = errors.New("core: insufficient permissions")

// AccessGate checks invocations against the guild's configured role bindings.
//
// An invocation passes when the member has the platform administrator
// capability, or holds any role bound to any required access name, or when
// the guild binds no roles to the required set at all (open access).
type AccessGate struct {
	store *storage.Storage
}

func NewAccessGate(store *storage.Storage) *AccessGate {
	return &AccessGate{store: store}
}

func (g *AccessGate) Has(inv *Invocation, required []Access) error {
	if inv.IsAdmin {
		return nil
	}

	cfg, found, err := g.store.FindGuild(inv.GuildID)
	if err != nil {
		return err
	}
	if !found {
		// No configuration means no restriction.
		return nil
	}

	var bound []string
	for _, a := range required {
		switch a {
		case AccessAdmin:
			bound = append(bound, cfg.AdminRolesID...)
		case AccessBGS:
			bound = append(bound, cfg.BGSRolesID...)
		case AccessForbidden:
			bound = append(bound, cfg.ForbiddenRolesID...)
		}
	}
	if len(bound) == 0 {
		return nil
	}

	held := make(map[string]struct{}, len(inv.MemberRoles))
	for _, id := range inv.MemberRoles {
		held[id] = struct{}{}
	}
	for _, id := range bound {
		if _, ok := held[id]; ok {
			return nil
		}
	}

	return ErrPermissionDenied
}
