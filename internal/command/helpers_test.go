package command

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgsbot/internal/core"
	"bgsbot/internal/report"
	"bgsbot/internal/storage"
)

// fakeChannel records outbound messages. With failEmbeds set, every embed
// send fails but is still counted as an attempt.
type fakeChannel struct {
	texts         []string
	pages         []report.Page
	embedAttempts int
	failEmbeds    bool
}

func (c *fakeChannel) SendText(ctx context.Context, content string) error {
	c.texts = append(c.texts, content)
	return nil
}

func (c *fakeChannel) SendEmbed(ctx context.Context, page *report.Page) error {
	c.embedAttempts++
	if c.failEmbeds {
		return errors.New("send failed")
	}
	c.pages = append(c.pages, *page)
	return nil
}

type fakeRoles struct {
	roles map[string]string // id -> name
}

func (r *fakeRoles) HasRole(roleID string) bool {
	_, ok := r.roles[roleID]
	return ok
}

func (r *fakeRoles) RoleName(roleID string) (string, bool) {
	name, ok := r.roles[roleID]
	return name, ok
}

type allowGate struct{}

func (allowGate) Has(inv *core.Invocation, required []core.Access) error { return nil }

type denyGate struct{}

func (denyGate) Has(inv *core.Invocation, required []core.Access) error {
	return core.ErrPermissionDenied
}

type fakeAnnouncer struct {
	added   []string
	removed []string
}

func (a *fakeAnnouncer) AddGuild(guildID string)    { a.added = append(a.added, guildID) }
func (a *fakeAnnouncer) RemoveGuild(guildID string) { a.removed = append(a.removed, guildID) }

// newCommandStore returns a storage with guild "g1" already set up.
func newCommandStore(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "guilds.json"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.EnsureGuild("g1"))
	return store
}

func newInvocation(reply *fakeChannel, roles *fakeRoles) *core.Invocation {
	if roles == nil {
		roles = &fakeRoles{roles: map[string]string{}}
	}
	return &core.Invocation{
		GuildID:   "g1",
		ChannelID: "c1",
		AuthorID:  "u1",
		Reply:     reply,
		Roles:     roles,
	}
}

// assertNotice checks that text is one of the canned variants for kind.
func assertNotice(t *testing.T, kind core.ResponseKind, text string) {
	t.Helper()
	assert.Contains(t, core.Variants(kind), text)
}

func requireSingleText(t *testing.T, reply *fakeChannel) string {
	t.Helper()
	require.Len(t, reply.texts, 1)
	return reply.texts[0]
}
