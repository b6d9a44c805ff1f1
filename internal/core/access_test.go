package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgsbot/internal/storage"
)

func newGateFixture(t *testing.T) (*AccessGate, *storage.Storage) {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "guilds.json"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewAccessGate(store), store
}

func memberInvocation(roles ...string) *Invocation {
	return &Invocation{GuildID: "g1", AuthorID: "u1", MemberRoles: roles}
}

func TestGateAdminBypassesBindings(t *testing.T) {
	gate, store := newGateFixture(t)
	require.NoError(t, store.EnsureGuild("g1"))
	require.NoError(t, store.AddBGSRole("g1", "r-bgs"))

	inv := memberInvocation() // holds none of the bound roles
	inv.IsAdmin = true

	assert.NoError(t, gate.Has(inv, []Access{AccessBGS}))
}

func TestGateUnconfiguredGuildIsOpen(t *testing.T) {
	gate, _ := newGateFixture(t)

	assert.NoError(t, gate.Has(memberInvocation(), []Access{AccessAdmin, AccessForbidden}))
}

func TestGateNoBoundRolesIsOpen(t *testing.T) {
	gate, store := newGateFixture(t)
	require.NoError(t, store.EnsureGuild("g1"))

	assert.NoError(t, gate.Has(memberInvocation(), []Access{AccessBGS, AccessForbidden}))
}

func TestGateBoundRoleHeldAllows(t *testing.T) {
	gate, store := newGateFixture(t)
	require.NoError(t, store.EnsureGuild("g1"))
	require.NoError(t, store.AddBGSRole("g1", "r-bgs"))

	assert.NoError(t, gate.Has(memberInvocation("r-other", "r-bgs"), []Access{AccessBGS}))
}

func TestGateBoundRoleMissingDenies(t *testing.T) {
	gate, store := newGateFixture(t)
	require.NoError(t, store.EnsureGuild("g1"))
	require.NoError(t, store.AddBGSRole("g1", "r-bgs"))

	err := gate.Has(memberInvocation("r-other"), []Access{AccessBGS})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestGateAnyRequiredAccessSuffices(t *testing.T) {
	gate, store := newGateFixture(t)
	require.NoError(t, store.EnsureGuild("g1"))
	require.NoError(t, store.AddAdminRole("g1", "r-admin"))
	require.NoError(t, store.AddForbiddenRole("g1", "r-forbidden"))

	// The member holds a role bound to one of the required names.
	assert.NoError(t, gate.Has(memberInvocation("r-forbidden"), []Access{AccessAdmin, AccessForbidden}))
}

func TestGateIgnoresBindingsOutsideRequiredSet(t *testing.T) {
	gate, store := newGateFixture(t)
	require.NoError(t, store.EnsureGuild("g1"))
	require.NoError(t, store.AddForbiddenRole("g1", "r-forbidden"))

	// Only forbidden roles are bound; a BGS-only check has nothing bound
	// and stays open.
	assert.NoError(t, gate.Has(memberInvocation(), []Access{AccessBGS}))
}
