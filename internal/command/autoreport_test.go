package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgsbot/internal/core"
)

func TestAutoReportAddLowercasesName(t *testing.T) {
	store := newCommandStore(t)
	cmd := NewAutoReport(store, allowGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "add Knights OF Karma"))

	assertNotice(t, core.ResponseSuccess, requireSingleText(t, reply))

	cfg, _, err := store.FindGuild("g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"knights of karma"}, cfg.AutoReportFactions)
}

func TestAutoReportRemove(t *testing.T) {
	store := newCommandStore(t)
	require.NoError(t, store.AddAutoReportFaction("g1", "knights of karma"))
	cmd := NewAutoReport(store, allowGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "remove knights of karma"))

	assertNotice(t, core.ResponseSuccess, requireSingleText(t, reply))

	cfg, _, err := store.FindGuild("g1")
	require.NoError(t, err)
	assert.Empty(t, cfg.AutoReportFactions)
}

func TestAutoReportChannel(t *testing.T) {
	store := newCommandStore(t)
	cmd := NewAutoReport(store, allowGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "channel c42"))

	assertNotice(t, core.ResponseSuccess, requireSingleText(t, reply))

	cfg, _, err := store.FindGuild("g1")
	require.NoError(t, err)
	assert.Equal(t, "c42", cfg.AnnounceChannelID)
}

func TestAutoReportList(t *testing.T) {
	store := newCommandStore(t)
	require.NoError(t, store.SetAnnounceChannel("g1", "c42"))
	require.NoError(t, store.AddAutoReportFaction("g1", "knights of karma"))
	require.NoError(t, store.AddAutoReportFaction("g1", "ltt 1289 blue dragons"))
	cmd := NewAutoReport(store, allowGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "list"))

	require.Len(t, reply.pages, 1)
	page := reply.pages[0]
	assert.Equal(t, "Auto Report", page.Title)
	require.Len(t, page.Fields, 2)
	assert.Equal(t, "c42", page.Fields[0].Body)
	assert.Contains(t, page.Fields[1].Body, "knights of karma")
	assert.Contains(t, page.Fields[1].Body, "ltt 1289 blue dragons")
}

func TestAutoReportListEmpty(t *testing.T) {
	cmd := NewAutoReport(newCommandStore(t), allowGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "list"))

	assert.Equal(t, "You don't have any auto-report factions set up", requireSingleText(t, reply))
}

func TestAutoReportParamCounts(t *testing.T) {
	cmd := NewAutoReport(newCommandStore(t), allowGate{})
	cases := map[string]core.ResponseKind{
		"add":            core.ResponseNoParams,
		"remove":         core.ResponseNoParams,
		"channel":        core.ResponseNoParams,
		"channel c1 c2":  core.ResponseTooManyParams,
		"list something": core.ResponseTooManyParams,
	}

	for raw, kind := range cases {
		reply := &fakeChannel{}
		require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), raw))
		assertNotice(t, kind, requireSingleText(t, reply))
	}
}

func TestAutoReportDenied(t *testing.T) {
	cmd := NewAutoReport(newCommandStore(t), denyGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "add knights of karma"))

	assertNotice(t, core.ResponseInsufficientPerms, requireSingleText(t, reply))
}
