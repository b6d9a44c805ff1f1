package command

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgsbot/internal/core"
	"bgsbot/internal/ebgs"
)

// newEBGSServer serves one faction across two systems, with the systems
// endpoint echoing whatever name is asked for.
func newEBGSServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		switch r.URL.Path {
		case "/factions":
			if name != "knights of karma" {
				fmt.Fprint(w, `{"total": 0, "docs": []}`)
				return
			}
			fmt.Fprint(w, `{
				"total": 1,
				"docs": [{
					"name": "Knights of Karma",
					"name_lower": "knights of karma",
					"government": "Democracy",
					"faction_presence": [
						{"system_name": "Alpha", "system_name_lower": "alpha", "state": "boom", "influence": 0.3,
						 "pending_states": [], "recovering_states": []},
						{"system_name": "Beta", "system_name_lower": "beta", "state": "none", "influence": 0.7,
						 "pending_states": [], "recovering_states": []}
					]
				}]
			}`)
		case "/systems":
			fmt.Fprintf(w, `{"total": 1, "docs": [{"name": %q, "name_lower": %q, "updated_at": "2020-07-02T15:29:13Z"}]}`, name, name)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFactionStatusGet(t *testing.T) {
	srv := newEBGSServer(t)
	cmd := NewFactionStatus(ebgs.NewClient(srv.URL), newCommandStore(t), allowGate{})
	reply := &fakeChannel{}

	// Mixed case in the request; the lookup is lowercased.
	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "get Knights OF Karma"))

	require.Len(t, reply.pages, 1)
	page := reply.pages[0]
	assert.Equal(t, "FACTION STATUS", page.Title)
	require.Len(t, page.Fields, 3)
	assert.Equal(t, "Knights of Karma", page.Fields[0].Title)
	assert.Equal(t, "Democracy", page.Fields[0].Body)
	assert.Equal(t, "Alpha", page.Fields[1].Title)
	assert.Equal(t, "Beta", page.Fields[2].Title)
	assert.Empty(t, reply.texts)
}

func TestFactionStatusAppliesGuildSortPolicy(t *testing.T) {
	srv := newEBGSServer(t)
	store := newCommandStore(t)
	require.NoError(t, store.SetSortPolicy("g1", "influence", -1))
	cmd := NewFactionStatus(ebgs.NewClient(srv.URL), store, allowGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "get knights of karma"))

	require.Len(t, reply.pages, 1)
	require.Len(t, reply.pages[0].Fields, 3)
	assert.Equal(t, "Beta", reply.pages[0].Fields[1].Title)
	assert.Equal(t, "Alpha", reply.pages[0].Fields[2].Title)
}

func TestFactionStatusUnknownFaction(t *testing.T) {
	srv := newEBGSServer(t)
	cmd := NewFactionStatus(ebgs.NewClient(srv.URL), newCommandStore(t), allowGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "get nobody"))

	assert.Equal(t, "Faction not found", requireSingleText(t, reply))
	assert.Empty(t, reply.pages)
}

func TestFactionStatusMissingName(t *testing.T) {
	srv := newEBGSServer(t)
	cmd := NewFactionStatus(ebgs.NewClient(srv.URL), newCommandStore(t), allowGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "get"))

	assertNotice(t, core.ResponseNoParams, requireSingleText(t, reply))
}

func TestFactionStatusUnconfiguredGuild(t *testing.T) {
	srv := newEBGSServer(t)
	cmd := NewFactionStatus(ebgs.NewClient(srv.URL), newCommandStore(t), allowGate{})
	reply := &fakeChannel{}
	inv := newInvocation(reply, nil)
	inv.GuildID = "not-set-up"

	require.NoError(t, cmd.Run(context.Background(), inv, "get knights of karma"))

	assertNotice(t, core.ResponseGuildNotSetup, requireSingleText(t, reply))
}

func TestFactionStatusUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	cmd := NewFactionStatus(ebgs.NewClient(srv.URL), newCommandStore(t), allowGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "get knights of karma"))

	assertNotice(t, core.ResponseFail, requireSingleText(t, reply))
}

func TestFactionStatusSendFailureAttemptsAllPages(t *testing.T) {
	srv := newEBGSServer(t)
	cmd := NewFactionStatus(ebgs.NewClient(srv.URL), newCommandStore(t), allowGate{})
	reply := &fakeChannel{failEmbeds: true}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "get knights of karma"))

	assert.Equal(t, 1, reply.embedAttempts)
	assert.Empty(t, reply.texts)
}

func TestFactionStatusDenied(t *testing.T) {
	srv := newEBGSServer(t)
	cmd := NewFactionStatus(ebgs.NewClient(srv.URL), newCommandStore(t), denyGate{})
	reply := &fakeChannel{}

	require.NoError(t, cmd.Run(context.Background(), newInvocation(reply, nil), "get knights of karma"))

	assertNotice(t, core.ResponseInsufficientPerms, requireSingleText(t, reply))
}
