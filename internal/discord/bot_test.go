package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgsbot/internal/report"
)

func TestStripMention(t *testing.T) {
	assert.Equal(t, "tick get", stripMention("<@42> tick get", "42"))
	assert.Equal(t, "tick get", stripMention("<@!42> tick get", "42"))
	assert.Equal(t, "tick get", stripMention("tick <@42> get", "42"))
	assert.Equal(t, "", stripMention("<@42>", "42"))

	// Mentions of other users survive.
	assert.Equal(t, "<@99> tick get", stripMention("<@99> tick get", "42"))
}

func TestSplitCommand(t *testing.T) {
	name, rest := splitCommand("factionstatus get knights of karma")
	assert.Equal(t, "factionstatus", name)
	assert.Equal(t, "get knights of karma", rest)

	name, rest = splitCommand("help")
	assert.Equal(t, "help", name)
	assert.Empty(t, rest)

	name, rest = splitCommand("")
	assert.Empty(t, name)
	assert.Empty(t, rest)
}

func TestEmbedFromPage(t *testing.T) {
	ts := time.Date(2020, time.July, 2, 15, 29, 13, 0, time.UTC)
	page := &report.Page{
		Title:     "FACTION STATUS",
		Color:     report.EmbedColor,
		Timestamp: ts,
		Fields: []report.Field{
			{Title: "Knights of Karma", Body: "Democracy"},
			{Title: "Okinura", Body: "State : boom", Inline: true},
		},
	}

	embed := embedFromPage(page)

	assert.Equal(t, "FACTION STATUS", embed.Title)
	assert.Equal(t, report.EmbedColor, embed.Color)
	assert.Equal(t, "2020-07-02T15:29:13Z", embed.Timestamp)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Knights of Karma", embed.Fields[0].Name)
	assert.Equal(t, "Democracy", embed.Fields[0].Value)
	assert.False(t, embed.Fields[0].Inline)
	assert.True(t, embed.Fields[1].Inline)
}
