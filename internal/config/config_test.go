package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppliesDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token123")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "token123", cfg.DiscordToken)
	assert.Equal(t, "datastore.json", cfg.StoragePath)
	assert.Equal(t, "https://elitebgs.app/api/ebgs/v4", cfg.EBGSAPIURL)
	assert.Equal(t, "wss://elitebgs.app/tick", cfg.TickSocketURL)
	assert.Equal(t, "0 * * * *", cfg.AutoReportCron)
	assert.Empty(t, cfg.DeveloperID)
}

func TestNewReadsOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token123")
	t.Setenv("STORAGE_PATH", "/var/lib/bot/guilds.json")
	t.Setenv("EBGS_API_URL", "http://localhost:8080/api/ebgs/v4")
	t.Setenv("AUTO_REPORT_CRON", "30 */2 * * *")
	t.Setenv("DEVELOPER_ID", "u42")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/bot/guilds.json", cfg.StoragePath)
	assert.Equal(t, "http://localhost:8080/api/ebgs/v4", cfg.EBGSAPIURL)
	assert.Equal(t, "30 */2 * * *", cfg.AutoReportCron)
	assert.Equal(t, "u42", cfg.DeveloperID)
}

func TestNewRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := New()
	assert.Error(t, err)
}
