// Package storage persists per-guild configuration on top of the datastore.
//
// Reads of absent guilds never create a row; a guild becomes "set up" only
// through EnsureGuild (called when the bot joins a guild). Mutations are
// per-field merges on the decoded record, so concurrent edits to different
// fields do not clobber each other's intent (last write wins per field).
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bgsbot/datastore"
)

// ErrGuildNotConfigured is returned by mutations targeting a guild that has
// no configuration row yet.
var ErrGuildNotConfigured = errors.New("storage: guild is not set up")

// GuildConfig is the single durable record of the bot, keyed by guild id.
type GuildConfig struct {
	GuildID            string    `json:"guild_id"`
	Sort               string    `json:"sort"`       // "", "name" or "influence"
	SortOrder          int       `json:"sort_order"` // -1 descending, 0 disabled, 1 ascending
	ForbiddenRolesID   []string  `json:"forbidden_roles_id"`
	AdminRolesID       []string  `json:"admin_roles_id"`
	BGSRolesID         []string  `json:"bgs_roles_id"`
	AnnounceTick       bool      `json:"announce_tick"`
	AnnounceChannelID  string    `json:"announce_channel_id"`
	AutoReportFactions []string  `json:"auto_report_factions"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Storage struct {
	ds *datastore.DataStore
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// FindGuild returns the guild's configuration and whether it exists. A read
// never creates the row.
func (s *Storage) FindGuild(guildID string) (*GuildConfig, bool, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		return nil, false, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, false, fmt.Errorf("error marshalling data: %w", err)
	}

	var cfg GuildConfig
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, false, fmt.Errorf("error unmarshalling to *GuildConfig: %w", err)
	}
	return &cfg, true, nil
}

// EnsureGuild creates a blank configuration row for a guild if absent.
// Called from the guild-join event, never from a read path.
func (s *Storage) EnsureGuild(guildID string) error {
	if _, exists := s.ds.Get(guildID); exists {
		return nil
	}
	s.ds.Set(guildID, &GuildConfig{
		GuildID:   guildID,
		UpdatedAt: time.Now().UTC(),
	})
	return nil
}

// GuildIDs returns every guild with a configuration row.
func (s *Storage) GuildIDs() []string {
	return s.ds.Keys()
}

// AddForbiddenRole adds a role id to the forbidden set (set union, so adding
// an existing member is a no-op).
func (s *Storage) AddForbiddenRole(guildID, roleID string) error {
	return s.mutateGuild(guildID, func(cfg *GuildConfig) {
		cfg.ForbiddenRolesID = addToSet(cfg.ForbiddenRolesID, roleID)
	})
}

// RemoveForbiddenRole removes a role id from the forbidden set. Removing a
// non-member succeeds without effect.
func (s *Storage) RemoveForbiddenRole(guildID, roleID string) error {
	return s.mutateGuild(guildID, func(cfg *GuildConfig) {
		cfg.ForbiddenRolesID = removeFromSet(cfg.ForbiddenRolesID, roleID)
	})
}

// AddAdminRole adds a role id to the admin access binding.
func (s *Storage) AddAdminRole(guildID, roleID string) error {
	return s.mutateGuild(guildID, func(cfg *GuildConfig) {
		cfg.AdminRolesID = addToSet(cfg.AdminRolesID, roleID)
	})
}

// RemoveAdminRole removes a role id from the admin access binding.
func (s *Storage) RemoveAdminRole(guildID, roleID string) error {
	return s.mutateGuild(guildID, func(cfg *GuildConfig) {
		cfg.AdminRolesID = removeFromSet(cfg.AdminRolesID, roleID)
	})
}

// AddBGSRole adds a role id to the BGS access binding.
func (s *Storage) AddBGSRole(guildID, roleID string) error {
	return s.mutateGuild(guildID, func(cfg *GuildConfig) {
		cfg.BGSRolesID = addToSet(cfg.BGSRolesID, roleID)
	})
}

// RemoveBGSRole removes a role id from the BGS access binding.
func (s *Storage) RemoveBGSRole(guildID, roleID string) error {
	return s.mutateGuild(guildID, func(cfg *GuildConfig) {
		cfg.BGSRolesID = removeFromSet(cfg.BGSRolesID, roleID)
	})
}

// AddAutoReportFaction adds a faction name to the guild's scheduled report
// list. Names are stored as given; callers lowercase them.
func (s *Storage) AddAutoReportFaction(guildID, name string) error {
	return s.mutateGuild(guildID, func(cfg *GuildConfig) {
		cfg.AutoReportFactions = addToSet(cfg.AutoReportFactions, name)
	})
}

// RemoveAutoReportFaction removes a faction name from the scheduled report
// list. Removing an absent name succeeds without effect.
func (s *Storage) RemoveAutoReportFaction(guildID, name string) error {
	return s.mutateGuild(guildID, func(cfg *GuildConfig) {
		cfg.AutoReportFactions = removeFromSet(cfg.AutoReportFactions, name)
	})
}

// SetAnnounceTick toggles tick announcements and reports whether the stored
// value actually changed, so callers can keep socket membership in step with
// the persisted flag.
func (s *Storage) SetAnnounceTick(guildID string, announce bool) (bool, error) {
	changed := false
	err := s.mutateGuild(guildID, func(cfg *GuildConfig) {
		changed = cfg.AnnounceTick != announce
		cfg.AnnounceTick = announce
	})
	return changed, err
}

// SetSortPolicy sets the sort key and order used by status reports.
func (s *Storage) SetSortPolicy(guildID, key string, order int) error {
	return s.mutateGuild(guildID, func(cfg *GuildConfig) {
		cfg.Sort = key
		cfg.SortOrder = order
	})
}

// SetAnnounceChannel sets the channel tick announcements and auto-reports go to.
func (s *Storage) SetAnnounceChannel(guildID, channelID string) error {
	return s.mutateGuild(guildID, func(cfg *GuildConfig) {
		cfg.AnnounceChannelID = channelID
	})
}

func addToSet(set []string, id string) []string {
	for _, member := range set {
		if member == id {
			return set
		}
	}
	return append(set, id)
}

func removeFromSet(set []string, id string) []string {
	kept := set[:0]
	for _, member := range set {
		if member != id {
			kept = append(kept, member)
		}
	}
	return kept
}

// mutateGuild loads the guild row, applies fn, stamps updated_at and writes
// the record back. Absent rows yield ErrGuildNotConfigured; mutations never
// create.
func (s *Storage) mutateGuild(guildID string, fn func(*GuildConfig)) error {
	cfg, found, err := s.FindGuild(guildID)
	if err != nil {
		return err
	}
	if !found {
		return ErrGuildNotConfigured
	}

	fn(cfg)
	cfg.UpdatedAt = time.Now().UTC()
	s.ds.Set(guildID, cfg)
	return nil
}
