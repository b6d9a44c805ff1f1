// Package listener watches the upstream tick push socket and announces new
// ticks to registered guilds.
package listener

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"bgsbot/internal/report"
	"bgsbot/internal/storage"
	"bgsbot/pkg/retrylimit"
)

// SendFunc delivers a report page to a channel. Provided by the Discord
// front end.
type SendFunc func(ctx context.Context, channelID string, page *report.Page) error

// Detector maintains the set of guilds that want tick announcements and
// fans a received tick out to their configured announce channels.
//
// Membership mirrors the persisted announce_tick flag: it is seeded from
// storage at startup and afterwards changed only through AddGuild and
// RemoveGuild, which the tick command calls after a confirmed write.
type Detector struct {
	url   string
	store *storage.Storage
	send  SendFunc

	mu     sync.Mutex
	guilds map[string]struct{}
}

func New(url string, store *storage.Storage, send SendFunc) *Detector {
	return &Detector{
		url:    url,
		store:  store,
		send:   send,
		guilds: make(map[string]struct{}),
	}
}

// AddGuild registers a guild for tick announcements.
func (d *Detector) AddGuild(guildID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.guilds[guildID] = struct{}{}
}

// RemoveGuild unregisters a guild.
func (d *Detector) RemoveGuild(guildID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.guilds, guildID)
}

// Run seeds membership from storage, then reads the push socket until the
// context is cancelled, reconnecting with backoff on failure.
func (d *Detector) Run(ctx context.Context) error {
	d.seed()

	lim := retrylimit.NewAdaptiveLimiter(1, 1, 5, 1, 0.5)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var conn *websocket.Conn
		err := retrylimit.WithRetryMax(ctx, func() error {
			var dialErr error
			conn, _, dialErr = websocket.DefaultDialer.DialContext(ctx, d.url, nil)
			return dialErr
		}, lim, 10)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[ERR] Tick socket unreachable, retrying: %v", err)
			continue
		}

		log.Printf("[INFO] Tick socket connected: %s", d.url)
		d.readLoop(ctx, conn)
		conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Println("[WARN] Tick socket closed, reconnecting...")
	}
}

func (d *Detector) readLoop(ctx context.Context, conn *websocket.Conn) {
	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg struct {
			Time time.Time `json:"time"`
		}
		if err := json.Unmarshal(payload, &msg); err != nil || msg.Time.IsZero() {
			log.Printf("[WARN] Ignoring unparseable tick payload: %s", payload)
			continue
		}
		d.announce(ctx, msg.Time)
	}
}

// seed loads every guild with announce_tick enabled into the membership set.
func (d *Detector) seed() {
	for _, guildID := range d.store.GuildIDs() {
		cfg, found, err := d.store.FindGuild(guildID)
		if err != nil || !found {
			continue
		}
		if cfg.AnnounceTick {
			d.AddGuild(guildID)
		}
	}
	d.mu.Lock()
	n := len(d.guilds)
	d.mu.Unlock()
	log.Printf("[INFO] Tick announcements enabled for %d guild(s)", n)
}

func (d *Detector) announce(ctx context.Context, tick time.Time) {
	d.mu.Lock()
	members := make([]string, 0, len(d.guilds))
	for guildID := range d.guilds {
		members = append(members, guildID)
	}
	d.mu.Unlock()

	page := report.TickPage(tick)
	for _, guildID := range members {
		cfg, found, err := d.store.FindGuild(guildID)
		if err != nil || !found || cfg.AnnounceChannelID == "" {
			continue
		}
		if err := d.send(ctx, cfg.AnnounceChannelID, &page); err != nil {
			log.Printf("[ERR] Failed to announce tick to guild %s: %v", guildID, err)
		}
	}
}
