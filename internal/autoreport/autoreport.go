// Package autoreport periodically posts faction status reports to guilds
// that configured a faction watch list, reusing the same fetch and assembly
// pipeline as the factionstatus command.
package autoreport

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/adhocore/gronx"

	"bgsbot/internal/ebgs"
	"bgsbot/internal/report"
	"bgsbot/internal/storage"
)

// SendFunc delivers a report page to a channel.
type SendFunc func(ctx context.Context, channelID string, page *report.Page) error

type Scheduler struct {
	expr   string
	gron   *gronx.Gronx
	store  *storage.Storage
	client *ebgs.Client
	send   SendFunc
}

func New(expr string, store *storage.Storage, client *ebgs.Client, send SendFunc) (*Scheduler, error) {
	gron := gronx.New()
	if !gron.IsValid(expr) {
		return nil, fmt.Errorf("autoreport: invalid cron expression %q", expr)
	}
	return &Scheduler{
		expr:   expr,
		gron:   gron,
		store:  store,
		client: client,
		send:   send,
	}, nil
}

// Run checks the cron expression once a minute and reports when it is due,
// until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			due, err := s.gron.IsDue(s.expr, now)
			if err != nil {
				log.Printf("[ERR] Auto-report cron check failed: %v", err)
				continue
			}
			if due {
				s.reportAll(ctx)
			}
		}
	}
}

func (s *Scheduler) reportAll(ctx context.Context) {
	for _, guildID := range s.store.GuildIDs() {
		cfg, found, err := s.store.FindGuild(guildID)
		if err != nil || !found {
			continue
		}
		if cfg.AnnounceChannelID == "" || len(cfg.AutoReportFactions) == 0 {
			continue
		}

		spec := report.SortSpec{Key: report.SortKey(cfg.Sort), Order: cfg.SortOrder}
		for _, name := range cfg.AutoReportFactions {
			s.reportFaction(ctx, cfg.AnnounceChannelID, strings.ToLower(name), spec)
		}
	}
}

func (s *Scheduler) reportFaction(ctx context.Context, channelID, name string, spec report.SortSpec) {
	pages, err := report.FactionReport(ctx, s.client, name, spec)
	if err != nil {
		log.Printf("[ERR] Auto-report for %q failed: %v", name, err)
		return
	}
	for i := range pages {
		if err := s.send(ctx, channelID, &pages[i]); err != nil {
			log.Printf("[ERR] Auto-report: failed to send page %d/%d for %q: %v", i+1, len(pages), name, err)
		}
	}
}
