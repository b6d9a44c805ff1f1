package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"bgsbot/internal/ebgs"
	"bgsbot/pkg/util"
)

// FactionTitle heads every faction status page.
const FactionTitle = "FACTION STATUS"

// FactionReport fetches a faction and the status of every system it is
// present in, then assembles the paginated report.
//
// System lookups fan out concurrently and are joined as one batch. A single
// system with no status record degrades to a placeholder field; any upstream
// failure aborts the whole batch and is returned, discarding the other
// results. A missing faction is reported as ebgs.ErrNotFound without issuing
// any system fetches.
func FactionReport(ctx context.Context, client *ebgs.Client, name string, spec SortSpec) ([]Page, error) {
	faction, err := client.Faction(ctx, name)
	if err != nil {
		return nil, err
	}

	records, err := util.Gather(ctx, faction.Presence, 0, func(ctx context.Context, p ebgs.Presence) (FieldRecord, error) {
		system, err := client.System(ctx, p.SystemNameLower)
		if errors.Is(err, ebgs.ErrNotFound) {
			return FieldRecord{
				Title:       p.SystemName,
				Description: "System status not found",
				Name:        p.SystemName,
			}, nil
		}
		if err != nil {
			return FieldRecord{}, err
		}
		return FieldRecord{
			Title:       p.SystemName,
			Description: describePresence(p, system.UpdatedAt),
			Name:        p.SystemName,
			Influence:   p.Influence,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	header := Field{Title: faction.Name, Body: faction.Government}
	return Assemble(FactionTitle, header, records, spec, time.Now().UTC()), nil
}

// describePresence renders the multi-line detail block for one system.
func describePresence(p ebgs.Presence, updatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("Last Updated : " + util.TimeAgo(updatedAt) + " \n")
	b.WriteString("State : " + p.State + "\n")
	b.WriteString("Influence : " + util.Percent(p.Influence) + "\n")
	b.WriteString("Pending States : " + stateList(p.PendingStates) + "\n")
	b.WriteString("Recovering States : " + stateList(p.RecoveringStates))
	return b.String()
}

func stateList(states []ebgs.StateTrend) string {
	if len(states) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(states))
	for _, st := range states {
		parts = append(parts, st.State+util.TrendIcon(st.Trend))
	}
	return strings.Join(parts, ", ")
}
