package ebgs

import "time"

// StateTrend is a pending or recovering state transition on a presence.
type StateTrend struct {
	State string `json:"state"`
	Trend int    `json:"trend"`
}

// Presence is a faction's activity record within one system.
type Presence struct {
	SystemName       string       `json:"system_name"`
	SystemNameLower  string       `json:"system_name_lower"`
	State            string       `json:"state"`
	Influence        float64      `json:"influence"`
	PendingStates    []StateTrend `json:"pending_states"`
	RecoveringStates []StateTrend `json:"recovering_states"`
}

// Faction is a political entity tracked by the upstream API.
type Faction struct {
	Name       string     `json:"name"`
	NameLower  string     `json:"name_lower"`
	Government string     `json:"government"`
	Presence   []Presence `json:"faction_presence"`
}

// System carries the per-system status the faction report joins against.
type System struct {
	Name      string    `json:"name"`
	NameLower string    `json:"name_lower"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tick is the game server's periodic state-recalculation timestamp.
type Tick struct {
	Time time.Time `json:"time"`
}
