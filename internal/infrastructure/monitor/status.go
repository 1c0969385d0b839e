package monitor

import "time"

// Status captures the last known health of the service's dependencies.
// PostgreSQL and Redis are nil when the deployment runs without them.
type Status struct {
	State      bool      `json:"state"`
	StateKeys  int       `json:"state_keys"`
	Outbox     bool      `json:"outbox"`
	OutboxSize int       `json:"outbox_size"`
	PostgreSQL *bool     `json:"postgresql,omitempty"`
	Redis      *bool     `json:"redis,omitempty"`
	LastCheck  time.Time `json:"last_check"`
}

// Healthy reports whether every configured dependency responded.
func (s Status) Healthy() bool {
	if !s.State || !s.Outbox {
		return false
	}
	if s.PostgreSQL != nil && !*s.PostgreSQL {
		return false
	}
	if s.Redis != nil && !*s.Redis {
		return false
	}
	return true
}
