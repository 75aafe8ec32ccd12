package model

import (
	"encoding/json"
	"time"
)

// Run is one persisted evaluation: the profile that was evaluated, the rule
// set version it ran against, and the full result payload for counselor
// review. The result is stored as opaque JSON so the store does not depend on
// engine types.
type Run struct {
	ID          string          `json:"id"`
	RuleVersion string          `json:"rule_version"`
	Profile     ProfileInput    `json:"profile"`
	Result      json.RawMessage `json:"result"`
	CreatedAt   time.Time       `json:"created_at"`
}
