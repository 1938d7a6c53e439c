// Package notify announces storage key changes to every interested listener,
// within this context (LocalChannel) and across contexts
// (CrossContextChannel).
package notify

import (
	"time"

	json "github.com/goccy/go-json"
)

// ChangeEvent says that the collection stored under Key changed. An empty
// Key means every key was cleared.
type ChangeEvent struct {
	Key      string          `json:"key"`
	NewValue json.RawMessage `json:"newValue,omitempty"`
	Origin   string          `json:"origin"`
	At       time.Time       `json:"at"`
	// Remote is set on events that arrived over a cross-context channel.
	Remote bool `json:"-"`
}

type Handler func(ChangeEvent)
