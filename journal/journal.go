// Package journal persists tracker state and exports trades as CSV, org-mode
// and PNG charts.
package journal

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/rtracker/config"
	"github.com/rustyeddy/rtracker/trade"
)

// Record keys used by every Store.
const (
	SettingsKey = "settings"
	TradesKey   = "trades"
)

// ErrClosed is returned by a Store used after Close.
var ErrClosed = errors.New("journal: store closed")

// Store persists the two records the tracker owns: the settings snapshot and
// the trade list. Both are read at startup and rewritten after every mutation.
type Store interface {
	// LoadSettings reports false when no settings have been saved yet.
	LoadSettings() (config.Settings, bool, error)
	SaveSettings(config.Settings) error
	LoadTrades() ([]trade.Trade, error)
	SaveTrades([]trade.Trade) error
	Close() error
}

// Open returns the store selected by cfg.
func Open(cfg config.JournalConfig) (Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemory(), nil
	case "sqlite", "":
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("journal: sqlite store needs a db_path")
		}
		return NewSQLite(cfg.DBPath)
	}
	return nil, fmt.Errorf("journal: unknown store type %q", cfg.Type)
}
