package journal

import (
	"encoding/json"

	"github.com/rustyeddy/rtracker/config"
	"github.com/rustyeddy/rtracker/trade"
)

// Memory is an in-process Store. Records are kept JSON encoded so that a
// round trip behaves exactly like the SQLite store.
type Memory struct {
	records map[string][]byte
	closed  bool
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) LoadSettings() (config.Settings, bool, error) {
	var s config.Settings
	ok, err := m.get(SettingsKey, &s)
	return s, ok, err
}

func (m *Memory) SaveSettings(s config.Settings) error {
	return m.put(SettingsKey, s)
}

func (m *Memory) LoadTrades() ([]trade.Trade, error) {
	var trades []trade.Trade
	if _, err := m.get(TradesKey, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (m *Memory) SaveTrades(trades []trade.Trade) error {
	if trades == nil {
		trades = []trade.Trade{}
	}
	return m.put(TradesKey, trades)
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}

func (m *Memory) get(key string, v any) (bool, error) {
	if m.closed {
		return false, ErrClosed
	}
	raw, ok := m.records[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (m *Memory) put(key string, v any) error {
	if m.closed {
		return ErrClosed
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.records[key] = raw
	return nil
}
