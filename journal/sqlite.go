package journal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/rtracker/config"
	"github.com/rustyeddy/rtracker/trade"
)

// SQLite is a Store keeping each record as a JSON blob in a key/value table.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) LoadSettings() (config.Settings, bool, error) {
	var s config.Settings
	ok, err := j.get(SettingsKey, &s)
	return s, ok, err
}

func (j *SQLite) SaveSettings(s config.Settings) error {
	return j.put(SettingsKey, s)
}

func (j *SQLite) LoadTrades() ([]trade.Trade, error) {
	var trades []trade.Trade
	if _, err := j.get(TradesKey, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (j *SQLite) SaveTrades(trades []trade.Trade) error {
	if trades == nil {
		trades = []trade.Trade{}
	}
	return j.put(TradesKey, trades)
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func (j *SQLite) get(key string, v any) (bool, error) {
	var raw []byte
	err := j.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (j *SQLite) put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = j.db.Exec(`
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, raw, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
