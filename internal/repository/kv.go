package repository

import (
	"database/sql"
	"encoding/json"
	"sync"
)

// KVStore is the storage boundary for campaign records. Values are JSON
// documents; Get reports absence separately from failure so callers can
// tell a missing record from a broken store.
type KVStore interface {
	Get(store, key string, out interface{}) (bool, error)
	Set(store, key string, value interface{}) error
	Delete(store, key string) error
}

// PostgresKV keeps every record in one kv_records table keyed by
// (store_name, record_key) with a jsonb value column.
type PostgresKV struct {
	DB *sql.DB
}

// Get fetches and decodes a single record
func (s *PostgresKV) Get(store, key string, out interface{}) (bool, error) {
	query := `
        SELECT record_value FROM kv_records
        WHERE store_name = $1 AND record_key = $2
    `
	var raw []byte
	if err := s.DB.QueryRow(query, store, key).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return false, nil // not found
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set upserts a record; each call is its own atomic write
func (s *PostgresKV) Set(store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO kv_records (store_name, record_key, record_value, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (store_name, record_key)
        DO UPDATE SET record_value = $3, updated_at = NOW()
    `
	_, err = s.DB.Exec(query, store, key, raw)
	return err
}

// Delete removes a record, missing rows are fine
func (s *PostgresKV) Delete(store, key string) error {
	_, err := s.DB.Exec(`DELETE FROM kv_records WHERE store_name = $1 AND record_key = $2`, store, key)
	return err
}

// InMemoryKV is the in-process stand-in for tests and local runs. Values
// round-trip through JSON so callers always get copies, same as Postgres.
type InMemoryKV struct {
	mu     sync.Mutex
	stores map[string]map[string][]byte
}

func NewInMemoryKV() *InMemoryKV {
	return &InMemoryKV{stores: make(map[string]map[string][]byte)}
}

func (s *InMemoryKV) Get(store, key string, out interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.stores[store][key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *InMemoryKV) Set(store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stores[store] == nil {
		s.stores[store] = make(map[string][]byte)
	}
	s.stores[store][key] = raw
	return nil
}

func (s *InMemoryKV) Delete(store, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores[store], key)
	return nil
}

var _ KVStore = (*PostgresKV)(nil)
var _ KVStore = (*InMemoryKV)(nil)
