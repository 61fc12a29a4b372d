/*
// Copyright contributors to the Virtual Machine Manager for Go project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
*/

// Package storage implements the labeled, name-indexed store of guest
// configurations, backed by SQLite through github.com/mattn/go-sqlite3.
// Every operation opens its own short-lived connection; the storage
// URI is shared by cloning the handle rather than the connection
// itself.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/project-machine/emulot/internal/apperr"
	"github.com/project-machine/emulot/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS guest (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	config TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_guest_name ON guest(name);
`

// ConfigStorage is a handle to the SQLite-backed guest config store.
// The zero value is not usable; construct with New.
type ConfigStorage struct {
	uri string
	db  *sql.DB
}

// New opens (creating if necessary) the database at uri and ensures the
// schema is present. The returned handle's *sql.DB is a connection pool
// safe for concurrent use from multiple goroutines, each operation
// acquiring and releasing its own short-lived connection from the pool.
func New(uri string) (*ConfigStorage, error) {
	db, err := sql.Open("sqlite3", uri)
	if err != nil {
		return nil, apperr.Wrap(apperr.StorageError, err, fmt.Sprintf("opening storage at %s", uri))
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, apperr.Wrap(apperr.StorageError, err, "ensuring guest schema")
	}
	return &ConfigStorage{uri: uri, db: db}, nil
}

// Close releases the underlying connection pool.
func (s *ConfigStorage) Close() error {
	return s.db.Close()
}

// LookupID returns the id of the guest named name, or NoSuchEntity if
// no such guest exists.
func (s *ConfigStorage) LookupID(name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM guest WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return 0, apperr.FromSQLite(err)
	}
	return id, nil
}

// Get decodes and returns the GuestConfig stored under id, or
// NoSuchEntity if no such guest exists.
func (s *ConfigStorage) Get(id int64) (config.GuestConfig, error) {
	var raw string
	err := s.db.QueryRow(`SELECT config FROM guest WHERE id = ?`, id).Scan(&raw)
	if err != nil {
		return config.GuestConfig{}, apperr.FromSQLite(err)
	}
	decoded, err := config.Decode([]byte(raw))
	if err != nil {
		return config.GuestConfig{}, apperr.Wrap(apperr.EncodingError, err, "decoding stored guest config")
	}
	return decoded, nil
}

// List returns (name, id) pairs in id-ascending order, honoring offset
// (default 0) and limit (-1 means unbounded).
func (s *ConfigStorage) List(offset, limit int64) ([]config.Labeled[int64], error) {
	if offset < 0 {
		offset = 0
	}
	query := `SELECT name, id FROM guest ORDER BY id ASC LIMIT ? OFFSET ?`
	sqlLimit := limit
	if limit < 0 {
		sqlLimit = -1
	}
	rows, err := s.db.Query(query, sqlLimit, offset)
	if err != nil {
		return nil, apperr.FromSQLite(err)
	}
	defer rows.Close()

	var out []config.Labeled[int64]
	for rows.Next() {
		var name string
		var id int64
		if err := rows.Scan(&name, &id); err != nil {
			return nil, apperr.Wrap(apperr.StorageError, err, "scanning guest row")
		}
		out = append(out, config.NewLabeled(name, id))
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.StorageError, err, "iterating guest rows")
	}
	return out, nil
}

// Insert serializes cfg to JSON and inserts it under name. A duplicate
// name maps to AlreadyExists via the UNIQUE index on guest.name (SQLite
// extended result code 2067).
func (s *ConfigStorage) Insert(name string, cfg config.GuestConfig) (int64, error) {
	encoded, err := config.Encode(cfg)
	if err != nil {
		return 0, apperr.Wrap(apperr.EncodingError, err, "encoding guest config")
	}
	result, err := s.db.Exec(`INSERT INTO guest (name, config) VALUES (?, ?)`, name, string(encoded))
	if err != nil {
		return 0, apperr.FromSQLite(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperr.Wrap(apperr.StorageError, err, "reading inserted guest id")
	}
	return id, nil
}

// Remove deletes the guest with the given id. Absence is not an error.
func (s *ConfigStorage) Remove(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM guest WHERE id = ?`, id); err != nil {
		return apperr.FromSQLite(err)
	}
	return nil
}
