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

package apperr

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
)

// sqliteConstraintUnique is the extended result code SQLite returns for
// a UNIQUE index violation. rusqlite's equivalent constant in the
// reference implementation this daemon was distilled from is 2067; the
// mattn/go-sqlite3 driver exposes the same extended code as
// sqlite3.ErrConstraintUnique.
const sqliteConstraintUnique = 2067

// FromSQLite maps a database/sql error raised against the sqlite3
// driver onto the taxonomy: a UNIQUE constraint violation becomes
// AlreadyExists, sql.ErrNoRows becomes NoSuchEntity, everything else is
// a StorageError.
func FromSQLite(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return Wrap(NoSuchEntity, err, "no such entity")
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if int(sqliteErr.ExtendedCode) == sqliteConstraintUnique {
			return Wrap(AlreadyExists, err, "a guest config with that name already exists")
		}
		return Wrap(StorageError, err, sqliteErr.Error())
	}
	return Wrap(StorageError, err, "storage operation failed")
}
