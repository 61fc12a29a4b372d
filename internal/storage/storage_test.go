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

package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/project-machine/emulot/internal/apperr"
	"github.com/project-machine/emulot/internal/config"
)

func newTestStorage(t *testing.T) *ConfigStorage {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage.db")
	s, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertGetLookupRemove(t *testing.T) {
	s := newTestStorage(t)
	cfg := config.New("x86_64", 512)

	id, err := s.Insert("vm1", cfg)
	require.NoError(t, err)
	require.NotZero(t, id)

	gotID, err := s.LookupID("vm1")
	require.NoError(t, err)
	require.Equal(t, id, gotID)

	gotCfg, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, cfg, gotCfg)

	require.NoError(t, s.Remove(id))

	_, err = s.LookupID("vm1")
	require.Equal(t, apperr.NoSuchEntity, apperr.KindOf(err))
}

func TestInsertDuplicateNameIsAlreadyExists(t *testing.T) {
	s := newTestStorage(t)
	cfg := config.New("x86_64", 512)

	_, err := s.Insert("vm1", cfg)
	require.NoError(t, err)

	_, err = s.Insert("vm1", cfg)
	require.Equal(t, apperr.AlreadyExists, apperr.KindOf(err))
}

func TestGetMissingIsNoSuchEntity(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.Get(999)
	require.Equal(t, apperr.NoSuchEntity, apperr.KindOf(err))
}

func TestRemoveAbsentIsNotAnError(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Remove(42))
}

func TestListOrdersByIDAscending(t *testing.T) {
	s := newTestStorage(t)
	cfg := config.New("x86_64", 256)

	idA, err := s.Insert("a", cfg)
	require.NoError(t, err)
	idB, err := s.Insert("b", cfg)
	require.NoError(t, err)

	labeled, err := s.List(0, -1)
	require.NoError(t, err)
	require.Len(t, labeled, 2)
	require.Equal(t, "a", labeled[0].Label)
	require.Equal(t, idA, labeled[0].Item)
	require.Equal(t, "b", labeled[1].Label)
	require.Equal(t, idB, labeled[1].Item)
}
