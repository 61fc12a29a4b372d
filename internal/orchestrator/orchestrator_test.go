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

package orchestrator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/project-machine/emulot/internal/apperr"
	"github.com/project-machine/emulot/internal/storage"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "storage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, t.TempDir(), nil)
}

func TestStatusOfNeverStartedGuestIsStopped(t *testing.T) {
	o := newTestOrchestrator(t)
	require.Equal(t, "stopped", o.Status(1))
}

func TestShutdownOfNeverStartedGuestIsNoSuchEntity(t *testing.T) {
	o := newTestOrchestrator(t)
	err := o.Shutdown(context.Background(), 1)
	require.Equal(t, apperr.NoSuchEntity, apperr.KindOf(err))
}

func TestRunOfUnknownIDSurfacesStorageNoSuchEntity(t *testing.T) {
	o := newTestOrchestrator(t)
	err := o.Run(context.Background(), 999)
	require.Equal(t, apperr.NoSuchEntity, apperr.KindOf(err))
}
