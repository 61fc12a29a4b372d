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

// Package orchestrator implements the in-memory registry of live
// guests, grounded on original_source's orchestrator.rs
// (CHashMap<String, Arc<Mutex<Guest>>>). Go has no off-the-shelf
// lock-free concurrent hash map in play here, so the registry is a
// sync.RWMutex-guarded map whose values each carry their own
// sync.Mutex — the same "coarse map lock, fine per-entry lock" split
// kata-containers-kata-containers's virtcontainers sandbox store uses
// throughout its own sync.Mutex-guarded maps.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/project-machine/emulot/internal/apperr"
	"github.com/project-machine/emulot/internal/guest"
	"github.com/project-machine/emulot/internal/storage"
)

// entry wraps a *guest.Guest with the per-guest mutex that linearizes
// operations on it. Run/Shutdown hold this lock for the duration of the
// underlying guest.Guest call but never while touching the outer
// registry lock or making a storage call: the orchestrator never holds
// its in-memory lock across a storage call.
type entry struct {
	mu    sync.Mutex
	guest *guest.Guest
}

// Orchestrator is the live-guest registry. The zero value is not
// usable; construct with New.
type Orchestrator struct {
	storage      *storage.ConfigStorage
	localStorage string
	logger       logrus.FieldLogger

	mu     sync.RWMutex
	guests map[string]*entry
}

// New constructs an Orchestrator over storage, rooting each guest's
// local_storage directory at <localStorage>/<id>.
func New(store *storage.ConfigStorage, localStorage string, logger logrus.FieldLogger) *Orchestrator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Orchestrator{
		storage:      store,
		localStorage: localStorage,
		logger:       logger,
		guests:       make(map[string]*entry),
	}
}

// lookupOrHydrate returns the in-memory entry for id, hydrating it from
// storage on first access. Insert-if-absent is done under the
// registry's write lock only long enough to install the new entry;
// the (possibly slow) storage fetch that precedes it happens before
// the lock is taken, and happens again (wastefully, but safely) if two
// callers race — only one insertion wins, the same insert-if-absent
// intent a lock-free map gives for free, applied here to a Go mutex.
func (o *Orchestrator) lookupOrHydrate(id int64) (*entry, error) {
	key := strconv.FormatInt(id, 10)

	o.mu.RLock()
	if e, ok := o.guests[key]; ok {
		o.mu.RUnlock()
		return e, nil
	}
	o.mu.RUnlock()

	cfg, err := o.storage.Get(id)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if e, ok := o.guests[key]; ok {
		return e, nil
	}
	localStorage := filepath.Join(o.localStorage, key)
	e := &entry{guest: guest.New(cfg, localStorage, o.logger.WithField("guest", key))}
	o.guests[key] = e
	return e, nil
}

// Run starts the guest identified by id, hydrating its config from
// storage if this is the first time it has been addressed since the
// daemon started. Concurrent Run calls on distinct ids proceed in
// parallel; concurrent Run calls on the same id are serialized by that
// id's entry lock.
func (o *Orchestrator) Run(ctx context.Context, id int64) error {
	e, err := o.lookupOrHydrate(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.guest.Run(ctx)
}

// Shutdown gracefully shuts down the guest identified by id.
// NoSuchEntity if no in-memory entry exists yet for id: a guest that
// was never started cannot be shut down.
func (o *Orchestrator) Shutdown(ctx context.Context, id int64) error {
	key := strconv.FormatInt(id, 10)

	o.mu.RLock()
	e, ok := o.guests[key]
	o.mu.RUnlock()
	if !ok {
		return apperr.New(apperr.NoSuchEntity, fmt.Sprintf("no running guest with id %d", id))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.guest.Shutdown(ctx)
}

// Status reports the live status of id, Stopped if no in-memory entry
// exists.
func (o *Orchestrator) Status(id int64) string {
	key := strconv.FormatInt(id, 10)
	o.mu.RLock()
	e, ok := o.guests[key]
	o.mu.RUnlock()
	if !ok {
		return "stopped"
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.guest.Status().String()
}
