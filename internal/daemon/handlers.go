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

package daemon

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/project-machine/emulot/internal/apperr"
	"github.com/project-machine/emulot/internal/config"
)

func (s *State) handleCreate(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var cfg config.GuestConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, apperr.Wrap(apperr.EncodingError, err, "decoding guest config body"))
		return
	}
	cfg.ApplyDefaults()

	if _, err := s.Storage.Insert(name, cfg); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *State) handleRemove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.EncodingError, err, "parsing guest id"))
		return
	}
	if err := s.Storage.Remove(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *State) handleList(w http.ResponseWriter, r *http.Request) {
	labeled, err := s.Storage.List(0, -1)
	if err != nil {
		writeError(w, err)
		return
	}
	if labeled == nil {
		labeled = []config.Labeled[int64]{}
	}
	writeJSON(w, labeled)
}

func (s *State) handleLookup(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	id, err := s.Storage.LookupID(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, id)
}

func (s *State) handleStart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.EncodingError, err, "parsing guest id"))
		return
	}
	if err := s.Orchestrator.Run(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleShutdown's path parameter is named :name in the route table,
// but — mirroring original_source's daemon/guest.rs, whose shutdown
// handler also takes a string named "name" and feeds it straight to
// Orchestrator::shutdown(id: &str), where the in-memory registry is in
// fact keyed by the stringified numeric id — the value is parsed as
// the guest id, not its storage name.
func (s *State) handleShutdown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["name"], 10, 64)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.EncodingError, err, "parsing guest id"))
		return
	}
	if err := s.Orchestrator.Shutdown(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *State) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Storage.List(0, 1); err != nil {
		writeError(w, apperr.New(apperr.Pending, fmt.Sprintf("storage not ready: %v", err)))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
