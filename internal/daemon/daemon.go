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

// Package daemon implements the HTTP control plane: a router mapping
// REST-style paths onto the orchestrator/storage, dual-transport
// binding (TCP and Unix-domain), and the canonical error->status
// mapping. Grounded on original_source's daemon/{mod,guest,unix}.rs
// (an axum Router behind a tower Extension<State>), realized with
// github.com/gorilla/mux, the router devnullvoid-pvetui depends on for
// its own HTTP API server.
package daemon

import (
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/project-machine/emulot/internal/orchestrator"
	"github.com/project-machine/emulot/internal/storage"
)

// State bundles the two collaborators every handler needs: storage for
// create/list/remove/lookup, and the orchestrator for start/shutdown.
type State struct {
	Storage      *storage.ConfigStorage
	Orchestrator *orchestrator.Orchestrator
	Logger       logrus.FieldLogger
}

// Router builds the full control-plane router, mounting the guest
// create/remove/list/lookup/start/shutdown/health routes under
// /guests.
func Router(state *State) *mux.Router {
	if state.Logger == nil {
		state.Logger = logrus.StandardLogger()
	}
	router := mux.NewRouter()
	guests := router.PathPrefix("/guests").Subrouter()

	guests.HandleFunc("/create/{name}", state.handleCreate).Methods("POST")
	guests.HandleFunc("/remove/{id}", state.handleRemove).Methods("DELETE")
	guests.HandleFunc("/list", state.handleList).Methods("GET")
	guests.HandleFunc("/lookup/{name}", state.handleLookup).Methods("GET")
	guests.HandleFunc("/start/{id}", state.handleStart).Methods("POST")
	guests.HandleFunc("/shutdown/{name}", state.handleShutdown).Methods("POST")
	guests.HandleFunc("/health", state.handleHealth).Methods("GET")

	router.Use(accessLogMiddleware(state.Logger))
	return router
}

// accessLogMiddleware tags every request with a fresh correlation ID
// so a single guest operation can be traced across log lines even
// when the daemon is serving many requests concurrently.
func accessLogMiddleware(logger logrus.FieldLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			}).Debug("handling request")
			next.ServeHTTP(w, r)
			logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"duration":   time.Since(start).String(),
			}).Debug("request complete")
		})
	}
}

// Listen binds the listener for listenURL's scheme: "tcp" binds
// host:port, "unix" binds the (already percent-decoded by net/url) path,
// removing any stale socket file first.
func Listen(listenURL *url.URL) (net.Listener, error) {
	switch listenURL.Scheme {
	case "tcp":
		return net.Listen("tcp", listenURL.Host)
	case "unix":
		path := listenURL.Path
		if _, err := os.Stat(path); err == nil {
			if err := os.Remove(path); err != nil {
				return nil, err
			}
		}
		return net.Listen("unix", path)
	default:
		return nil, &unsupportedSchemeError{scheme: listenURL.Scheme}
	}
}

type unsupportedSchemeError struct {
	scheme string
}

func (e *unsupportedSchemeError) Error() string {
	return "unsupported listen scheme: " + e.scheme
}
