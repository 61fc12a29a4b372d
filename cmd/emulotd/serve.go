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

package main

import (
	"net"
	"net/http"
	"net/url"
)

// parseListenURL parses the daemon.listen config value into the
// *url.URL scheme/host/path triple daemon.Listen expects.
func parseListenURL(listen string) (*url.URL, error) {
	return url.Parse(listen)
}

// daemonServe runs an http.Server over an already-bound listener until
// it errors or is closed.
func daemonServe(listener net.Listener, handler http.Handler) error {
	server := &http.Server{Handler: handler}
	return server.Serve(listener)
}
