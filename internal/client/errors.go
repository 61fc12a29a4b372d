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

package client

import (
	"fmt"
	"net/http"

	"github.com/project-machine/emulot/internal/apperr"
)

// errorFromStatus is the inverse of the daemon's canonical
// Kind->status mapping (internal/daemon/status.go), letting the CLI
// print the same kind of message a direct in-process call would have
// produced. The mapping is lossy for 304: AlreadyRunning and
// AlreadyStopped share that status, and both decode as AlreadyRunning.
func errorFromStatus(status int, message string) error {
	switch status {
	case http.StatusNotModified:
		return apperr.New(apperr.AlreadyRunning, message)
	case http.StatusConflict:
		return apperr.New(apperr.AlreadyExists, message)
	case http.StatusNotFound:
		return apperr.New(apperr.NoSuchEntity, message)
	case http.StatusServiceUnavailable:
		return apperr.New(apperr.Pending, message)
	default:
		return apperr.New(apperr.DaemonError, fmt.Sprintf("daemon returned %d: %s", status, message))
	}
}
