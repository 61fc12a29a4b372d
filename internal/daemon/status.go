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
	"net/http"

	"github.com/project-machine/emulot/internal/apperr"
)

// statusFor is the canonical error -> HTTP status mapping from spec
// §4.6: AlreadyRunning/AlreadyStopped map to 304, AlreadyExists to 409,
// NoSuchEntity to 404, Pending to 503, anything else to 500.
func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.AlreadyRunning, apperr.AlreadyStopped:
		return http.StatusNotModified
	case apperr.AlreadyExists:
		return http.StatusConflict
	case apperr.NoSuchEntity:
		return http.StatusNotFound
	case apperr.Pending:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err's display string with the status statusFor
// maps it to. The control plane is the single place errors are
// projected onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}
