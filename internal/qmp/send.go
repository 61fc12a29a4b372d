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

package qmp

import (
	"context"
	"encoding/json"
	"io"

	"github.com/project-machine/emulot/internal/apperr"
)

// Send serializes command to JSON once and writes it to w in full,
// tracking a sent cursor across partial writes the way
// original_source's AsyncSend::send does. A zero-length successful
// write is treated as a failure ("No data written"), matching
// original_source exactly. Ordering (FIFO per guest) is the caller's
// responsibility — the lifecycle engine serializes sends with a
// per-guest mutex rather than this function queuing internally.
func Send(ctx context.Context, w io.Writer, command Command) error {
	payload, err := json.Marshal(command)
	if err != nil {
		return apperr.Wrap(apperr.EncodingError, err, "encoding QMP command")
	}

	sent := 0
	for sent < len(payload) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := w.Write(payload[sent:])
		if err != nil {
			return apperr.Wrap(apperr.IOError, err, "writing QMP command")
		}
		if n == 0 {
			return apperr.New(apperr.IOError, "no data written")
		}
		sent += n
	}
	return nil
}
