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
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/project-machine/emulot/internal/apperr"
)

// Receive reads exactly one newline-framed JSON response from r,
// blocking until a full line has arrived or ctx is done. This is the
// blocking Go analogue of original_source's AsyncReceive::receive:
// where the Rust future resolves Poll::Pending on a partial frame and
// is re-polled later, the Go call simply blocks inside ReadBytes until
// the next '\n' arrives — the frame is never blended across calls
// because bufio.Reader buffers only full lines' worth of consumption.
//
// If the decoded response is the error variant, Receive returns a
// *apperr.Error of Kind QMPError with message "QMP <class>: <desc>",
// matching original_source's formatting exactly. Any other decoding
// failure is wrapped as apperr.IOError.
func Receive(ctx context.Context, r *bufio.Reader) (Response, error) {
	type result struct {
		line []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := r.ReadBytes('\n')
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case res := <-done:
		if res.err != nil {
			if res.err == io.EOF && len(res.line) == 0 {
				return Response{}, apperr.Wrap(apperr.IOError, res.err, "no more data from guest")
			}
			return Response{}, apperr.Wrap(apperr.IOError, res.err, "reading QMP response")
		}

		line := res.line
		if len(line) > 0 && line[len(line)-1] == '\n' {
			line = line[:len(line)-1]
		}

		response, err := decodeResponse(line)
		if err != nil {
			return Response{}, apperr.Wrap(apperr.IOError, err, "decoding QMP response")
		}

		if response.Kind == ResponseError {
			return response, apperr.New(apperr.QMPError,
				fmt.Sprintf("QMP %s: %s", response.ErrorObj.Class, response.ErrorObj.Desc))
		}
		return response, nil
	}
}
