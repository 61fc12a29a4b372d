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
	"bytes"
	"context"
	"testing"

	"github.com/project-machine/emulot/internal/apperr"
)

func TestSendWritesExactJSONNoTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := Send(context.Background(), &buf, CommandCapabilities); err != nil {
		t.Fatalf("Send failed: %s", err.Error())
	}
	expected := `{"execute":"qmp_capabilities"}`
	if buf.String() != expected {
		t.Fatalf("expected %q, got %q", expected, buf.String())
	}
}

type zeroWriter struct{}

func (zeroWriter) Write(p []byte) (int, error) { return 0, nil }

func TestSendFailsOnZeroLengthWrite(t *testing.T) {
	err := Send(context.Background(), zeroWriter{}, CommandSystemPowerdown)
	if apperr.KindOf(err) != apperr.IOError {
		t.Fatalf("expected IOError on a zero-length write, got %v", err)
	}
}

func TestSendHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Send(ctx, &buf, CommandCapabilities)
	if err == nil {
		t.Fatal("expected Send to fail against an already-cancelled context")
	}
}
