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

package guest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/project-machine/emulot/internal/apperr"
	"github.com/project-machine/emulot/internal/config"
)

// TestMain doubles as the stub "qemu-system-teststub" binary when
// invoked with GO_WANT_HELPER_PROCESS=1, the same os/exec-test-helper
// pattern the standard library's own exec package tests use to avoid
// depending on a real external binary.
func TestMain(m *testing.M) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") == "1" {
		runFakeQemu()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// runFakeQemu speaks just enough QMP to let Run/Shutdown/Kill exercise
// their real code paths: it emits a greeting, answers
// qmp_capabilities, and answers system_powerdown by exiting.
func runFakeQemu() {
	w := bufio.NewWriter(os.Stdout)
	fmt.Fprint(w, `{"QMP":{"version":{"qemu":{"major":8,"minor":0,"micro":0},"package":""},"capabilities":[]}}`+"\n")
	w.Flush()

	// qmp.Send writes each command without a trailing newline, so read
	// successive JSON values rather than lines.
	dec := json.NewDecoder(os.Stdin)
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return
		}
		line := string(raw)
		switch {
		case contains(line, "qmp_capabilities"):
			fmt.Fprint(w, `{"return": {}}`+"\n")
			w.Flush()
		case contains(line, "system_powerdown"):
			fmt.Fprint(w, `{"return": {}}`+"\n")
			w.Flush()
			return
		}
	}
}

func contains(haystack, needle string) bool {
	return len(needle) == 0 ||
		(len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0)
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

// newTestGuest builds a Guest whose Program() resolves to this same
// test binary, re-exec'd with GO_WANT_HELPER_PROCESS=1 so it behaves as
// a stub QEMU speaking QMP over stdio. It stubs Program() by pointing
// PATH at a directory containing an executable named
// qemu-system-teststub that wraps os.Args[0].
func newTestGuest(t *testing.T) *Guest {
	t.Helper()

	dir := t.TempDir()
	stubPath := filepath.Join(dir, "qemu-system-teststub")
	wrapper := fmt.Sprintf("#!/bin/sh\nexec %q -test.run=TestMain $@\n", os.Args[0])
	if err := os.WriteFile(stubPath, []byte(wrapper), 0o755); err != nil {
		t.Fatalf("writing stub wrapper: %s", err.Error())
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")

	cfg := config.New("teststub", 128)
	return New(cfg, t.TempDir(), logrus.StandardLogger())
}

func TestRunHandshakeAndShutdown(t *testing.T) {
	g := newTestGuest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := g.Run(ctx); err != nil {
		t.Fatalf("Run failed: %s", err.Error())
	}
	if g.Status() != Running {
		t.Fatal("expected guest to report Running after a successful handshake")
	}

	if err := g.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %s", err.Error())
	}
}

func TestRunTwiceFailsAlreadyRunning(t *testing.T) {
	g := newTestGuest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := g.Run(ctx); err != nil {
		t.Fatalf("Run failed: %s", err.Error())
	}
	defer g.Kill()

	err := g.Run(ctx)
	if apperr.KindOf(err) != apperr.AlreadyRunning {
		t.Fatalf("expected AlreadyRunning, got %v", err)
	}
}

func TestShutdownWithoutRunFailsAlreadyStopped(t *testing.T) {
	g := newTestGuest(t)
	err := g.Shutdown(context.Background())
	if apperr.KindOf(err) != apperr.AlreadyStopped {
		t.Fatalf("expected AlreadyStopped, got %v", err)
	}
}

func TestKillWithoutRunFailsAlreadyStopped(t *testing.T) {
	g := newTestGuest(t)
	err := g.Kill()
	if apperr.KindOf(err) != apperr.AlreadyStopped {
		t.Fatalf("expected AlreadyStopped, got %v", err)
	}
}

func TestStatusReportsStoppedBeforeRun(t *testing.T) {
	g := newTestGuest(t)
	if g.Status() != Stopped {
		t.Fatal("expected a never-started guest to report Stopped")
	}
}
