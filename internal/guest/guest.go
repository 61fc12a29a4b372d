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

// Package guest implements the guest lifecycle engine: process spawn
// with piped stdio, QMP handshake, command send/receive, shutdown,
// kill, and status tracking. Grounded on original_source's guest.rs for
// the state machine and on qcli's qemu.go::LaunchCustomQemu for
// the process-spawn mechanics (exec.Command with piped stdin/stdout,
// structured logging via a QMPLog-shaped interface). The child's
// stderr is not captured.
package guest

import (
	"bufio"
	"io"
	"os/exec"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/project-machine/emulot/internal/config"
)

// monitorChardevID names the stdio chardev the lifecycle engine wires
// up for the QMP monitor channel:
// "-chardev stdio,id=mon0 -mon chardev=mon0,mode=control".
const monitorChardevID = "mon0"

// monitorArgs returns the monitor channel arguments, appended
// immediately before spawn and never by config.GuestConfig.Argv —
// static argv rendering must stay deterministic and side-effect free,
// while the monitor channel only exists once we're about to exec.
func monitorArgs() []string {
	return []string{
		"-chardev", "stdio,id=" + monitorChardevID,
		"-mon", "chardev=" + monitorChardevID + ",mode=control",
	}
}

// Status is the lifecycle state a Guest reports back via Status().
type Status int

const (
	Stopped Status = iota
	Running
)

func (s Status) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Guest is the runtime entity the orchestrator creates on first start.
// It holds the config, the spawned process (if any), and the writer/
// reader ends of the child's stdio monitor channel. Writer and Reader
// are always both set or both nil together.
type Guest struct {
	mu sync.Mutex

	Config       config.GuestConfig
	LocalStorage string
	Logger       logrus.FieldLogger

	cmd    *exec.Cmd
	writer io.WriteCloser
	reader *bufio.Reader

	// waitDone is closed by the goroutine that reaps the child once
	// cmd.Wait returns, letting Status() poll non-blockingly instead
	// of racing exec.Cmd's own internal state.
	waitDone chan struct{}
}

// New constructs a Guest around a config and the local_storage
// directory used to resolve remote file references. Callers
// (the orchestrator) are responsible for serializing access with their
// own per-guest lock; Guest's internal mutex only protects the
// process/writer/reader fields from torn reads, it is not a
// replacement for that outer lock.
func New(cfg config.GuestConfig, localStorage string, logger logrus.FieldLogger) *Guest {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Guest{Config: cfg, LocalStorage: localStorage, Logger: logger}
}

// isAlive reports whether the child process handle is present and has
// not yet been reaped by the wait goroutine.
func (g *Guest) isAlive() bool {
	if g.cmd == nil || g.waitDone == nil {
		return false
	}
	select {
	case <-g.waitDone:
		return false
	default:
		return true
	}
}

// Status reports Running iff the child handle is present and has not
// yet exited, Stopped otherwise. Non-blocking.
func (g *Guest) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.isAlive() {
		return Running
	}
	g.clearHandles()
	return Stopped
}

func (g *Guest) clearHandles() {
	if g.writer != nil {
		g.writer.Close()
	}
	g.cmd = nil
	g.writer = nil
	g.reader = nil
	g.waitDone = nil
}
