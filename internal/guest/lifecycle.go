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
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/project-machine/emulot/internal/apperr"
	"github.com/project-machine/emulot/internal/qmp"
)

// killGracePeriod is how long Kill waits after SIGTERM before escalating
// to SIGKILL.
const killGracePeriod = 5 * time.Second

// Run spawns the emulator and performs the QMP handshake:
//  1. receive one message, requiring a Greeting;
//  2. send {"execute":"qmp_capabilities"};
//  3. receive one message, requiring a Return.
//
// Grounded on original_source's guest.rs::run (the AlreadyRunning
// guard, the state transition) fused with qcli's
// qemu.go::LaunchCustomQemu spawn mechanics (exec.Command, piped
// stdin/stdout). The child's stderr is not captured; it is discarded.
//
// ctx bounds the handshake only: the child is not tied to ctx, so it
// keeps running after the caller's context (e.g. an HTTP request's)
// ends, until Shutdown or Kill. A handshake failure, including ctx
// expiring mid-handshake, kills the child.
func (g *Guest) Run(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.isAlive() {
		return apperr.New(apperr.AlreadyRunning, "guest is already running")
	}

	argv, err := g.Config.Argv(g.LocalStorage)
	if err != nil {
		return fmt.Errorf("rendering argv: %w", err)
	}
	argv = append(argv, monitorArgs()...)

	program := g.Config.Program()
	g.Logger.WithFields(map[string]interface{}{
		"program": program,
		"args":    argv,
	}).Info("launching guest")

	cmd := exec.Command(program, argv...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return apperr.Wrap(apperr.IOError, err, "opening guest stdin")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return apperr.Wrap(apperr.IOError, err, "opening guest stdout")
	}

	if err := cmd.Start(); err != nil {
		return apperr.Wrap(apperr.IOError, err, fmt.Sprintf("launching %s", program))
	}

	waitDone := make(chan struct{})
	go func() {
		if werr := cmd.Wait(); werr != nil {
			g.Logger.WithError(werr).Warn("guest process exited with error")
		}
		close(waitDone)
	}()

	g.cmd = cmd
	g.writer = stdin
	g.reader = bufio.NewReader(stdout)
	g.waitDone = waitDone

	if err := g.handshake(ctx); err != nil {
		g.killLocked(syscall.SIGKILL)
		return err
	}

	g.Logger.Info("guest handshake complete")
	return nil
}

// handshake performs the three-step QMP exchange described above. The
// caller must hold g.mu.
func (g *Guest) handshake(ctx context.Context) error {
	greeting, err := qmp.Receive(ctx, g.reader)
	if err != nil {
		return err
	}
	if greeting.Kind != qmp.ResponseGreeting {
		return apperr.New(apperr.IOError, "no greeting received")
	}

	if err := qmp.Send(ctx, g.writer, qmp.CommandCapabilities); err != nil {
		return err
	}

	response, err := qmp.Receive(ctx, g.reader)
	if err != nil {
		return err
	}
	if response.Kind != qmp.ResponseReturn {
		return apperr.New(apperr.IOError, "unexpected message received")
	}
	return nil
}

// Shutdown sends a graceful system_powerdown request and waits for the
// next non-event message: a Return completes the operation, an Error
// aborts with QMPError, any other message (an asynchronous event) is
// skipped and the next message is awaited instead. Shutdown only
// waits for the acknowledging Return — it never waits for the child
// to actually exit, matching original_source's guest.rs::shutdown.
func (g *Guest) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isAlive() {
		return apperr.New(apperr.AlreadyStopped, "guest is already stopped")
	}

	if err := qmp.Send(ctx, g.writer, qmp.CommandSystemPowerdown); err != nil {
		return err
	}

	for {
		response, err := qmp.Receive(ctx, g.reader)
		if err != nil {
			return err
		}
		switch response.Kind {
		case qmp.ResponseReturn:
			g.Logger.Info("guest shutdown acknowledged")
			return nil
		case qmp.ResponseError:
			return apperr.New(apperr.QMPError,
				fmt.Sprintf("QMP %s: %s", response.ErrorObj.Class, response.ErrorObj.Desc))
		default:
			// An asynchronous event; keep waiting for the Return.
			continue
		}
	}
}

// Kill terminates the child via SIGTERM, escalating to SIGKILL if it
// has not exited within killGracePeriod. Fails AlreadyStopped if there
// is no child; this is deliberately graceful by default rather than
// an immediate non-graceful termination.
func (g *Guest) Kill() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isAlive() {
		return apperr.New(apperr.AlreadyStopped, "guest is already stopped")
	}

	if g.cmd == nil || g.cmd.Process == nil {
		return nil
	}
	if err := g.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return apperr.Wrap(apperr.IOError, err, "signaling guest process")
	}

	select {
	case <-g.waitDone:
	case <-time.After(killGracePeriod):
		g.Logger.Warn("guest did not exit within grace period, sending SIGKILL")
		if err := g.cmd.Process.Signal(syscall.SIGKILL); err != nil {
			return apperr.Wrap(apperr.IOError, err, "signaling guest process")
		}
		<-g.waitDone
	}
	g.clearHandles()
	return nil
}

// killLocked unconditionally SIGKILLs the child and waits for the
// reaper goroutine to observe its exit; used on the handshake-failure
// path in Run, where no graceful shutdown is possible because the QMP
// conversation never completed. The caller must hold g.mu.
func (g *Guest) killLocked(sig syscall.Signal) error {
	if g.cmd == nil || g.cmd.Process == nil {
		return nil
	}
	if err := g.cmd.Process.Signal(sig); err != nil {
		return apperr.Wrap(apperr.IOError, err, "signaling guest process")
	}
	if g.waitDone != nil {
		<-g.waitDone
	}
	g.clearHandles()
	return nil
}
