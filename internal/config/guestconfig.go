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

package config

import (
	"fmt"

	"github.com/project-machine/emulot/internal/emufile"
)

// defaultDisplay mirrors original_source's default_display().
const defaultDisplay = "none"

// GuestConfig is the persisted, user-authored document describing one
// guest. Field names and optionality match original_source's
// config/mod.rs::GuestConfig exactly: only arch and memory are
// required, everything else is optional with display defaulting to
// "none".
type GuestConfig struct {
	Arch    string                `json:"arch" toml:"arch" yaml:"arch"`
	Memory  uint64                `json:"memory" toml:"memory" yaml:"memory"`
	CPU     *string               `json:"cpu,omitempty" toml:"cpu,omitempty" yaml:"cpu,omitempty"`
	Accel   *string               `json:"accel,omitempty" toml:"accel,omitempty" yaml:"accel,omitempty"`
	Bios    *emufile.File         `json:"bios,omitempty" toml:"bios,omitempty" yaml:"bios,omitempty"`
	Display string                `json:"display" toml:"display" yaml:"display"`
	Boot    *BootConfig           `json:"boot,omitempty" toml:"boot,omitempty" yaml:"boot,omitempty"`
	SMP     *SmpConfig            `json:"smp,omitempty" toml:"smp,omitempty" yaml:"smp,omitempty"`
	Machine *MachineConfig        `json:"machine,omitempty" toml:"machine,omitempty" yaml:"machine,omitempty"`
	Drive   []DriveConfig         `json:"drive,omitempty" toml:"drive,omitempty" yaml:"drive,omitempty"`
	Netdev  []NetworkDeviceConfig `json:"netdev,omitempty" toml:"netdev,omitempty" yaml:"netdev,omitempty"`
}

// New returns a GuestConfig with the defaults original_source's
// GuestConfig::new applies (display "none", everything else absent).
func New(arch string, memory uint64) GuestConfig {
	return GuestConfig{Arch: arch, Memory: memory, Display: defaultDisplay}
}

// ApplyDefaults fills in zero-valued optional fields that carry a
// default (currently just Display), matching #[serde(default =
// "default_display")] on the wire. Call this after decoding a document
// that may have omitted Display.
func (g *GuestConfig) ApplyDefaults() {
	if g.Display == "" {
		g.Display = defaultDisplay
	}
}

// Program returns the emulator binary name for this guest, "qemu-system-<arch>".
func (g GuestConfig) Program() string {
	return "qemu-system-" + g.Arch
}

// Argv renders the full, ordered argument vector for this guest,
// excluding the monitor channel arguments: those are appended by the
// lifecycle engine immediately before spawn, never by this static
// renderer. Ordering: cpu, accel, bios, machine, boot, smp, drive
// renderings, memory, display. Netdev fragments render their own
// -netdev tokens via ArgRenderer but are never concatenated into this
// aggregate, matching original_source's GuestConfig::as_cmd, which
// defines NetworkDeviceConfig::as_args but never calls
// self.netdev.as_args() when building the command line.
func (g GuestConfig) Argv(localStorage string) ([]string, error) {
	var argv []string

	if g.CPU != nil {
		argv = append(argv, "-cpu", *g.CPU)
	}
	if g.Accel != nil {
		argv = append(argv, "-accel", *g.Accel)
	}
	if g.Bios != nil {
		path, err := g.Bios.Path(localStorage)
		if err != nil {
			return nil, fmt.Errorf("resolving bios file: %w", err)
		}
		argv = append(argv, "-bios", path)
	}

	machineArgs, err := RenderOptional(g.Machine)
	if err != nil {
		return nil, err
	}
	argv = append(argv, machineArgs...)

	bootArgs, err := RenderOptional(g.Boot)
	if err != nil {
		return nil, err
	}
	argv = append(argv, bootArgs...)

	smpArgs, err := RenderOptional(g.SMP)
	if err != nil {
		return nil, err
	}
	argv = append(argv, smpArgs...)

	driveArgs, err := RenderSequence(g.Drive)
	if err != nil {
		return nil, err
	}
	argv = append(argv, driveArgs...)

	display := g.Display
	if display == "" {
		display = defaultDisplay
	}
	argv = append(argv, "-m", fmt.Sprintf("%d", g.Memory), "-display", display)

	return argv, nil
}
