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
	"strings"
	"testing"
)

func testArgv(t *testing.T, cfg GuestConfig, expected string) {
	t.Helper()
	argv, err := cfg.Argv("")
	if err != nil {
		t.Fatalf("Failed to render argv: %s", err.Error())
	}
	result := strings.Join(argv, " ")
	if expected != result {
		t.Fatalf("Failed to render argv\nexpected[%s]\n!=\n   found[%s]", expected, result)
	}
}

func strPtr(s string) *string { return &s }
func u64Ptr(v uint64) *uint64 { return &v }

func TestArgvMinimal(t *testing.T) {
	cfg := New("x86_64", 512)
	testArgv(t, cfg, "-m 512 -display none")
}

// TestArgvScenario1 reproduces the fully-specified machine-with-highmem walkthrough.
func TestArgvScenario1(t *testing.T) {
	cfg := GuestConfig{
		Arch:    "x86_64",
		Memory:  512,
		Display: "none",
		Machine: &MachineConfig{Type: "virt", Props: map[string]string{"highmem": "on"}},
	}
	if cfg.Program() != "qemu-system-x86_64" {
		t.Fatalf("unexpected program: %s", cfg.Program())
	}
	testArgv(t, cfg, "-machine virt,highmem=on -m 512 -display none")
}

func TestArgvFullySpecified(t *testing.T) {
	cfg := GuestConfig{
		Arch:    "x86_64",
		Memory:  2048,
		CPU:     strPtr("host"),
		Accel:   strPtr("kvm"),
		Display: "none",
		Boot:    &BootConfig{Order: strPtr("c")},
		SMP:     &SmpConfig{Cores: u64Ptr(4)},
		Machine: &MachineConfig{Type: "q35", Props: map[string]string{"accel": "kvm"}},
		Drive: []DriveConfig{
			{"if": "virtio", "file": "disk.qcow2", "format": "qcow2"},
		},
		Netdev: []NetworkDeviceConfig{
			{Type: "user", Props: map[string]string{"id": "net0"}},
		},
	}

	// Netdev is populated above to confirm it plays no part in the
	// rendered argv: original_source's GuestConfig::as_cmd never calls
	// self.netdev.as_args() when building the command line.
	expected := "-cpu host -accel kvm " +
		"-machine q35,accel=kvm " +
		"-boot order=c " +
		"-smp cores=4 " +
		"-drive file=disk.qcow2,format=qcow2,if=virtio " +
		"-m 2048 -display none"
	testArgv(t, cfg, expected)
}

// TestArgvEmptyOptionalRecordsElide covers the empty-optional-record case: an empty
// BootConfig/SmpConfig contributes nothing to the argv.
func TestArgvEmptyOptionalRecordsElide(t *testing.T) {
	cfg := GuestConfig{
		Arch:    "aarch64",
		Memory:  1024,
		Display: "none",
		Boot:    &BootConfig{},
		SMP:     &SmpConfig{},
	}
	testArgv(t, cfg, "-m 1024 -display none")
}

// TestArgvDriveAlwaysEmitted: an empty DriveConfig still emits -drive.
func TestArgvDriveAlwaysEmitted(t *testing.T) {
	cfg := GuestConfig{
		Arch:    "x86_64",
		Memory:  256,
		Display: "none",
		Drive:   []DriveConfig{{}},
	}
	testArgv(t, cfg, "-drive  -m 256 -display none")
}

func TestApplyDefaultsSetsDisplay(t *testing.T) {
	cfg := GuestConfig{Arch: "x86_64", Memory: 128}
	cfg.ApplyDefaults()
	if cfg.Display != defaultDisplay {
		t.Fatalf("expected default display %q, got %q", defaultDisplay, cfg.Display)
	}
}

func TestProgram(t *testing.T) {
	cfg := New("aarch64", 512)
	if cfg.Program() != "qemu-system-aarch64" {
		t.Fatalf("unexpected program name: %s", cfg.Program())
	}
}
