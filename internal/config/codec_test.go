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
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleConfig() GuestConfig {
	return GuestConfig{
		Arch:    "x86_64",
		Memory:  1024,
		CPU:     strPtr("host"),
		Display: "none",
		Machine: &MachineConfig{Type: "q35", Props: map[string]string{"kernel-irqchip": "on"}},
		Drive:   []DriveConfig{{"if": "virtio", "file": "disk.qcow2"}},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := sampleConfig()

	encoded, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %s", err.Error())
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %s", err.Error())
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round trip mismatch\nwant %#v\ngot  %#v", original, decoded)
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	original := sampleConfig()

	path := filepath.Join(t.TempDir(), "guest.toml")
	if err := WriteTOML(path, original); err != nil {
		t.Fatalf("WriteTOML failed: %s", err.Error())
	}
	decoded, err := ReadTOML(path)
	if err != nil {
		t.Fatalf("ReadTOML failed: %s", err.Error())
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round trip mismatch\nwant %#v\ngot  %#v", original, decoded)
	}
}

func TestMachineConfigFlattensProps(t *testing.T) {
	encoded, err := Encode(sampleConfig())
	if err != nil {
		t.Fatalf("Encode failed: %s", err.Error())
	}
	if !strings.Contains(string(encoded), `"type":"q35"`) || !strings.Contains(string(encoded), `"kernel-irqchip":"on"`) {
		t.Fatalf("expected machine props flattened alongside type, got %s", encoded)
	}
}

func TestMachineConfigMissingTypeErrors(t *testing.T) {
	var m MachineConfig
	err := m.UnmarshalJSON([]byte(`{"foo":"bar"}`))
	if err == nil {
		t.Fatal("expected error decoding machine config with no type field")
	}
}
