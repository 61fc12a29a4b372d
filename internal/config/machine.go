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
	"encoding/json"
	"fmt"
)

// MachineConfig is the optional `machine` record: a required Type plus
// a free-form string->string property map flattened into the same JSON
// object on the wire (original_source's config/machine.rs uses
// `#[serde(flatten)]`; Go has no flatten struct tag, so MachineConfig
// implements json.Marshaler/Unmarshaler by hand to reproduce the same
// wire shape).
type MachineConfig struct {
	Type  string            `toml:"type" yaml:"type"`
	Props map[string]string `toml:"props,omitempty" yaml:"props,omitempty"`
}

const machineTypeKey = "type"

// MarshalJSON flattens Props into the same object as Type, the way
// config/machine.rs's #[serde(flatten)] does.
func (m MachineConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(m.Props)+1)
	for k, v := range m.Props {
		out[k] = v
	}
	out[machineTypeKey] = m.Type
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON: it lifts every key other
// than "type" back into Props, tolerating and preserving unknown keys
// verbatim.
func (m *MachineConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding machine config: %w", err)
	}
	typ, ok := raw[machineTypeKey]
	if !ok {
		return fmt.Errorf("machine config missing required %q field", machineTypeKey)
	}
	delete(raw, machineTypeKey)
	m.Type = typ
	if len(raw) > 0 {
		m.Props = raw
	} else {
		m.Props = nil
	}
	return nil
}

// Args implements ArgRenderer. MachineConfig always emits -machine,
// unlike BootConfig/SmpConfig, since Type is required.
func (m MachineConfig) Args() ([]string, error) {
	value := m.Type
	for _, pair := range sortedPairs(m.Props) {
		value += "," + pair
	}
	return []string{"-machine", value}, nil
}
