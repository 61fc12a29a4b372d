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

// NetworkDeviceConfig is one entry of the optional, ordered `netdev`
// sequence: a required Type plus flattened free-form properties.
// Grounded on original_source's config/network.rs.
type NetworkDeviceConfig struct {
	Type  string            `toml:"type" yaml:"type"`
	Props map[string]string `toml:"props,omitempty" yaml:"props,omitempty"`
}

func (n NetworkDeviceConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(n.Props)+1)
	for k, v := range n.Props {
		out[k] = v
	}
	out[machineTypeKey] = n.Type
	return json.Marshal(out)
}

func (n *NetworkDeviceConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding netdev config: %w", err)
	}
	typ, ok := raw[machineTypeKey]
	if !ok {
		return fmt.Errorf("netdev config missing required %q field", machineTypeKey)
	}
	delete(raw, machineTypeKey)
	n.Type = typ
	if len(raw) > 0 {
		n.Props = raw
	} else {
		n.Props = nil
	}
	return nil
}

// Args implements ArgRenderer, always emitting -netdev <type[,k=v,...]>.
func (n NetworkDeviceConfig) Args() ([]string, error) {
	value := n.Type
	for _, pair := range sortedPairs(n.Props) {
		value += "," + pair
	}
	return []string{"-netdev", value}, nil
}
