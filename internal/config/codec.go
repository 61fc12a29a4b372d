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
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

// Encode/Decode handle the JSON wire format used between the client,
// the control plane, and storage.

func Encode(config GuestConfig) ([]byte, error) {
	return json.Marshal(config)
}

func Decode(data []byte) (GuestConfig, error) {
	var config GuestConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return GuestConfig{}, fmt.Errorf("decoding guest config: %w", err)
	}
	config.ApplyDefaults()
	return config, nil
}

// MarshalYAML/UnmarshalYAML give authors the same config.yaml
// round-trip qcli's MarshalConfig/UnmarshalConfig offer for its
// own qcli.Config, generalized to GuestConfig.
func MarshalYAML(config GuestConfig) ([]byte, error) {
	content, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshaling guest config to yaml: %w", err)
	}
	return content, nil
}

func UnmarshalYAML(content []byte) (GuestConfig, error) {
	var config GuestConfig
	if err := yaml.Unmarshal(content, &config); err != nil {
		return GuestConfig{}, fmt.Errorf("unmarshaling guest config from yaml: %w", err)
	}
	config.ApplyDefaults()
	return config, nil
}

// ReadTOML parses a guest config authored as TOML, the format the CLI
// boundary uses.
func ReadTOML(path string) (GuestConfig, error) {
	var config GuestConfig
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return GuestConfig{}, fmt.Errorf("reading guest config %q: %w", path, err)
	}
	config.ApplyDefaults()
	return config, nil
}

// WriteTOML is the inverse of ReadTOML: it writes config to path as a
// TOML document.
func WriteTOML(path string, config GuestConfig) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("writing guest config %q: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(config)
}
