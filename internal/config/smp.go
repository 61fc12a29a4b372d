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

import "strconv"

// SmpConfig is the optional `smp` record: the only property is a core
// count passed to qemu's -smp flag. Grounded on
// original_source's config/smp.rs.
type SmpConfig struct {
	Cores *uint64 `json:"cores,omitempty" toml:"cores,omitempty" yaml:"cores,omitempty"`
}

// Args implements ArgRenderer. An absent Cores renders nothing (spec
// scenario 2: smp:{} elides -smp entirely).
func (s SmpConfig) Args() ([]string, error) {
	if s.Cores == nil {
		return nil, nil
	}
	return []string{"-smp", "cores=" + strconv.FormatUint(*s.Cores, 10)}, nil
}
