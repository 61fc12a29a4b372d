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

// BootConfig is the optional `boot` record: the only property is a
// boot device order string passed to qemu's -boot flag. Grounded on
// original_source's config/boot.rs and qcli's own empty-elision
// style for optional single-field records.
type BootConfig struct {
	Order *string `json:"order,omitempty" toml:"order,omitempty" yaml:"order,omitempty"`
}

// Args implements ArgRenderer. An absent Order renders nothing (spec
// scenario 2: boot:{} elides -boot entirely).
func (b BootConfig) Args() ([]string, error) {
	if b.Order == nil {
		return nil, nil
	}
	return []string{"-boot", "order=" + *b.Order}, nil
}
