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

import "strings"

// DriveConfig is one entry of the optional, ordered `drive` sequence: a
// free-form string->string property map with no required keys (common
// keys include, but are not limited to, "if", "file", "format",
// "media"). Grounded on original_source's config/drive.rs, which is
// itself just a property bag with every field optional.
//
// Whether an empty DriveConfig should emit -drive with an empty value
// or be elided entirely is left open by the property-bag design; this
// implementation always emits -drive whenever the record is present,
// matching qcli's own BlkDevices/DriveConfig rendering, which
// never conditions its -drive flag on the property set being non-empty.
type DriveConfig map[string]string

// Args implements ArgRenderer.
func (d DriveConfig) Args() ([]string, error) {
	return []string{"-drive", strings.Join(sortedPairs(d), ",")}, nil
}
