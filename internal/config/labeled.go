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
	"bytes"
	"encoding/json"
	"fmt"
)

// Labeled pairs a string label with an item, serialized as a
// single-entry JSON object ({"label": item}) rather than a {label,
// item} struct. Used for list responses so callers see (name, id) or
// (name, config) pairs directly. Grounded on original_source's
// storage/mod.rs Labeled<T>, which implements a custom one-entry-map
// Serialize for the same reason.
type Labeled[T any] struct {
	Label string
	Item  T
}

func NewLabeled[T any](label string, item T) Labeled[T] {
	return Labeled[T]{Label: label, Item: item}
}

func (l Labeled[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	key, err := json.Marshal(l.Label)
	if err != nil {
		return nil, err
	}
	buf.Write(key)
	buf.WriteByte(':')
	value, err := json.Marshal(l.Item)
	if err != nil {
		return nil, err
	}
	buf.Write(value)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *Labeled[T]) UnmarshalJSON(data []byte) error {
	var raw map[string]T
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("labeled value must have exactly one entry, got %d", len(raw))
	}
	for k, v := range raw {
		l.Label = k
		l.Item = v
	}
	return nil
}
